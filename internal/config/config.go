package config

import (
	"fmt"

	"sdsweep/internal/units"
)

const (
	DefaultMountPoint = "/"
	DefaultTreeDepth  = 2
	DefaultMinSize    = "1G"
)

type Config struct {
	MountPoint string
	TreeDepth  int
	MinSize    string
	BrowseOnly bool
	Verbose    bool
	Theme      string
	ScanRoots  []string
}

type fileConfig struct {
	MountPoint *string `json:"mountPoint"`
	TreeDepth  *int    `json:"treeDepth"`
	MinSize    *string `json:"minSize"`
	Theme      *string `json:"theme"`
}

func Default() Config {
	return Config{
		MountPoint: DefaultMountPoint,
		TreeDepth:  DefaultTreeDepth,
		MinSize:    DefaultMinSize,
		Theme:      "dark",
		ScanRoots:  DefaultAllowlist(),
	}
}

// Validate fails fast on malformed input before any scan or selection
// work starts.
func (cfg Config) Validate() error {
	if cfg.MountPoint == "" {
		return fmt.Errorf("mount point must not be empty")
	}
	if cfg.TreeDepth < 0 {
		return fmt.Errorf("tree depth must be non-negative, got %d", cfg.TreeDepth)
	}
	if _, err := units.Parse(cfg.MinSize); err != nil {
		return fmt.Errorf("minimum size: %w", err)
	}
	if len(cfg.ScanRoots) == 0 {
		return fmt.Errorf("scan allowlist must not be empty")
	}
	return nil
}

// MinSizeBytes returns the parsed size threshold. Call Validate first.
func (cfg Config) MinSizeBytes() int64 {
	bytes, err := units.Parse(cfg.MinSize)
	if err != nil {
		return 0
	}
	return bytes
}
