package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	configDirName  = "sdsweep"
	configFileName = "config.json"
)

func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, configDirName, configFileName)
}

func Load() (Config, error) {
	config := Default()
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	var stored fileConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return config, err
	}
	return mergeConfig(config, stored), nil
}

func Save(config Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	stored := fileConfig{
		MountPoint: &config.MountPoint,
		TreeDepth:  &config.TreeDepth,
		MinSize:    &config.MinSize,
		Theme:      &config.Theme,
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeConfig(base Config, stored fileConfig) Config {
	merged := base
	if stored.MountPoint != nil && *stored.MountPoint != "" {
		merged.MountPoint = *stored.MountPoint
	}
	if stored.TreeDepth != nil && *stored.TreeDepth >= 0 {
		merged.TreeDepth = *stored.TreeDepth
	}
	if stored.MinSize != nil && *stored.MinSize != "" {
		merged.MinSize = *stored.MinSize
	}
	if stored.Theme != nil && *stored.Theme != "" {
		merged.Theme = *stored.Theme
	}
	return merged
}
