package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const allowlistFileName = "allowlist.yaml"

// Library subdirectories considered safe to measure and report. Not
// all of ~/Library is scanned; cleaning outside these is on the
// operator.
var defaultLibraryDirs = []string{
	"Application Support",
	"Caches",
	"Containers",
	"Group Containers",
	"Logs",
}

type allowlistFile struct {
	Base  string   `yaml:"base"`
	Paths []string `yaml:"paths"`
}

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(envPattern.FindStringSubmatch(m)[1])
	})
}

func AllowlistPath() string {
	return filepath.Join(xdg.ConfigHome, configDirName, allowlistFileName)
}

func DefaultAllowlist() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	base := filepath.Join(home, "Library")
	roots := make([]string, 0, len(defaultLibraryDirs))
	for _, name := range defaultLibraryDirs {
		roots = append(roots, filepath.Join(base, name))
	}
	return roots
}

// LoadAllowlist reads the scan roots from the given YAML file,
// expanding $(ENV_VAR) placeholders. A missing file falls back to the
// built-in allowlist.
func LoadAllowlist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAllowlist(), nil
		}
		return nil, fmt.Errorf("reading allowlist: %w", err)
	}
	var stored allowlistFile
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &stored); err != nil {
		return nil, fmt.Errorf("unmarshalling allowlist: %w", err)
	}
	if len(stored.Paths) == 0 {
		return nil, fmt.Errorf("allowlist %s names no paths", path)
	}
	roots := make([]string, 0, len(stored.Paths))
	for _, name := range stored.Paths {
		if filepath.IsAbs(name) {
			roots = append(roots, filepath.Clean(name))
			continue
		}
		if stored.Base == "" {
			return nil, fmt.Errorf("allowlist %s: relative path %q without a base", path, name)
		}
		roots = append(roots, filepath.Join(stored.Base, name))
	}
	return roots, nil
}
