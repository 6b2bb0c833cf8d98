package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the config file path. NUMA_CONFIG takes
// precedence over the XDG location.
func DefaultConfigPath() string {
	if p := os.Getenv("NUMA_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(XDGConfigHome(), "numa", "config.toml")
}
