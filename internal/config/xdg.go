package config

import (
	"os"
	"path/filepath"
)

const appDir = "canvasplot"

// ConfigDir is the canvasplot directory under $XDG_CONFIG_HOME, falling back
// to ~/.config and then to the working directory.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			base = filepath.Join(home, ".config")
		} else {
			base = "."
		}
	}
	return filepath.Join(base, appDir)
}

// DefaultConfigPath returns the config.toml path inside ConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}
