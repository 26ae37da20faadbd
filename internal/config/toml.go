// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Built-in render defaults, used when neither config nor flags set a value.
const (
	DefaultWidth      = 400
	DefaultHeight     = 200
	DefaultBackground = "white"
	DefaultOutDir     = "."
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Render RenderConfig `toml:"render"`
}

// RenderConfig maps render-related settings.
type RenderConfig struct {
	Width      *int     `toml:"width"`
	Height     *int     `toml:"height"`
	Background *string  `toml:"background"`
	Palette    []string `toml:"palette"`
	Color      *bool    `toml:"color"`
	OutDir     *string  `toml:"out-dir"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Render.validate(); err != nil {
		return FileConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (r RenderConfig) validate() error {
	if r.Width != nil && *r.Width <= 0 {
		return fmt.Errorf("render.width must be > 0")
	}
	if r.Height != nil && *r.Height <= 0 {
		return fmt.Errorf("render.height must be > 0")
	}
	return nil
}

// DefaultTemplate is written by `canvasplot config` when no file exists yet.
func DefaultTemplate() string {
	return fmt.Sprintf(`# canvasplot configuration
# Uncomment a value to enable it. CLI flags override config values.

[render]
# width = %d               # PNG width in pixels
# height = %d              # PNG height in pixels
# background = %q      # PNG background color
# palette = ["#900", "#00b", "#aa0", "#0aa", "#444"]
# color = false             # Force colored terminal output
# out-dir = %q              # Directory for rendered PNGs
`,
		DefaultWidth,
		DefaultHeight,
		DefaultBackground,
		DefaultOutDir,
	)
}
