// Package config handles the shogun CLI's configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the CLI's persisted preferences.
type Config struct {
	// Format is the default output format for commands that encode
	// records: "json", "toml", or "yaml".
	Format string `toml:"format"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig holds optional theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and rendered
	// markdown. Supported values are ANSI 256 codes ("0" to "255") or hex
	// colors ("#rrggbb"); "none" disables accent coloring.
	Accent string `toml:"accent"`

	// CodeTheme is the chroma theme for rendered markdown code blocks,
	// e.g. "monokai", "dracula", "github".
	CodeTheme string `toml:"code_theme"`
}

// Load reads the configuration from the default location. A missing file is
// not an error; it yields a zero config.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultPath returns the config file path. ~/.config/shogun/config.toml
// wins when it exists; otherwise the OS config dir is used.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "shogun", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "shogun", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}
