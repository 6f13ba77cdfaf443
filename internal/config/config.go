// Package config loads the optional claudia-build.yaml project file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project file claudia-build looks for when locating
// the project root.
const ConfigFileName = "claudia-build.yaml"

// Config represents the claudia-build.yaml configuration file. Every field
// has a default, so a project without the file builds with the stock
// Claudia layout.
type Config struct {
	// App holds naming for the produced artifacts.
	App AppConfig `yaml:"app"`

	// Paths holds the project-relative directory layout.
	Paths PathsConfig `yaml:"paths"`

	// Tools are the external commands required before any work begins,
	// checked in order.
	Tools []string `yaml:"tools,omitempty"`
}

// AppConfig holds artifact naming.
type AppConfig struct {
	// Name is the artifact prefix, e.g. "claudia" in claudia-linux-x86_64.
	Name string `yaml:"name"`
	// Product is the display name used in the VERSION manifest.
	Product string `yaml:"product"`
	// Binary is the compiler's output binary name.
	Binary string `yaml:"binary"`
}

// PathsConfig holds the directory layout relative to the project root.
type PathsConfig struct {
	Native   string `yaml:"native"`
	Frontend string `yaml:"frontend"`
	Dist     string `yaml:"dist"`
	Icon     string `yaml:"icon"`
}

// Load reads claudia-build.yaml from the project root. A missing file is
// not an error; the defaults describe the stock layout.
func Load(projectRoot string) (*Config, error) {
	var config Config

	path := filepath.Join(projectRoot, ConfigFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.App.Binary == "" {
		return fmt.Errorf("app.binary is required")
	}
	if c.Paths.Native == "" {
		return fmt.Errorf("paths.native is required")
	}
	if filepath.IsAbs(c.Paths.Dist) {
		return fmt.Errorf("paths.dist must be project-relative")
	}
	return nil
}

// applyDefaults sets the stock Claudia layout for missing fields.
func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "claudia"
	}
	if c.App.Product == "" {
		c.App.Product = "Claudia"
	}
	if c.App.Binary == "" {
		c.App.Binary = "claudia"
	}
	if c.Paths.Native == "" {
		c.Paths.Native = "src-tauri"
	}
	if c.Paths.Frontend == "" {
		c.Paths.Frontend = "."
	}
	if c.Paths.Dist == "" {
		c.Paths.Dist = "dist"
	}
	if c.Paths.Icon == "" {
		c.Paths.Icon = filepath.Join("src-tauri", "icons", "icon.ico")
	}
	if len(c.Tools) == 0 {
		c.Tools = []string{"bun", "cargo", "rustup"}
	}
}

// FindRoot walks up from dir looking for a claudia-build.yaml or the
// native source directory.
func FindRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "src-tauri")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("not a claudia project (no %s or src-tauri directory found)", ConfigFileName)
}
