package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DisplayConfig represents a rem.toml configuration file controlling how
// derivations are printed.
type DisplayConfig struct {
	// Color enables styled output for rule names and conclusions.
	Color bool `toml:"color"`

	// Tree prints whole derivation trees instead of one step per rule
	// application.
	Tree bool `toml:"tree"`
}

// DefaultDisplayConfig is used when no rem.toml is found.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{Color: true, Tree: true}
}

// LoadDisplayConfig loads a rem.toml file from the given path.
func LoadDisplayConfig(path string) (DisplayConfig, error) {
	config := DefaultDisplayConfig()
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return DisplayConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return config, nil
}

// FindDisplayConfig searches for a rem.toml file starting from dir and
// walking up to parent directories, stopping at a .git boundary. The default
// configuration is returned when no file is found.
func FindDisplayConfig(dir string) (DisplayConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return DisplayConfig{}, err
	}
	for {
		path := filepath.Join(dir, "rem.toml")
		if _, err := os.Stat(path); err == nil {
			return LoadDisplayConfig(path)
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return DefaultDisplayConfig(), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return DefaultDisplayConfig(), nil
		}
		dir = parent
	}
}
