// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: rc file loading with defaults for the editor.

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const rcName = "rnanorc"

// Config holds the user-tunable editor settings. Command-line flags
// override whatever is loaded here.
type Config struct {
	LineNumbers  bool   `toml:"line_numbers"`
	EnableLogger bool   `toml:"enable_logger"`
	LogFile      string `toml:"log_file"`
	History      bool   `toml:"history"`
}

// Default returns the settings used when no rc file exists yet.
func Default() Config {
	return Config{
		LineNumbers:  false,
		EnableLogger: false,
		LogFile:      "rnano.log",
		History:      true,
	}
}

// Path resolves the rc file location under the user config dir.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "rnano", rcName), nil
}

// Load reads the rc file, writing one with defaults on first run. Any
// failure falls back to defaults; the editor never refuses to start over
// its rc file.
func Load() Config {
	cfg := Default()
	path, err := Path()
	if err != nil {
		log.Printf("Config: %v", err)
		return cfg
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := Save(path, cfg); werr != nil {
			log.Printf("Config: failed to write default rc file: %v", werr)
		}
		return cfg
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", path, err)
		return cfg
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		log.Printf("Config: failed to parse %s: %v", path, err)
		return Default()
	}
	return cfg
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create rc file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode rc file: %w", err)
	}
	return nil
}
