// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Display  DisplayConfig  `toml:"display"`
	Snapshot SnapshotConfig `toml:"snapshot"`
}

// DisplayConfig maps settings for the interactive diagram.
type DisplayConfig struct {
	Lang *string `toml:"lang"`
	FPS  *int    `toml:"fps"`
}

// SnapshotConfig maps settings for PNG export.
type SnapshotConfig struct {
	Width      *int    `toml:"width"`
	Font       *string `toml:"font"`
	Out        *string `toml:"out"`
	Background *string `toml:"background"`
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
