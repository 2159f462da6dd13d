// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Play  PlayConfig  `toml:"play"`
	Fetch FetchConfig `toml:"fetch"`
	Log   LogConfig   `toml:"log"`
}

// PlayConfig maps typing session settings.
type PlayConfig struct {
	Prompts *string  `toml:"prompts"`
	Filter  *string  `toml:"filter"`
	Count   *int     `toml:"count"`
	SkipKey *string  `toml:"skip-key"`
	QuitKey *string  `toml:"quit-key"`
	Seed    *int64   `toml:"seed"`
	Width   *float64 `toml:"width"`
}

// FetchConfig maps settings for downloading texts.
type FetchConfig struct {
	URL     *string `toml:"url"`
	Timeout *int    `toml:"timeout"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
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
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
