package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds overrides read from the environment. Empty values are unset.
type EnvConfig struct {
	ConfigPath string `env:"WPM_CONFIG"`
	Prompts    string `env:"WPM_PROMPTS"`
	LogLevel   string `env:"WPM_LOG_LEVEL"`
	LogFile    string `env:"WPM_LOG_FILE"`
	FetchURL   string `env:"WPM_FETCH_URL"`
}

// LoadEnv parses the WPM_* environment variables.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Merge applies environment overrides on top of the file config.
func (e EnvConfig) Merge(cfg FileConfig) FileConfig {
	if e.Prompts != "" {
		cfg.Play.Prompts = &e.Prompts
	}
	if e.LogLevel != "" {
		cfg.Log.Level = &e.LogLevel
	}
	if e.LogFile != "" {
		cfg.Log.File = &e.LogFile
	}
	if e.FetchURL != "" {
		cfg.Fetch.URL = &e.FetchURL
	}
	return cfg
}

// ResolveConfigPath returns the config path from the environment or the default.
func (e EnvConfig) ResolveConfigPath() string {
	if e.ConfigPath != "" {
		return e.ConfigPath
	}
	return DefaultConfigPath()
}
