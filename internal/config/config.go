// Package config loads the application configuration.
//
// Values are layered: built-in defaults, then the config file (YAML or TOML,
// chosen by extension), then TODO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/sessiontodo/internal/session"
)

// Config holds the application configuration.
type Config struct {
	AppName  string  `yaml:"app_name" toml:"app_name" env:"TODO_APP_NAME"`
	Storage  Storage `yaml:"storage" toml:"storage"`
	Session  string  `yaml:"session" toml:"session" env:"TODO_SESSION"`
	DemoMode bool    `yaml:"demo_mode" toml:"demo_mode" env:"TODO_DEMO_MODE"`
	LogLevel string  `yaml:"log_level" toml:"log_level" env:"TODO_LOG_LEVEL"`
	Theme    string  `yaml:"theme" toml:"theme" env:"TODO_THEME"`
	DataDir  string  `yaml:"-" toml:"-"` // set by caller, not from config file
}

// Storage configures the session checkpoint backend.
type Storage struct {
	Enabled    bool   `yaml:"enabled" toml:"enabled" env:"TODO_ENABLE_STORAGE"`
	Driver     string `yaml:"driver" toml:"driver" env:"TODO_STORAGE_DRIVER"`
	Key        string `yaml:"key" toml:"key" env:"TODO_STORAGE_KEY"`
	QuotaBytes int    `yaml:"quota_bytes" toml:"quota_bytes" env:"TODO_STORAGE_QUOTA_BYTES"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		AppName: "Todo App",
		Storage: Storage{
			Enabled: true,
			Driver:  session.DriverSQLite,
			Key:     "todos",
		},
		Session:  "default",
		LogLevel: "info",
		Theme:    "classic",
	}
}

// Load reads configPath (if it exists) over the defaults, applies env
// overrides and validates the result.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := decodeFile(configPath, &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	}
	return nil
}

// applyDefaults fills zero values the file or env may have blanked.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.AppName) == "" {
		c.AppName = defaults.AppName
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	if c.Session == "" {
		c.Session = defaults.Session
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}

// EffectiveDriver is the backend actually used: disabled storage keeps the
// collection in memory for the life of the process.
func (c *Config) EffectiveDriver() string {
	if !c.Storage.Enabled {
		return session.DriverMemory
	}
	return strings.ToLower(c.Storage.Driver)
}

// SessionOptions builds the options for session.Open.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Driver:     c.EffectiveDriver(),
		DataDir:    c.DataDir,
		Session:    c.Session,
		QuotaBytes: c.Storage.QuotaBytes,
	}
}
