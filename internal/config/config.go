// Package config loads the Asista core configuration from an optional
// YAML file and the environment. Environment variables override file
// values; a .env file is honored when present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration of the core.
type Config struct {
	DataDir      string        // directory holding the record store
	HTTPAddr     string        // listen address for the localhost API
	TickInterval time.Duration // alarm match check period
	LogLevel     string        // debug, info, warn, error
}

// fileConfig is the YAML shape; durations are strings ("60s", "1m").
type fileConfig struct {
	DataDir      string `yaml:"data_dir"`
	HTTPAddr     string `yaml:"http_addr"`
	TickInterval string `yaml:"tick_interval"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:      "./data",
		HTTPAddr:     "localhost:8090",
		TickInterval: 60 * time.Second,
		LogLevel:     "info",
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty or missing), then environment overrides.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; it only seeds the environment
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.HTTPAddr != "" {
		cfg.HTTPAddr = fc.HTTPAddr
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.TickInterval != "" {
		d, err := time.ParseDuration(fc.TickInterval)
		if err != nil {
			return fmt.Errorf("invalid tick_interval %q: %w", fc.TickInterval, err)
		}
		cfg.TickInterval = d
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ASISTA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ASISTA_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ASISTA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ASISTA_TICK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ASISTA_TICK_INTERVAL %q: %w", v, err)
		}
		cfg.TickInterval = d
	}
	return nil
}
