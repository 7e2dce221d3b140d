// Package config provides configuration loading and management for cafedesk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete cafedesk configuration
type Config struct {
	API   APIConfig   `yaml:"api"`
	Cache CacheConfig `yaml:"cache"`
	Log   LogConfig   `yaml:"log"`
}

// APIConfig configures the remote resource service connection
type APIConfig struct {
	// BaseURL is the resource service root (e.g., "http://localhost:5000")
	BaseURL string `yaml:"base_url"`
	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig configures the query cache
type CacheConfig struct {
	// StaleAfter is the staleness window for cached collections
	StaleAfter time.Duration `yaml:"stale_after"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			StaleAfter: 5 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Cache.StaleAfter <= 0 {
		return fmt.Errorf("cache.stale_after must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.API.BaseURL != "" {
		c.API.BaseURL = other.API.BaseURL
	}
	if other.API.Timeout != 0 {
		c.API.Timeout = other.API.Timeout
	}
	if other.Cache.StaleAfter != 0 {
		c.Cache.StaleAfter = other.Cache.StaleAfter
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
