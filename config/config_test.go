package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL != "http://localhost:5000" {
		t.Errorf("expected default base URL http://localhost:5000, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.API.Timeout)
	}
	if cfg.Cache.StaleAfter != 5*time.Minute {
		t.Errorf("expected default staleness window 5m, got %v", cfg.Cache.StaleAfter)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing base URL",
			modify:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative staleness window",
			modify:  func(c *Config) { c.Cache.StaleAfter = -time.Minute },
			wantErr: true,
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
api:
  base_url: "http://test:8080"
  timeout: 10s
cache:
  stale_after: 2m
log:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.API.BaseURL != "http://test:8080" {
		t.Errorf("expected base URL http://test:8080, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.API.Timeout)
	}
	if cfg.Cache.StaleAfter != 2*time.Minute {
		t.Errorf("expected staleness window 2m, got %v", cfg.Cache.StaleAfter)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFromFileMissingIsNotExist(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	// The loader distinguishes a missing file (fine, skip the layer) from
	// an unreadable one (warn), so the wrap must stay inspectable.
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected missing-file error to match fs.ErrNotExist, got %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		API: APIConfig{
			BaseURL: "http://override:9000",
		},
		Cache: CacheConfig{
			StaleAfter: time.Minute,
		},
	}

	base.Merge(override)

	if base.API.BaseURL != "http://override:9000" {
		t.Errorf("expected base URL http://override:9000, got %s", base.API.BaseURL)
	}
	// Timeout should remain from base since override didn't set it
	if base.API.Timeout != 30*time.Second {
		t.Errorf("expected timeout to remain default, got %v", base.API.Timeout)
	}
	if base.Cache.StaleAfter != time.Minute {
		t.Errorf("expected staleness window 1m, got %v", base.Cache.StaleAfter)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://saved:7000"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.API.BaseURL != "http://saved:7000" {
		t.Errorf("expected base URL http://saved:7000, got %s", loaded.API.BaseURL)
	}
}

func TestLoaderEnvOverride(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://env:6000")
	t.Setenv(EnvTimeout, "5s")

	cfg := DefaultConfig()
	loader := NewLoader(nil)
	if err := loader.applyEnv(cfg); err != nil {
		t.Fatalf("applyEnv() error = %v", err)
	}

	if cfg.API.BaseURL != "http://env:6000" {
		t.Errorf("expected base URL http://env:6000, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.API.Timeout)
	}
}

func TestLoaderEnvOverrideBadTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "not-a-duration")

	loader := NewLoader(nil)
	if err := loader.applyEnv(DefaultConfig()); err == nil {
		t.Error("expected error for malformed timeout")
	}
}
