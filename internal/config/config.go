// Package config loads tool configuration from a YAML file, with
// sensible defaults for every field.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the tool configuration.
type Config struct {
	// Paths
	DataDir      string `yaml:"data_dir"`
	DatabasePath string `yaml:"database_path"`

	// Defaults applied when a command omits the flag
	DefaultTranslation string `yaml:"default_translation"`
	DefaultLanguage    string `yaml:"default_language"`
	DefaultOwner       string `yaml:"default_owner"`

	// Search
	SearchLimit int `yaml:"search_limit"`

	// Index cache
	CacheSize int `yaml:"cache_size"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:            ".",
		DatabasePath:       "scriptura.db",
		DefaultTranslation: "TB",
		DefaultLanguage:    "id",
		DefaultOwner:       "default",
		SearchLimit:        10,
		CacheSize:          8,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// Load reads configuration from path. A missing file yields the
// defaults; fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = "scriptura.yaml"
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.DataDir = filepath.Clean(c.DataDir)
	c.DefaultLanguage = strings.TrimSpace(strings.ToLower(c.DefaultLanguage))
	c.LogLevel = strings.TrimSpace(strings.ToLower(c.LogLevel))
	c.LogFormat = strings.TrimSpace(strings.ToLower(c.LogFormat))

	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "id"
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = 10
	}
	if c.CacheSize <= 0 {
		c.CacheSize = 8
	}
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	return nil
}
