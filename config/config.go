// Package config provides configuration loading and management for tacsym.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tacsym configuration
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Fires   FiresConfig   `yaml:"fires"`
	NATS    NATSConfig    `yaml:"nats"`
}

// CatalogConfig configures the symbology catalog source
type CatalogConfig struct {
	// Paths lists YAML definition files merged in order (empty = bundled set)
	Paths []string `yaml:"paths"`
	// Watch reloads the catalog when a definition file changes
	Watch bool `yaml:"watch"`
}

// FiresConfig configures the fire-record service client
type FiresConfig struct {
	// BaseURL is the fire-record service endpoint (e.g., "http://localhost:8085/api")
	BaseURL string `yaml:"base_url"`
	// Timeout is the per-request HTTP timeout
	Timeout time.Duration `yaml:"timeout"`
}

// NATSConfig configures fire-event publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = event publishing disabled)
	URL string `yaml:"url"`
	// SubjectPrefix is the leading subject token for published events
	SubjectPrefix string `yaml:"subject_prefix"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Paths: nil, // Bundled definitions
			Watch: false,
		},
		Fires: FiresConfig{
			BaseURL: "http://localhost:8085/api",
			Timeout: 30 * time.Second,
		},
		NATS: NATSConfig{
			URL:           "", // Disabled
			SubjectPrefix: "tacsym",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Fires.BaseURL == "" {
		return fmt.Errorf("fires.base_url is required")
	}
	if c.Fires.Timeout <= 0 {
		return fmt.Errorf("fires.timeout must be positive")
	}
	if c.NATS.SubjectPrefix == "" {
		return fmt.Errorf("nats.subject_prefix is required")
	}
	if strings.ContainsAny(c.NATS.SubjectPrefix, " .*>") {
		return fmt.Errorf("nats.subject_prefix must be a single subject token")
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

	// Catalog
	if len(other.Catalog.Paths) > 0 {
		c.Catalog.Paths = other.Catalog.Paths
	}
	if other.Catalog.Watch {
		c.Catalog.Watch = true
	}

	// Fires
	if other.Fires.BaseURL != "" {
		c.Fires.BaseURL = other.Fires.BaseURL
	}
	if other.Fires.Timeout != 0 {
		c.Fires.Timeout = other.Fires.Timeout
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.SubjectPrefix != "" {
		c.NATS.SubjectPrefix = other.NATS.SubjectPrefix
	}
}
