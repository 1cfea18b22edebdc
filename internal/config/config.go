// Package config holds the storefront configuration: the remote shop API
// endpoint, page sizes for the two list views, the local session store path,
// toast timing, and logging. Configuration is read from a YAML file with
// defaults applied for anything missing, then overridden from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all storefront configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Remote shop API
	API APIConfig `yaml:"api"`

	// List view page sizes
	Listing ListingConfig `yaml:"listing"`

	// Local session store
	Session SessionConfig `yaml:"session"`

	// Toast notifications
	Toast ToastConfig `yaml:"toast"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the remote shop API client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// ListingConfig configures the paginated list views.
type ListingConfig struct {
	// Products per page on the flat product list
	ProductsPerPage int `yaml:"products_per_page"`

	// Products per page inside a category
	CategoryPerPage int `yaml:"category_per_page"`
}

// SessionConfig configures the persistent session store.
type SessionConfig struct {
	// SQLite database holding the session key-value pairs
	DatabasePath string `yaml:"database_path"`
}

// ToastConfig configures toast notifications.
type ToastConfig struct {
	// Auto-dismiss timeout, e.g. "4s"
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level     string `yaml:"level"`  // debug, info, warn, error
	Format    string `yaml:"format"` // json, text
	Dir       string `yaml:"dir"`
	DebugMode bool   `yaml:"debug_mode"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "storefront",
		Version: "1.0.0",

		API: APIConfig{
			BaseURL: "http://localhost:9090/api/",
			Timeout: "10s",
		},

		Listing: ListingConfig{
			ProductsPerPage: 18,
			CategoryPerPage: 12,
		},

		Session: SessionConfig{
			DatabasePath: "data/storefront.db",
		},

		Toast: ToastConfig{
			Timeout: "4s",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Dir:    "data/logs",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("STOREFRONT_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if path := os.Getenv("STOREFRONT_DB"); path != "" {
		c.Session.DatabasePath = path
	}
	if level := os.Getenv("STOREFRONT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// GetAPITimeout returns the API timeout as a duration.
func (c *Config) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetToastTimeout returns the toast auto-dismiss timeout as a duration.
func (c *Config) GetToastTimeout() time.Duration {
	d, err := time.ParseDuration(c.Toast.Timeout)
	if err != nil {
		return 4 * time.Second
	}
	return d
}

// Validate checks the configuration for values the client cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Listing.ProductsPerPage <= 0 {
		return fmt.Errorf("listing.products_per_page must be positive, got %d", c.Listing.ProductsPerPage)
	}
	if c.Listing.CategoryPerPage <= 0 {
		return fmt.Errorf("listing.category_per_page must be positive, got %d", c.Listing.CategoryPerPage)
	}
	return nil
}
