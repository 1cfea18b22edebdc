package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "storefront" {
		t.Errorf("expected Name=storefront, got %s", cfg.Name)
	}
	if cfg.API.BaseURL != "http://localhost:9090/api/" {
		t.Errorf("expected default API base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.Listing.ProductsPerPage != 18 {
		t.Errorf("expected ProductsPerPage=18, got %d", cfg.Listing.ProductsPerPage)
	}
	if cfg.Listing.CategoryPerPage != 12 {
		t.Errorf("expected CategoryPerPage=12, got %d", cfg.Listing.CategoryPerPage)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "")
	t.Setenv("STOREFRONT_DB", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://shop.example.test/api/"
	cfg.Listing.ProductsPerPage = 24

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.API.BaseURL != "http://shop.example.test/api/" {
		t.Errorf("expected saved base URL, got %s", loaded.API.BaseURL)
	}
	if loaded.Listing.ProductsPerPage != 24 {
		t.Errorf("expected ProductsPerPage=24, got %d", loaded.Listing.ProductsPerPage)
	}
}

func TestConfig_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "")
	t.Setenv("STOREFRONT_DB", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != DefaultConfig().API.BaseURL {
		t.Errorf("expected defaults for missing file, got %s", cfg.API.BaseURL)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "http://override.test/api/")
	t.Setenv("STOREFRONT_DB", "/tmp/override.db")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.API.BaseURL != "http://override.test/api/" {
		t.Errorf("expected overridden base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.Session.DatabasePath != "/tmp/override.db" {
		t.Errorf("expected overridden db path, got %s", cfg.Session.DatabasePath)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	cfg.API.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty base URL")
	}

	cfg = DefaultConfig()
	cfg.Listing.ProductsPerPage = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero page size")
	}
}

func TestConfig_Timeouts(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetAPITimeout().Seconds(); got != 10 {
		t.Errorf("expected 10s API timeout, got %vs", got)
	}

	cfg.Toast.Timeout = "bogus"
	if got := cfg.GetToastTimeout().Seconds(); got != 4 {
		t.Errorf("expected fallback 4s toast timeout, got %vs", got)
	}
}
