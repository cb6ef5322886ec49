package app

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FITTRACK_BASE_URL", "")
	t.Setenv("FITTRACK_TIMEOUT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected default base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout != 12*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.Timeout)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FITTRACK_BASE_URL", "https://fitness.example.com")
	t.Setenv("FITTRACK_TIMEOUT", "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseURL != "https://fitness.example.com" {
		t.Fatalf("unexpected base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Timeout)
	}
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	t.Setenv("FITTRACK_TIMEOUT", "soon")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for non-numeric timeout")
	}
}
