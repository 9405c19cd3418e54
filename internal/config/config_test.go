package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.BaseURL != "https://api.quiverquant.com/beta" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("expected 15s default timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %q", cfg.LogLevel)
	}
	if cfg.SettingsFile == "" {
		t.Error("expected a default settings file path")
	}
}

func TestLoadReadsTokenFromEnv(t *testing.T) {
	t.Setenv("AUTHORISATION_TOKEN", "env-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.AuthToken != "env-token" {
		t.Errorf("expected token from environment, got %q", cfg.AuthToken)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}
}
