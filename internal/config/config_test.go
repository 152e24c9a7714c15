package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("expected default base URL, got %q", cfg.APIBaseURL)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("expected default base URL, got %q", cfg.APIBaseURL)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "apiBaseURL: https://file.example/api\nlogLevel: debug\ncacheStaleTime: 2m\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://file.example/api" {
		t.Fatalf("file value not applied, got %q", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level not applied, got %q", cfg.LogLevel)
	}

	t.Setenv("POSTCRAFT_API_BASE_URL", "https://env.example/api")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if cfg.APIBaseURL != "https://env.example/api" {
		t.Fatalf("env override not applied, got %q", cfg.APIBaseURL)
	}

	d, err := ParseDuration(cfg.CacheStaleTime)
	if err != nil {
		t.Fatalf("parse stale time: %v", err)
	}
	if d != 2*time.Minute {
		t.Fatalf("stale time = %v", d)
	}
}

func TestLoadRejectsBadURL(t *testing.T) {
	t.Setenv("POSTCRAFT_API_BASE_URL", "not a url")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid base URL")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("POSTCRAFT_CACHE_STALE_TIME", "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
