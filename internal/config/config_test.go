package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.ToastDuration != 2500*time.Millisecond || cfg.ToastLeave != 200*time.Millisecond {
		t.Fatalf("unexpected toast timings %v/%v", cfg.ToastDuration, cfg.ToastLeave)
	}
	if cfg.CredentialCookie != "auth_cookie" || cfg.CredentialCookieDays != 7 {
		t.Fatalf("unexpected credential cookie settings %q/%d", cfg.CredentialCookie, cfg.CredentialCookieDays)
	}
	if got := cfg.BaseURL(); got != "http://127.0.0.1:8080" {
		t.Fatalf("BaseURL = %q", got)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_HOST", "portal.example.edu")
	t.Setenv("API_SCHEME", "https")
	t.Setenv("TOAST_DURATION_MS", "4000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.BaseURL(); got != "https://portal.example.edu:8080" {
		t.Fatalf("BaseURL = %q", got)
	}
	if cfg.ToastDuration != 4*time.Second {
		t.Fatalf("ToastDuration = %v", cfg.ToastDuration)
	}
}

func TestBaseURLOverride(t *testing.T) {
	cfg := &Config{APIBaseURL: "https://api.example.edu/", APIPort: 8080}
	if got := cfg.BaseURL(); got != "https://api.example.edu" {
		t.Fatalf("BaseURL = %q", got)
	}
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_MS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero request timeout")
	}
}
