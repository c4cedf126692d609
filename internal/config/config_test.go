package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Listen != ":3000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.BaseURL != "https://www.tiktok.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if !cfg.Metrics {
		t.Error("metrics should default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestDefault_PortEnv(t *testing.T) {
	t.Setenv("PORT", "8123")
	if got := Default().Listen; got != ":8123" {
		t.Errorf("Listen = %q, want :8123", got)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv("UPSTREAM_PROXY", "socks5://127.0.0.1:9050")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
listen: ":8080"
base_url: "https://www.tiktok.com"
timeout: 10s
proxy: "${UPSTREAM_PROXY}"
page_interval: 2s
metrics: false
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Timeout.Std() != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Proxy != "socks5://127.0.0.1:9050" {
		t.Errorf("Proxy = %q, env not expanded", cfg.Proxy)
	}
	if cfg.PageInterval.Std() != 2*time.Second {
		t.Errorf("PageInterval = %v", cfg.PageInterval)
	}
	if cfg.Metrics {
		t.Error("metrics should be off")
	}
	// Unset fields keep their defaults.
	if cfg.MediaInterval.Std() != 200*time.Millisecond {
		t.Errorf("MediaInterval = %v", cfg.MediaInterval)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen == "" || cfg.BaseURL == "" {
		t.Errorf("defaults missing: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("listen: [:::"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte(`base_url: "not a url"`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error for relative base_url")
	}

	badDur := filepath.Join(t.TempDir(), "dur.yaml")
	if err := os.WriteFile(badDur, []byte(`timeout: soon`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(badDur); err == nil {
		t.Error("expected error for unparseable duration")
	}
}
