// Package config loads service configuration from an optional YAML file
// with environment variable expansion, falling back to environment
// variables and built-in defaults so the service runs with no file at all.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts "30s"/"2m" style values in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	dur, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config describes server wiring and upstream behaviour.
type Config struct {
	// Listen is the address the HTTP server binds, e.g. ":3000".
	Listen string `yaml:"listen"`
	// BaseURL is the upstream site root.
	BaseURL string `yaml:"base_url"`
	// UserAgent overrides the browser-like default sent upstream.
	UserAgent string `yaml:"user_agent"`
	// Timeout bounds each upstream request end to end.
	Timeout Duration `yaml:"timeout"`
	// Proxy routes upstream traffic (http, https, or socks5 URL).
	Proxy string `yaml:"proxy"`
	// PageInterval is the minimum spacing between upstream page fetches;
	// zero disables throttling.
	PageInterval Duration `yaml:"page_interval"`
	// MediaInterval is the minimum spacing between media streams.
	MediaInterval Duration `yaml:"media_interval"`
	// Metrics toggles the Prometheus /metrics endpoint.
	Metrics bool `yaml:"metrics"`
}

// Default returns the built-in configuration, honouring the PORT
// environment variable the way the service has always been deployed.
func Default() Config {
	cfg := Config{
		Listen:        ":3000",
		BaseURL:       "https://www.tiktok.com",
		Timeout:       Duration(30 * time.Second),
		PageInterval:  Duration(time.Second),
		MediaInterval: Duration(200 * time.Millisecond),
		Metrics:       true,
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Listen = ":" + port
	}
	if p := strings.TrimSpace(os.Getenv("TOKVIEW_PROXY")); p != "" {
		cfg.Proxy = p
	}
	return cfg
}

// Load reads a YAML config file over the defaults. ${VAR} references in the
// file are expanded from the environment before parsing.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields a typo would most likely break.
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	if c.Timeout < 0 || c.PageInterval < 0 || c.MediaInterval < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
