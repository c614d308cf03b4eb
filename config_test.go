package siteadmin

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Server.AppURL = "http://app.example.org"
	cfg.Session.CookieSecret = strings.Repeat("s", 32)
	cfg.Session.RedisAddr = "localhost:6379"
	cfg.Upstream.APIBaseURL = "http://api.example.org"
	cfg.Upstream.UserAPIBaseURL = "http://users.example.org"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8111" {
		t.Fatalf("expected default addr :8111, got %q", cfg.Server.Addr)
	}
	if cfg.Session.CookieName != "authorization.sid" {
		t.Fatalf("expected default cookie name, got %q", cfg.Session.CookieName)
	}
	if cfg.Session.CookieTTL != 7*24*time.Hour {
		t.Fatalf("expected 7d cookie TTL, got %v", cfg.Session.CookieTTL)
	}
	if cfg.Session.StoreTTL != 31*24*time.Hour {
		t.Fatalf("expected 31d store retention, got %v", cfg.Session.StoreTTL)
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Fatalf("expected 10s upstream timeout, got %v", cfg.Upstream.Timeout)
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*Config)
	}{
		{"missing cookie secret", func(c *Config) { c.Session.CookieSecret = "" }},
		{"short cookie secret", func(c *Config) { c.Session.CookieSecret = "tooshort" }},
		{"unknown backend", func(c *Config) { c.Session.Backend = "postgres" }},
		{"redis backend without addr", func(c *Config) { c.Session.RedisAddr = "" }},
		{"retention below cookie ttl", func(c *Config) { c.Session.StoreTTL = time.Hour }},
		{"missing api url", func(c *Config) { c.Upstream.APIBaseURL = "" }},
		{"bogus app url", func(c *Config) { c.Server.AppURL = "not-a-url" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  app_url: http://app.example.org
session:
  backend: memory
  cookie_secret: "` + strings.Repeat("s", 32) + `"
upstream:
  api_base_url: http://api.example.org
  user_api_base_url: http://users.example.org
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("SITEADMIN_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Session.Backend != "memory" {
		t.Fatalf("expected file value for backend, got %q", cfg.Session.Backend)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected env override for log level, got %q", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":8111" {
		t.Fatalf("expected default addr to survive, got %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsIncompleteEnvironment(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected validation error without cookie secret")
	}
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
