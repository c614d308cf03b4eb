package siteadmin

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the complete, immutable runtime configuration.
//
// Config instances are built once at process start by [Load] and passed by
// reference into every component. Nothing reads the environment after that.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Session  SessionConfig  `mapstructure:"session"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Log      LogConfig      `mapstructure:"log"`
}

/*
====================================
SERVER CONFIG
====================================
*/

// ServerConfig holds the HTTP listener settings and the externally visible
// application URL used as a redirect fallback.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	AppURL          string        `mapstructure:"app_url" validate:"required,url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls the signed session cookie and the backing store.
//
// CookieTTL is how long a session stays live from its last save; StoreTTL is
// the store-level retention ceiling and must not be shorter than CookieTTL.
type SessionConfig struct {
	Backend      string        `mapstructure:"backend" validate:"oneof=redis memory"`
	CookieName   string        `mapstructure:"cookie_name" validate:"required"`
	CookieSecret string        `mapstructure:"cookie_secret" validate:"required,min=32"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
	CookieTTL    time.Duration `mapstructure:"cookie_ttl" validate:"gt=0"`
	StoreTTL     time.Duration `mapstructure:"store_ttl" validate:"gt=0,gtefield=CookieTTL"`
	RedisAddr    string        `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisPrefix  string        `mapstructure:"redis_prefix" validate:"required_if=Backend redis"`
}

/*
====================================
UPSTREAM CONFIG
====================================
*/

// UpstreamConfig points at the external services this backend proxies to.
// APIBaseURL serves the site/idea APIs and the OAuth login endpoint;
// UserAPIBaseURL serves the user directory. Timeout bounds every call.
type UpstreamConfig struct {
	APIBaseURL     string        `mapstructure:"api_base_url" validate:"required,url"`
	UserAPIBaseURL string        `mapstructure:"user_api_base_url" validate:"required,url"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

/*
====================================
LOG CONFIG
====================================
*/

// LogConfig selects the zerolog level.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
}

// DefaultConfig returns a Config with the documented defaults applied.
// Callers still need to supply the cookie secret and upstream URLs.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8111",
			ShutdownTimeout: 15 * time.Second,
		},
		Session: SessionConfig{
			Backend:     "redis",
			CookieName:  "authorization.sid",
			CookieTTL:   7 * 24 * time.Hour,
			StoreTTL:    31 * 24 * time.Hour,
			RedisPrefix: "sa",
		},
		Upstream: UpstreamConfig{
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from the environment (prefix SITEADMIN_, e.g.
// SITEADMIN_SESSION_COOKIE_SECRET) and optionally from the YAML file at path,
// applies defaults, validates, and returns the immutable result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("siteadmin")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct-level constraints. Load calls this; tests that
// assemble a Config by hand should call it too.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.app_url", "")
	v.SetDefault("server.shutdown_timeout", def.Server.ShutdownTimeout)

	v.SetDefault("session.backend", def.Session.Backend)
	v.SetDefault("session.cookie_name", def.Session.CookieName)
	v.SetDefault("session.cookie_secret", "")
	v.SetDefault("session.cookie_secure", def.Session.CookieSecure)
	v.SetDefault("session.cookie_ttl", def.Session.CookieTTL)
	v.SetDefault("session.store_ttl", def.Session.StoreTTL)
	v.SetDefault("session.redis_addr", "")
	v.SetDefault("session.redis_prefix", def.Session.RedisPrefix)

	v.SetDefault("upstream.api_base_url", "")
	v.SetDefault("upstream.user_api_base_url", "")
	v.SetDefault("upstream.timeout", def.Upstream.Timeout)

	v.SetDefault("log.level", def.Log.Level)
}
