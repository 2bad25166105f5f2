// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Validation errors returned by Load.
var (
	ErrInvalidPort       = errors.New("APP_PORT must be between 1 and 65535")
	ErrStaticRootMissing = errors.New("STATIC_ROOT is required when DEBUG is enabled")
	ErrRateLimitNoRedis  = errors.New("RATE_LIMIT_ENABLED requires REDIS_URL")
	ErrInvalidRateLimit  = errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Debug enables development conveniences such as serving static files
	// and re-reading templates on every render. Never enable in production.
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Static assets. Only served by this process when Debug is set;
	// otherwise a reverse proxy or CDN is expected to handle StaticURL.
	StaticURL  string `env:"STATIC_URL" envDefault:"/static/"`
	StaticRoot string `env:"STATIC_ROOT" envDefault:"static"`

	// Templates. Empty TemplateDir uses the templates compiled into the binary.
	TemplateDir string `env:"TEMPLATE_DIR" envDefault:""`
	MinifyHTML  bool   `env:"MINIFY_HTML" envDefault:"true"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Cache (Redis). Optional; only needed for rate limiting.
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Per-IP rate limiting of page requests
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst   int  `env:"RATE_LIMIT_BURST" envDefault:"40"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if c.AppPort < 1 || c.AppPort > 65535 {
		return ErrInvalidPort
	}
	if c.Debug && strings.TrimSpace(c.StaticRoot) == "" {
		return ErrStaticRootMissing
	}
	if c.RateLimitEnabled {
		if c.RedisURL == "" {
			return ErrRateLimitNoRedis
		}
		if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
			return ErrInvalidRateLimit
		}
	}
	return nil
}

// NormalizeStaticURL returns prefix with exactly one leading and one trailing slash.
// An empty prefix yields "/static/".
func NormalizeStaticURL(prefix string) string {
	trimmed := strings.Trim(strings.TrimSpace(prefix), "/")
	if trimmed == "" {
		return "/static/"
	}
	return "/" + trimmed + "/"
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.StaticURL = NormalizeStaticURL(cfg.StaticURL)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
