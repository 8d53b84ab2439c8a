package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

// Config holds all process configuration. It is built once at startup and
// passed down explicitly; nothing in this package is cached globally.
type Config struct {
	Env            string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"PORT" envDefault:"5050"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	GoogleClientID string   `env:"GOOGLE_CLIENT_ID"`
	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:","`
}

var (
	ErrMissingDatabaseURL    = errors.New("DATABASE_URL is not set")
	ErrMissingGoogleClientID = errors.New("GOOGLE_CLIENT_ID is not set")
)

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required settings are present. A missing Google
// client id is a startup error: the google-verify and complete-profile
// endpoints cannot validate tokens without it.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.GoogleClientID == "" {
		return ErrMissingGoogleClientID
	}
	return nil
}

// Production reports whether the process runs in production cookie mode
// (Secure flag on session cookies).
func (c Config) Production() bool {
	return c.Env == "production"
}
