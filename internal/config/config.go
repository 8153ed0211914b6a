// Package config loads server settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// DevPasskey is the admin passkey used in development when none is configured.
const DevPasskey = "12345"

// minSecretKeyLength is the shortest SECRET_KEY accepted in production.
const minSecretKeyLength = 32

// RedisConfig selects the optional Redis admin session backend.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Config is the server configuration.
type Config struct {
	Port   int    `env:"PORT" envDefault:"5000"`
	Env    string `env:"VOLUNTEER_ENV" envDefault:"development"`
	DBPath string `env:"VOLUNTEER_DB_PATH" envDefault:"volunteer.db"`

	SecretKey        string `env:"SECRET_KEY"`
	AdminPasskey     string `env:"VOLUNTEER_ADMIN_PASSKEY"`
	AdminPasskeyHash string `env:"VOLUNTEER_ADMIN_PASSKEY_HASH"`

	Redis RedisConfig `envPrefix:"VOLUNTEER_REDIS_"`

	ResendKey         string `env:"VOLUNTEER_RESEND_KEY"`
	EmailFrom         string `env:"VOLUNTEER_EMAIL_FROM" envDefault:"Volunteer Hours <hours@localhost>"`
	ReplyTo           string `env:"VOLUNTEER_REPLY_TO"`
	CertificateFooter string `env:"VOLUNTEER_CERTIFICATE_FOOTER"`

	RateLimit     int    `env:"VOLUNTEER_RATE_LIMIT" envDefault:"60"`
	SlowQueryMs   int    `env:"VOLUNTEER_SLOW_QUERY_MS" envDefault:"50"`
	SlowRequestMs int    `env:"VOLUNTEER_SLOW_REQUEST_MS" envDefault:"500"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Set by Validate when development defaults were filled in.
	GeneratedSecret bool `env:"-"`
	DefaultPasskey  bool `env:"-"`
}

// Load reads an optional .env file and then the process environment.
// PRE: none
// POST: Returns a validated config or the first problem found
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse(env.ToMap(os.Environ()))
}

// Parse builds a config from the given environment map.
// PRE: environ maps variable names to values
// POST: Returns a validated config or the first problem found
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate checks required settings and fills development defaults.
// PRE: none
// POST: SecretKey is set; exactly one passkey source is usable
// INVARIANT: Production never runs with a generated secret or the default passkey
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if c.RateLimit <= 0 {
		return errors.New("VOLUNTEER_RATE_LIMIT must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if c.IsProduction() {
		if len(c.SecretKey) < minSecretKeyLength {
			return fmt.Errorf("SECRET_KEY must be at least %d characters in production", minSecretKeyLength)
		}
		if c.AdminPasskey == "" && c.AdminPasskeyHash == "" {
			return errors.New("VOLUNTEER_ADMIN_PASSKEY or VOLUNTEER_ADMIN_PASSKEY_HASH is required in production")
		}
	}

	if c.SecretKey == "" {
		b := make([]byte, minSecretKeyLength)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate secret key: %w", err)
		}
		c.SecretKey = hex.EncodeToString(b)
		c.GeneratedSecret = true
	}
	if c.AdminPasskey == "" && c.AdminPasskeyHash == "" {
		c.AdminPasskey = DevPasskey
		c.DefaultPasskey = true
	}
	return nil
}

// PasskeyHash returns the bcrypt hash of the admin passkey, hashing the
// plaintext passkey when no hash was configured.
func (c *Config) PasskeyHash() ([]byte, error) {
	if c.AdminPasskeyHash != "" {
		if _, err := bcrypt.Cost([]byte(c.AdminPasskeyHash)); err != nil {
			return nil, fmt.Errorf("VOLUNTEER_ADMIN_PASSKEY_HASH is not a bcrypt hash: %w", err)
		}
		return []byte(c.AdminPasskeyHash), nil
	}
	return bcrypt.GenerateFromPassword([]byte(c.AdminPasskey), bcrypt.DefaultCost)
}

// SlogLevel parses LOG_LEVEL.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
