// Package config loads the service configuration from the environment.
//
// Every setting has a default that works for local development, so the server
// starts with no environment at all: SQLite under data/, port 8080, auth off.
// cmd/* load an optional .env file first (godotenv), then call Load.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all runtime configuration.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	Env             string        `env:"APP_ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Store   Store
	Auth    Auth
	Trivia  Trivia
	Metrics Metrics
}

// Store selects and configures the question store.
type Store struct {
	Driver      string `env:"DB_DRIVER" envDefault:"sqlite"`
	Path        string `env:"DB_PATH" envDefault:"data/trivia.db"`
	DatabaseURL string `env:"DATABASE_URL"`
	MaxConns    int    `env:"DB_MAX_CONNS" envDefault:"10"`
}

// Auth configures the optional bearer-token guard. An empty secret turns it off.
type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
	JWTIssuer string `env:"JWT_ISSUER" envDefault:"trivia-api"`
}

// Trivia holds the gameplay knobs.
type Trivia struct {
	QuestionsPerPage    int  `env:"QUESTIONS_PER_PAGE" envDefault:"10"`
	AllowZeroDifficulty bool `env:"ALLOW_ZERO_DIFFICULTY" envDefault:"false"`
}

// Metrics toggles the Prometheus endpoint.
type Metrics struct {
	Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load parses environment variables into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MaxDBConns caps DB_MAX_CONNS; the pgx pool size is an int32.
const MaxDBConns = 1000

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}

	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("DB_PATH is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
		if c.Store.MaxConns < 1 || c.Store.MaxConns > MaxDBConns {
			errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be between 1 and %d", MaxDBConns))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not one of sqlite, postgres, memory", c.Store.Driver))
	}

	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters"))
	}
	if c.Trivia.QuestionsPerPage < 1 {
		errs = append(errs, errors.New("QUESTIONS_PER_PAGE must be at least 1"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q is not one of text, json", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// AuthEnabled reports whether the mutating routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

// NewLogger builds the slog logger described by LOG_LEVEL and LOG_FORMAT.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", s)
	}
	return level, nil
}
