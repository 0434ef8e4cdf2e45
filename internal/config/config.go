package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config is the environment configuration of the smoke CLI.
type Config struct {
	BaseURL        string        `env:"SMOKE_BASE_URL"`
	Attempts       int           `env:"SMOKE_ATTEMPTS" default:"3"`
	RetryDelay     time.Duration `env:"SMOKE_RETRY_DELAY" default:"1s"`
	RequestTimeout time.Duration `env:"SMOKE_REQUEST_TIMEOUT" default:"30s"`
	HomeMarkers    []string      `env:"SMOKE_MARKERS"`
	StaticPaths    []string      `env:"SMOKE_STATIC_PATHS"`
	LogLevel       string        `env:"LOG_LEVEL" default:"info"`
	LogFormat      string        `env:"LOG_FORMAT" default:"text"`
}

// Load reads an optional .env file, then the process environment.
// List values are comma separated.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, &env.Options{SliceSep: ","}); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.BaseURL == "" {
		return errors.New("SMOKE_BASE_URL is required")
	}
	if cfg.Attempts < 1 {
		return fmt.Errorf("SMOKE_ATTEMPTS must be at least 1, got %d", cfg.Attempts)
	}
	return nil
}
