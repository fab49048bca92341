package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/bytes"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Host      string `env:"HOST"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"debug"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	MaxBodySize     string  `env:"MAX_BODY_SIZE" default:"64K"`
	UpdateRateLimit float64 `env:"UPDATE_RATE_LIMIT" default:"10"`
	UpdateRateBurst int     `env:"UPDATE_RATE_BURST" default:"20"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DebugMode reports whether the process runs with verbose diagnostics.
func (c *Config) DebugMode() bool {
	return c.AppEnv == "development"
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port)
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got %q", cfg.LogFormat)
	}

	if size, err := bytes.Parse(cfg.MaxBodySize); err != nil || size <= 0 {
		return fmt.Errorf("MAX_BODY_SIZE must be a positive size like 64K or 1M, got %q", cfg.MaxBodySize)
	}

	if cfg.UpdateRateLimit <= 0 {
		return errors.New("UPDATE_RATE_LIMIT must be positive")
	}
	if cfg.UpdateRateBurst <= 0 {
		return errors.New("UPDATE_RATE_BURST must be positive")
	}

	if cfg.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}

	return nil
}
