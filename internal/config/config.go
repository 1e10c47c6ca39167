// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// envPrefix is prepended to every variable name in Config's env tags.
const envPrefix = "MYJOURNAL_"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr      string        `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"myjournal.db"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	ExportDir       string        `env:"EXPORT_DIR" envDefault:"journal-export"`
	ExportInterval  time.Duration `env:"EXPORT_INTERVAL" envDefault:"0s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from MYJOURNAL_* environment variables and returns
// a validated Config. Every variable is optional:
// MYJOURNAL_LISTEN_ADDR (127.0.0.1:8080), MYJOURNAL_DB_PATH (myjournal.db),
// MYJOURNAL_LOG_LEVEL (info), MYJOURNAL_EXPORT_DIR (journal-export),
// MYJOURNAL_EXPORT_INTERVAL (0s, periodic export off),
// MYJOURNAL_SHUTDOWN_TIMEOUT (10s).
func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, fmt.Errorf("%sDB_PATH must not be empty", envPrefix))
	}
	if c.ListenAddr == "" {
		errs = append(errs, fmt.Errorf("%sLISTEN_ADDR must not be empty", envPrefix))
	}
	if c.ExportInterval < 0 {
		errs = append(errs, fmt.Errorf("%sEXPORT_INTERVAL must not be negative, got %s", envPrefix, c.ExportInterval))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%sSHUTDOWN_TIMEOUT must be positive, got %s", envPrefix, c.ShutdownTimeout))
	}
	return errors.Join(errs...)
}
