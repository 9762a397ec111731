// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable with STORE.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	Port           int      `env:"PORT" envDefault:"3000"`
	Env            string   `env:"APP_ENV" envDefault:"development"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	APIPrefix      string   `env:"API_PREFIX" envDefault:"/api"`

	Store       string `env:"STORE" envDefault:"sqlite"`
	DBPath      string `env:"DB_PATH" envDefault:"data/tasks.db"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`

	BackupDir string `env:"BACKUP_DIR" envDefault:"backups"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load parses the environment into a Config and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects combinations the binaries cannot start with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.Store {
	case StoreSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite store")
		}
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		if c.DBMaxConns <= 0 {
			return fmt.Errorf("DB_MAX_CONNS must be positive")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX must start with /")
	}
	return nil
}

// Development reports whether internal error details may be exposed.
func (c Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
