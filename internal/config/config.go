// Package config loads service configuration from environment variables
// (and an optional .env file) via viper, the way the rest of the corpus
// configures its HTTP services.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the planning service.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Postgres PostgresConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"SERVER_HOST"`
	Port         int           `mapstructure:"SERVER_PORT"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `mapstructure:"SERVER_IDLE_TIMEOUT"`
	CORSOrigins  []string      `mapstructure:"CORS_ORIGINS"`
}

// StorageConfig holds the SQLite paths used for the audit trail and the
// distance-matrix cache when no Postgres DSN is configured.
type StorageConfig struct {
	AuditDBPath string `mapstructure:"AUDIT_DB_PATH"`
	CacheDBPath string `mapstructure:"CACHE_DB_PATH"`
}

// PostgresConfig holds PostgreSQL connection settings, used in place of
// SQLite when DATABASE_URL is set.
type PostgresConfig struct {
	DSN string `mapstructure:"DATABASE_URL"`
}

// Addr returns the HTTP listen address in host:port format.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UsesPostgres reports whether a Postgres DSN was configured.
func (p *PostgresConfig) UsesPostgres() bool {
	return p.DSN != ""
}

// Load reads configuration from environment variables and an optional
// .env file, applying the same defaults-then-override pattern used
// throughout the corpus.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_READ_TIMEOUT", "5s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "120s")
	viper.SetDefault("CORS_ORIGINS", []string{"*"})

	viper.SetDefault("AUDIT_DB_PATH", "data/audit.db")
	viper.SetDefault("CACHE_DB_PATH", "data/distcache.db")

	viper.SetDefault("DATABASE_URL", "")

	// A missing .env is expected in production, where the environment is
	// injected directly; only a malformed file is worth reporting.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read .env: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			ReadTimeout:  viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  viper.GetDuration("SERVER_IDLE_TIMEOUT"),
			CORSOrigins:  viper.GetStringSlice("CORS_ORIGINS"),
		},
		Storage: StorageConfig{
			AuditDBPath: viper.GetString("AUDIT_DB_PATH"),
			CacheDBPath: viper.GetString("CACHE_DB_PATH"),
		},
		Postgres: PostgresConfig{
			DSN: viper.GetString("DATABASE_URL"),
		},
	}

	return cfg, nil
}
