// Package config loads settings from the environment and an optional dotenv file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Backend selects the remote store implementation.
type Backend string

// These constants refer to the supported backends.
const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// DefaultEnvFile is read on startup if present.
const DefaultEnvFile = ".env.local"

// Environment variable names.
const (
	EnvBackend     = "DATE_IDEAS_BACKEND"
	EnvSQLitePath  = "DATE_IDEAS_SQLITE_PATH"
	EnvPostgresDSN = "DATE_IDEAS_POSTGRES_DSN"
	EnvLogFile     = "DATE_IDEAS_LOG_FILE"
	EnvLogLevel    = "DATE_IDEAS_LOG_LEVEL"
	EnvRefresh     = "DATE_IDEAS_REFRESH"
)

// Config holds the application settings.
type Config struct {
	Backend     Backend
	SQLitePath  string
	PostgresDSN string
	LogFile     string
	LogLevel    zerolog.Level
	// Refresh is a cron spec for periodically re-fetching everything. Empty disables it.
	Refresh string
}

// Load reads envFile into the process environment, without overriding variables that
// are already set, and builds a Config from the environment. A missing envFile is not
// an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config using lookup to read variables.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v)
		}

		return def
	}

	cfg := &Config{
		Backend:     Backend(strings.ToLower(get(EnvBackend, string(BackendSQLite)))),
		SQLitePath:  get(EnvSQLitePath, "date-ideas.sqlite"),
		PostgresDSN: get(EnvPostgresDSN, ""),
		LogFile:     get(EnvLogFile, "date-ideas.log"),
		Refresh:     get(EnvRefresh, "@every 5m"),
	}

	if cfg.Backend != BackendSQLite && cfg.Backend != BackendPostgres {
		return nil, fmt.Errorf("unsupported backend %q in %s", cfg.Backend, EnvBackend)
	}

	level, err := zerolog.ParseLevel(get(EnvLogLevel, "info"))
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", EnvLogLevel, err)
	}

	cfg.LogLevel = level

	if strings.EqualFold(cfg.Refresh, "off") {
		cfg.Refresh = ""
	}

	return cfg, nil
}

// HasValidCredentials reports whether the configured backend can be reached at all.
// Without valid credentials the store refuses to make remote calls.
func (c *Config) HasValidCredentials() bool {
	switch c.Backend {
	case BackendSQLite:
		return c.SQLitePath != ""
	case BackendPostgres:
		return validDSN(c.PostgresDSN)
	default:
		return false
	}
}

func validDSN(dsn string) bool {
	if dsn == "" || strings.Contains(strings.ToLower(dsn), "placeholder") {
		return false
	}

	// key=value form, e.g. "host=db.example.supabase.co user=postgres ..."
	if !strings.Contains(dsn, "://") {
		return strings.Contains(dsn, "host=")
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return false
	}

	return (u.Scheme == "postgres" || u.Scheme == "postgresql") && u.Host != ""
}
