package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	EnvHTTPAddr           = "RESERVATIONS_HTTP_ADDR"
	EnvPostgresDSN        = "RESERVATIONS_POSTGRES_DSN"
	EnvPostgresReplicaDSN = "RESERVATIONS_POSTGRES_REPLICA_DSN"
	EnvAdapterType        = "RESERVATIONS_ADAPTER_TYPE"
	EnvEventsTable        = "RESERVATIONS_EVENTS_TABLE"
	EnvLogLevel           = "RESERVATIONS_LOG_LEVEL"
	EnvEnsureSchema       = "RESERVATIONS_ENSURE_SCHEMA"
)

// AdapterType selects the event store engine and, for Postgres, the driver.
type AdapterType string

const (
	AdapterPGXPool AdapterType = "pgx.pool"
	AdapterSQLDB   AdapterType = "sql.db"
	AdapterSQLXDB  AdapterType = "sqlx.db"
	AdapterMemory  AdapterType = "memory"
)

const (
	defaultHTTPAddr    = ":8080"
	defaultEventsTable = "events"
)

// ErrInvalidConfig is returned for configuration values that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete configuration of the reservation server.
type Config struct {
	HTTPAddr           string
	PostgresDSN        string
	PostgresReplicaDSN string
	AdapterType        AdapterType
	EventsTable        string
	LogLevel           slog.Level
	EnsureSchema       bool
}

// FromEnv reads the configuration from the environment, unset variables get their defaults.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if val, ok := lookup(key); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}

		return fallback
	}

	cfg := Config{
		HTTPAddr:           get(EnvHTTPAddr, defaultHTTPAddr),
		PostgresDSN:        get(EnvPostgresDSN, PostgresDefaultDSN()),
		PostgresReplicaDSN: get(EnvPostgresReplicaDSN, ""),
		EventsTable:        get(EnvEventsTable, defaultEventsTable),
	}

	var err error

	if cfg.AdapterType, err = ParseAdapterType(get(EnvAdapterType, string(AdapterPGXPool))); err != nil {
		return Config{}, err
	}

	if cfg.LogLevel, err = ParseLogLevel(get(EnvLogLevel, "info")); err != nil {
		return Config{}, err
	}

	if cfg.EnsureSchema, err = strconv.ParseBool(get(EnvEnsureSchema, "true")); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvEnsureSchema, err)
	}

	return cfg, nil
}

// ParseAdapterType validates an adapter type, case-insensitively.
func ParseAdapterType(raw string) (AdapterType, error) {
	switch adapterType := AdapterType(strings.ToLower(raw)); adapterType {
	case AdapterPGXPool, AdapterSQLDB, AdapterSQLXDB, AdapterMemory:
		return adapterType, nil

	default:
		return "", fmt.Errorf("%w: unsupported adapter type %q", ErrInvalidConfig, raw)
	}
}

// ParseLogLevel parses debug, info, warn or error, case-insensitively.
func ParseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, raw)
	}

	return level, nil
}
