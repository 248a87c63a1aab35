package main

import (
	"flag"

	"github.com/AntonStoeckl/room-reservations-go/reservations/shell/config"
)

// applyFlags overrides the environment configuration with the command line flags that were set.
func applyFlags(cfg config.Config, args []string) (config.Config, error) {
	flags := flag.NewFlagSet("reservations-server", flag.ContinueOnError)

	var (
		addr     = flags.String("addr", cfg.HTTPAddr, "HTTP listen address")
		adapter  = flags.String("adapter", string(cfg.AdapterType), "event store adapter: pgx.pool, sql.db, sqlx.db or memory")
		logLevel = flags.String("log-level", cfg.LogLevel.String(), "log level: debug, info, warn or error")
	)

	if err := flags.Parse(args); err != nil {
		return config.Config{}, err
	}

	var err error

	cfg.HTTPAddr = *addr

	if cfg.AdapterType, err = config.ParseAdapterType(*adapter); err != nil {
		return config.Config{}, err
	}

	if cfg.LogLevel, err = config.ParseLogLevel(*logLevel); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
