package main

import (
	"context"
	"log/slog"

	"github.com/AntonStoeckl/room-reservations-go/eventstore/memengine"
	"github.com/AntonStoeckl/room-reservations-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/room-reservations-go/reservations/shell/config"
	"github.com/AntonStoeckl/room-reservations-go/reservations/store"
)

type eventStore interface {
	store.EventStore
	EnsureSchema(ctx context.Context) error
}

// openEventStore opens the engine selected by the adapter type. The returned func releases its connections.
func openEventStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (eventStore, func(), error) {
	options := []postgresengine.Option{
		postgresengine.WithTableName(cfg.EventsTable),
		postgresengine.WithContextualLogger(logger),
	}

	switch cfg.AdapterType {
	case config.AdapterMemory:
		return memengine.NewEventStore(memengine.WithLogger(logger)), func() {}, nil

	case config.AdapterSQLDB:
		db, err := config.OpenPostgresSQLDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		es, err := postgresengine.NewEventStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return es, func() { _ = db.Close() }, nil

	case config.AdapterSQLXDB:
		db, err := config.OpenPostgresSQLX(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return es, func() { _ = db.Close() }, nil

	default:
		return openPGXEventStore(ctx, cfg, options)
	}
}

func openPGXEventStore(ctx context.Context, cfg config.Config, options []postgresengine.Option) (eventStore, func(), error) {
	primary, err := config.OpenPostgresPGXPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}

	if cfg.PostgresReplicaDSN == "" {
		es, err := postgresengine.NewEventStoreFromPGXPool(primary, options...)
		if err != nil {
			primary.Close()
			return nil, nil, err
		}

		return es, primary.Close, nil
	}

	replica, err := config.OpenPostgresPGXPool(ctx, cfg.PostgresReplicaDSN)
	if err != nil {
		primary.Close()
		return nil, nil, err
	}

	closeBoth := func() {
		replica.Close()
		primary.Close()
	}

	es, err := postgresengine.NewEventStoreFromPGXPoolAndReplica(primary, replica, options...)
	if err != nil {
		closeBoth()
		return nil, nil, err
	}

	return es, closeBoth, nil
}
