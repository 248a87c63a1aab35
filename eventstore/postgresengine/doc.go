// Package postgresengine provides a PostgreSQL implementation of the event store the reservation
// system persists into.
//
// Key features:
//   - Multiple database adapter support (pgx.Pool, sql.DB, sqlx.DB)
//   - Atomic, conditional event appending with concurrency conflict detection
//   - Dynamic event stream filtering with JSONB containment predicates
//   - Optional read replica for eventually consistent queries (pgx only)
//   - Idempotent schema bootstrap via EnsureSchema
//
// Usage examples:
//
//	pool, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("reservation_events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	_ = store.EnsureSchema(ctx)
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
