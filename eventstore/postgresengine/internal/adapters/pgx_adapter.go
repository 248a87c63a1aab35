package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/room-reservations-go/eventstore"
)

// PGXAdapter runs the engine's SQL on a pgx pool. Reads asking for eventual consistency
// go to the replica, when there is one.
type PGXAdapter struct {
	primary *pgxpool.Pool
	replica *pgxpool.Pool
}

// NewPGXAdapter uses primary for everything.
func NewPGXAdapter(primary *pgxpool.Pool) PGXAdapter {
	return PGXAdapter{primary: primary}
}

// NewPGXAdapterWithReplica uses replica for eventually consistent reads.
func NewPGXAdapterWithReplica(primary *pgxpool.Pool, replica *pgxpool.Pool) PGXAdapter {
	return PGXAdapter{primary: primary, replica: replica}
}

func (a PGXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := a.readPool(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxRows{Rows: rows}, nil
}

// Exec never touches the replica.
func (a PGXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	tag, err := a.primary.Exec(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxResult(tag), nil
}

func (a PGXAdapter) readPool(ctx context.Context) *pgxpool.Pool {
	if a.replica != nil && eventstore.GetConsistencyLevel(ctx) == eventstore.EventualConsistency {
		return a.replica
	}

	return a.primary
}

// pgxRows adds the error result to Close, pgx reports close errors through Err.
type pgxRows struct {
	pgx.Rows
}

func (r pgxRows) Close() error {
	r.Rows.Close()
	return r.Rows.Err()
}

type pgxResult pgconn.CommandTag

func (r pgxResult) RowsAffected() (int64, error) {
	return pgconn.CommandTag(r).RowsAffected(), nil
}
