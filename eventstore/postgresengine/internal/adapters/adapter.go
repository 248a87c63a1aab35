package adapters

import "context"

// DBAdapter is what the engine needs from a connection: run a query, run a statement.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows is satisfied by *sql.Rows as is.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult is satisfied by sql.Result as is.
type DBResult interface {
	RowsAffected() (int64, error)
}
