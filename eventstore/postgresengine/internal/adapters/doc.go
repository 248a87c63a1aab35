// Package adapters lets the Postgres engine run the same SQL on a pgx pool, a *sql.DB or a *sqlx.DB.
package adapters
