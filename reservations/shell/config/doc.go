// Package config loads the reservation server configuration from the environment
// and provides factory functions for the PostgreSQL connections of the different
// driver types (pgx.Pool, sql.DB, sqlx.DB).
//
// This package is part of the shell (infrastructure) layer.
package config
