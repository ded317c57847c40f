// Package db wires the pgx connection pool used by the Postgres settings
// provider.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// DB wraps a pgx pool together with its database/sql view, which goose
// migrations need.
type DB struct {
	Pool *pgxpool.Pool
}

// Connect opens and pings a pool for the given DSN.
func Connect(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// SQL returns a database/sql handle backed by the same pool. The caller
// owns closing it.
func (d *DB) SQL() *sql.DB {
	return stdlib.OpenDBFromPool(d.Pool)
}

// Close releases the pool.
func (d *DB) Close() {
	d.Pool.Close()
}
