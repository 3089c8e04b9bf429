// Package db provides PostgreSQL persistence for catalog snapshots.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors.
var (
	ErrNotFound = errors.New("not found")
)

// Pool is the subset of *pgxpool.Pool the repositories use.
// Defined as an interface for testing.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// NewWithPool wraps an existing pool.
func NewWithPool(pool Pool) *DB {
	return &DB{pool: pool}
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

const schema = `
	CREATE TABLE IF NOT EXISTS catalog_entities (
		id         UUID PRIMARY KEY,
		kind       TEXT NOT NULL,
		entity_id  TEXT NOT NULL,
		payload    JSONB NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL,
		UNIQUE (kind, entity_id)
	);
	CREATE INDEX IF NOT EXISTS catalog_entities_fetched_at_idx ON catalog_entities (fetched_at);
`

// Migrate creates the tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// Entities returns an EntityRepository.
func (db *DB) Entities() *EntityRepository {
	return &EntityRepository{pool: db.pool}
}
