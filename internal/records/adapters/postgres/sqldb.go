package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to postgres and verifies the connection.
func Open(ctx context.Context, dsn string, opts PoolOptions) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// recapRows satisfies RowScanner directly through the embedded *sql.Rows.
type recapRows struct {
	*sql.Rows
}

var _ RowScanner = recapRows{}

// conn adapts *sql.DB to DB.
type conn struct {
	db *sql.DB
}

// NewSQLDB wraps an open pool for RecapRepository.
func NewSQLDB(db *sql.DB) DB {
	return conn{db: db}
}

func (c conn) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recaps: %w", err)
	}
	return recapRows{Rows: rows}, nil
}
