// Package pgdb is the Postgres seam shared by the repositories. Readers
// depend on Querier, writers on Execer; *DB serves both from one pool.
package pgdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"ad-metrics-service/internal/config"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type DB struct {
	db *sql.DB
}

var (
	_ Querier = (*DB)(nil)
	_ Execer  = (*DB)(nil)
)

func New(db *sql.DB) *DB {
	return &DB{db: db}
}

// Open connects with the pool limits from cfg and pings once.
func Open(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.db.ExecContext(ctx, query, args...)
}
