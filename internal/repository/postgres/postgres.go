// Package postgres implements the repository interfaces on PostgreSQL using pgx.
//
// Queries go through a pgxpool.Pool. goose needs a *sql.DB, so the same pool is
// also exposed through pgx's database/sql adapter for migrations only.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB wraps a pgx connection pool and implements repository.Store.
type DB struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// New connects to databaseURL and applies all pending migrations.
func New(ctx context.Context, databaseURL string, maxConns int) (*DB, error) {
	db, err := Open(ctx, databaseURL, maxConns)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: running migrations: %w", err)
	}

	return db, nil
}

// Open connects without touching the schema. maxConns <= 0 keeps the pgx default.
func Open(ctx context.Context, databaseURL string, maxConns int) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parsing database url: %w", err)
	}
	if maxConns > math.MaxInt32 {
		return nil, fmt.Errorf("postgres: pool size %d is too large", maxConns)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}

	return &DB{pool: pool, sqlDB: stdlib.OpenDBFromPool(pool)}, nil
}

// Provider returns a goose migration provider bound to this database.
func (db *DB) Provider() (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("postgres: migrations fs: %w", err)
	}
	p, err := goose.NewProvider(goose.DialectPostgres, db.sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("postgres: creating migration provider: %w", err)
	}
	return p, nil
}

// Migrate applies every pending migration.
func (db *DB) Migrate(ctx context.Context) error {
	p, err := db.Provider()
	if err != nil {
		return err
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("postgres: migrating up: %w", err)
	}
	return nil
}

// Ping verifies the database is still reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close releases the database/sql adapter and then the pool.
func (db *DB) Close() error {
	err := db.sqlDB.Close()
	db.pool.Close()
	return err
}
