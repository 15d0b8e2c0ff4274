package repo

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/backend/internal/config"
)

// Open builds the BlobStore selected by cfg.StorageDriver, applying schema
// migrations for the SQL drivers. The returned close function releases any
// connections and is never nil.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (BlobStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.DriverMemory:
		return NewMemoryBlobStore(), noop, nil

	case config.DriverFile:
		return NewFileBlobStore(cfg.DataDir), noop, nil

	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o700); err != nil {
			return nil, noop, fmt.Errorf("repo.Open: create sqlite dir: %w", err)
		}
		conn, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		if err := Migrate(ctx, conn, goose.DialectSQLite3, log); err != nil {
			conn.Close()
			return nil, noop, err
		}
		return NewSQLiteBlobStore(conn), conn.Close, nil

	case config.DriverPostgres:
		// goose needs database/sql; the store itself uses the pgx pool.
		if err := migratePostgres(ctx, cfg.DatabaseURL, log); err != nil {
			return nil, noop, err
		}
		// pgxpool.New does not open connections immediately; the ping does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("repo.Open: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("repo.Open: ping: %w", err)
		}
		return NewPostgresBlobStore(pool), func() error { pool.Close(); return nil }, nil

	default:
		return nil, noop, fmt.Errorf("repo.Open: unknown storage driver %q", cfg.StorageDriver)
	}
}

func migratePostgres(ctx context.Context, dsn string, log *slog.Logger) error {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("repo.Open: open migration connection: %w", err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("repo.Open: ping: %w", err)
	}
	return Migrate(ctx, conn, goose.DialectPostgres, log)
}
