package repo

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/backend/migrations"
)

// Migrate applies every pending embedded migration for dialect to conn.
// Only goose.DialectPostgres and goose.DialectSQLite3 are supported.
func Migrate(ctx context.Context, conn *sql.DB, dialect goose.Dialect, log *slog.Logger) error {
	var fsys fs.FS
	switch dialect {
	case goose.DialectPostgres:
		fsys = migrations.Postgres()
	case goose.DialectSQLite3:
		fsys = migrations.SQLite()
	default:
		return fmt.Errorf("repo.Migrate: unsupported dialect %q", dialect)
	}

	provider, err := goose.NewProvider(dialect, conn, fsys)
	if err != nil {
		return fmt.Errorf("repo.Migrate: create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("repo.Migrate: up: %w", err)
	}
	if log != nil {
		log.InfoContext(ctx, "migrations applied", "dialect", string(dialect), "count", len(results))
	}
	return nil
}
