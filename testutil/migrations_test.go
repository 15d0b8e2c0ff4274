package testutil_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/migrations"
	"github.com/pkordes/trip-planner/backend/testutil"
)

// TestMigrations_Postgres is an integration test that verifies the full
// migration round-trip against a real Postgres database:
//
//  1. Apply all migrations (goose up).
//  2. Assert the blobs table exists.
//  3. Roll back all migrations (goose down-to 0).
//  4. Assert the table has been removed.
//
// The test is skipped automatically when TEST_DATABASE_URL is not set.
func TestMigrations_Postgres(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.Postgres())
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may have already applied migrations against this
	// shared test DB. Reset to version 0 first so this test is order-independent.
	if _, err := provider.DownTo(ctx, 0); err != nil {
		t.Fatalf("TestMigrations_Postgres: initial reset: %v", err)
	}

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")
	assertPostgresTable(t, db, "blobs", true)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assertPostgresTable(t, db, "blobs", false)
}

// TestMigrations_SQLite runs the same round-trip against a temp SQLite file.
func TestMigrations_SQLite(t *testing.T) {
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite())
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.Len(t, results, 2)
	assertSQLiteTable(t, db, "blobs", true)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assertSQLiteTable(t, db, "blobs", false)
}

func assertPostgresTable(t *testing.T, db *sql.DB, table string, shouldExist bool) {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)
	assert.Equal(t, shouldExist, exists, "table %q presence", table)
}

func assertSQLiteTable(t *testing.T, db *sql.DB, table string, shouldExist bool) {
	t.Helper()

	const q = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	var n int
	err := db.QueryRowContext(context.Background(), q, table).Scan(&n)
	require.NoError(t, err, "check table existence for %q", table)
	assert.Equal(t, shouldExist, n == 1, "table %q presence", table)
}
