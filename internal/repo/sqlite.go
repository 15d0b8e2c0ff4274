package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

// OpenSQLite opens the on-device SQLite database at path with WAL journaling
// and NORMAL synchronous mode, and verifies the connection.
func OpenSQLite(path string) (*sql.DB, error) {
	params := url.Values{}
	params.Add("_journal_mode", "WAL")
	params.Add("_synchronous", "NORMAL")
	params.Add("_busy_timeout", "5000")

	dsn := path
	if strings.Contains(path, "?") {
		dsn += "&" + params.Encode()
	} else {
		dsn += "?" + params.Encode()
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open %q: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping %q: %w", path, err)
	}
	return conn, nil
}

// sqliteBlobStore is the SQLite implementation of BlobStore.
type sqliteBlobStore struct {
	db *sql.DB
}

// NewSQLiteBlobStore constructs a BlobStore backed by the blobs table of conn.
// Run Migrate with the SQLite dialect first.
func NewSQLiteBlobStore(conn *sql.DB) BlobStore {
	return &sqliteBlobStore{db: conn}
}

// Get reads one blob by key.
func (r *sqliteBlobStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repo.SQLiteBlobStore.Get: %w", err)
	}
	return value, true, nil
}

// Set upserts one blob.
func (r *sqliteBlobStore) Set(ctx context.Context, key, blob string) error {
	const q = `
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, q, key, blob); err != nil {
		return fmt.Errorf("repo.SQLiteBlobStore.Set: %w", err)
	}
	return nil
}

// Remove deletes one blob. A missing key is not an error.
func (r *sqliteBlobStore) Remove(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("repo.SQLiteBlobStore.Remove: %w", err)
	}
	return nil
}
