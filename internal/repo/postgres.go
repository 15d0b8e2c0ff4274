package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgBlobStore is the Postgres implementation of BlobStore.
type pgBlobStore struct {
	db db
}

// NewPostgresBlobStore constructs a BlobStore backed by the blobs table.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresBlobStore(db db) BlobStore {
	return &pgBlobStore{db: db}
}

// Get reads one blob by key.
func (r *pgBlobStore) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM blobs WHERE key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repo.PostgresBlobStore.Get: %w", err)
	}
	return value, true, nil
}

// Set upserts one blob.
func (r *pgBlobStore) Set(ctx context.Context, key, blob string) error {
	const q = `
		INSERT INTO blobs (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": blob}); err != nil {
		return fmt.Errorf("repo.PostgresBlobStore.Set: %w", err)
	}
	return nil
}

// Remove deletes one blob. A missing key is not an error.
func (r *pgBlobStore) Remove(ctx context.Context, key string) error {
	const q = `DELETE FROM blobs WHERE key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.PostgresBlobStore.Remove: %w", err)
	}
	return nil
}
