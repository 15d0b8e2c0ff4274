// Package repo contains all durable-storage access for the trip planner.
// The store treats storage as an opaque string blob per key; each backend in
// this package implements BlobStore. No business logic lives here.
package repo

import "context"

// BlobStore is the persistence adapter the trip store writes through.
// Every call is independently fallible and there is no multi-key transaction.
type BlobStore interface {
	// Get returns the blob stored under key. ok is false when nothing is stored;
	// that is not an error.
	Get(ctx context.Context, key string) (blob string, ok bool, err error)

	// Set stores blob under key, replacing any previous value.
	Set(ctx context.Context, key, blob string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
