package repo

import (
	"context"
	"sync"
)

// MemoryBlobStore keeps blobs in a map. It backs STORAGE_DRIVER=memory and
// most unit tests.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

// NewMemoryBlobStore returns an empty MemoryBlobStore.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: map[string]string{}}
}

// Get implements BlobStore.
func (s *MemoryBlobStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	return blob, ok, nil
}

// Set implements BlobStore.
func (s *MemoryBlobStore) Set(ctx context.Context, key, blob string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.blobs[key] = blob
	s.mu.Unlock()
	return nil
}

// Remove implements BlobStore.
func (s *MemoryBlobStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.blobs, key)
	s.mu.Unlock()
	return nil
}

// Keys returns the stored keys in no particular order.
func (s *MemoryBlobStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.blobs))
	for k := range s.blobs {
		keys = append(keys, k)
	}
	return keys
}
