package repo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// FileBlobStore keeps one JSON file per key under a base directory.
// Writes are atomic: data goes to a temp file that is then renamed into place,
// so a crash never leaves a half-written document behind.
type FileBlobStore struct {
	dir string
}

// NewFileBlobStore returns a FileBlobStore rooted at dir.
// The directory is created lazily on the first write.
func NewFileBlobStore(dir string) *FileBlobStore {
	return &FileBlobStore{dir: dir}
}

// path maps a key onto a file name that is safe on every filesystem.
func (s *FileBlobStore) path(key string) string {
	return filepath.Join(s.dir, url.QueryEscape(key)+".json")
}

// Get implements BlobStore.
func (s *FileBlobStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repo.FileBlobStore.Get: %w", err)
	}
	return string(data), true, nil
}

// Set implements BlobStore.
func (s *FileBlobStore) Set(ctx context.Context, key, blob string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("repo.FileBlobStore.Set: create dir: %w", err)
	}

	path := s.path(key)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(blob), 0o600); err != nil {
		return fmt.Errorf("repo.FileBlobStore.Set: write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("repo.FileBlobStore.Set: rename temp file: %w", err)
	}
	return nil
}

// Remove implements BlobStore.
func (s *FileBlobStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("repo.FileBlobStore.Remove: %w", err)
	}
	return nil
}
