package identity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// authKey is where the signed-in phone number is remembered between restarts.
const authKey = "tripplanner:auth:phone"

// blobs is the subset of repo.BlobStore the session needs.
// Declared here so identity does not import repo.
type blobs interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, blob string) error
	Remove(ctx context.Context, key string) error
}

// Session remembers the signed-in user on the device.
type Session struct {
	blobs blobs
	log   *slog.Logger

	mu      sync.RWMutex
	current string
}

// NewSession constructs a Session persisted through b.
func NewSession(b blobs, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{blobs: b, log: log}
}

// Load restores the remembered user key. A read failure is logged and
// treated as "signed out".
func (s *Session) Load(ctx context.Context) string {
	stored, ok, err := s.blobs.Get(ctx, authKey)
	if err != nil {
		s.log.WarnContext(ctx, "session load failed", "error", err)
		stored, ok = "", false
	}
	if !ok {
		stored = ""
	}

	s.mu.Lock()
	s.current = stored
	s.mu.Unlock()
	return stored
}

// SignIn normalizes raw, persists it, and makes it the current user.
// Returns domain.ErrValidation when raw has fewer than seven digits.
func (s *Session) SignIn(ctx context.Context, raw string) (string, error) {
	if !ValidPhone(raw) {
		return "", fmt.Errorf("%w: please enter a valid phone number", domain.ErrValidation)
	}
	normalized := NormalizePhone(raw)
	if err := s.blobs.Set(ctx, authKey, normalized); err != nil {
		return "", fmt.Errorf("identity.Session.SignIn: %w", err)
	}

	s.mu.Lock()
	s.current = normalized
	s.mu.Unlock()
	return normalized, nil
}

// SignOut forgets the current user.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.blobs.Remove(ctx, authKey); err != nil {
		return fmt.Errorf("identity.Session.SignOut: %w", err)
	}

	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()
	return nil
}

// Current returns the signed-in user key, or "" when signed out.
func (s *Session) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
