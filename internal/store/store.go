// Package store is the in-memory source of truth for one user's trips.
//
// A Store hydrates from a repo.BlobStore when an identity is set, serves every
// read and mutation from memory, and hands the full encoded state to a
// background Persister after each mutation. Nothing is written until
// hydration for the current identity has finished, so an empty in-memory
// state can never overwrite durable data that has not been read yet.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/identity"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/snapshot"
)

// Status is the hydration state of a Store.
type Status int

const (
	Uninitialized Status = iota
	Hydrating
	Hydrated
)

func (s Status) String() string {
	switch s {
	case Hydrating:
		return "hydrating"
	case Hydrated:
		return "hydrated"
	default:
		return "uninitialized"
	}
}

// Option configures a Store.
type Option func(*options)

type options struct {
	log        *slog.Logger
	newID      func() string
	now        func() time.Time
	maxRetries uint64
	backoff    time.Duration
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithIDFunc replaces the child-entity id generator (UUIDv7 by default).
// fn must be safe for concurrent use.
func WithIDFunc(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithClock replaces time.Now for expense timestamps and journal dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRetry configures write-back retries: at most maxRetries retries after
// the first attempt, starting at backoff and doubling.
func WithRetry(maxRetries uint64, backoff time.Duration) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
		o.backoff = backoff
	}
}

func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Store holds the trip document of the current identity.
// All methods are safe for concurrent use; mutations are serialised.
type Store struct {
	blobs   repo.BlobStore
	persist *Persister
	log     *slog.Logger
	newID   func() string
	now     func() time.Time

	mu      sync.Mutex
	state   domain.State
	status  Status
	key     identity.Key
	gen     uint64
	cancel  context.CancelFunc
	changed chan struct{}
}

// New returns an Uninitialized Store backed by blobs. Call SetIdentity to
// hydrate it and Close to stop its background writer.
func New(blobs repo.BlobStore, opts ...Option) *Store {
	o := options{
		log:        slog.Default(),
		newID:      newUUID,
		now:        time.Now,
		maxRetries: 3,
		backoff:    200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		blobs:   blobs,
		persist: NewPersister(blobs, o.log, o.maxRetries, o.backoff),
		log:     o.log,
		newID:   o.newID,
		now:     o.now,
		state:   domain.NewState(),
		changed: make(chan struct{}),
	}
}

// SetIdentity switches the store to userKey's document. A blank userKey
// signs out: the state is reset to empty and marked Hydrated without any read.
// Otherwise the document is read in the background and the store reports
// Hydrating until it lands; use WaitHydrated to block on it.
//
// A read that is overtaken by a later SetIdentity is cancelled and its result
// discarded, so the state never shows a previous user's data.
func (s *Store) SetIdentity(ctx context.Context, userKey string) {
	key, ok := identity.Resolve(userKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.key = key

	if !ok {
		s.state = domain.NewState()
		s.setStatusLocked(Hydrated)
		return
	}

	s.setStatusLocked(Hydrating)
	readCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	go s.hydrate(readCtx, s.gen, key)
}

func (s *Store) hydrate(ctx context.Context, gen uint64, key identity.Key) {
	state := s.read(ctx, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug("discarding superseded hydration", "user", key.User())
		return
	}
	s.cancel = nil
	s.state = state
	s.setStatusLocked(Hydrated)
	s.log.Info("store hydrated", "user", key.User(), "trips", len(state.Trips))
}

// read loads key's document, degrading every failure to an empty state.
// A write-back still pending for key is newer than storage and wins.
func (s *Store) read(ctx context.Context, key identity.Key) domain.State {
	if raw, ok := s.persist.Unwritten(key.String()); ok {
		return s.load(key, raw)
	}
	raw, ok, err := s.blobs.Get(ctx, key.String())
	if err != nil {
		if ctx.Err() == nil {
			s.log.Warn("hydration read failed, starting empty", "user", key.User(), "error", err)
		}
		return domain.NewState()
	}
	if !ok {
		return domain.NewState()
	}
	return s.load(key, raw)
}

func (s *Store) load(key identity.Key, raw string) domain.State {
	state, err := snapshot.Load([]byte(raw), s.newID)
	if err != nil {
		s.log.Warn("stored document is malformed, starting empty", "user", key.User(), "error", err)
		return domain.NewState()
	}
	return state
}

// Status reports the hydration state.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Identity returns the current user key, or "" when signed out.
func (s *Store) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key.User()
}

// WaitHydrated blocks until the store is Hydrated or ctx ends.
func (s *Store) WaitHydrated(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.status == Hydrated {
			s.mu.Unlock()
			return nil
		}
		ch := s.changed
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// LastPersistError returns the most recent write-back failure, or nil.
func (s *Store) LastPersistError() error {
	return s.persist.LastError()
}

// Flush waits for every scheduled write-back to finish.
func (s *Store) Flush(ctx context.Context) error {
	return s.persist.Flush(ctx)
}

// Close cancels any pending hydration, flushes outstanding writes and stops
// the background writer.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	return s.persist.Close(ctx)
}

// Snapshot returns a deep copy of the whole document.
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) setStatusLocked(st Status) {
	s.status = st
	close(s.changed)
	s.changed = make(chan struct{})
}

// mutate runs fn against the live state under the lock. When fn reports a
// change, the new state is scheduled for write-back.
func (s *Store) mutate(fn func(st *domain.State) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn(&s.state) {
		s.persistLocked()
	}
}

func (s *Store) persistLocked() {
	if s.status != Hydrated || s.key.IsZero() {
		return
	}
	data, err := snapshot.Encode(s.state)
	if err != nil {
		s.log.Error("encode state for write-back", "user", s.key.User(), "error", err)
		return
	}
	s.persist.Enqueue(s.key.String(), string(data))
}
