package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/store"
)

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// seqIDs returns a goroutine-safe generator of "id-1", "id-2", ...
func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newStore(t *testing.T, blobs repo.BlobStore) *store.Store {
	t.Helper()
	s := store.New(blobs,
		store.WithIDFunc(seqIDs()),
		store.WithClock(func() time.Time { return fixedNow }),
		store.WithRetry(2, time.Millisecond),
	)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Close(ctx)
	})
	return s
}

// hydratedStore returns a store signed in as user and fully hydrated.
func hydratedStore(t *testing.T, blobs repo.BlobStore, user string) *store.Store {
	t.Helper()
	s := newStore(t, blobs)
	s.SetIdentity(context.Background(), user)
	waitHydrated(t, s)
	return s
}

func waitHydrated(t *testing.T, s *store.Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.WaitHydrated(ctx))
}

func flush(t *testing.T, s *store.Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Flush(ctx))
}

// gatedBlobs blocks Get for gated keys until release is closed.
type gatedBlobs struct {
	*repo.MemoryBlobStore
	gated   map[string]chan struct{}
	entered chan string
}

func newGatedBlobs(keys ...string) *gatedBlobs {
	g := &gatedBlobs{
		MemoryBlobStore: repo.NewMemoryBlobStore(),
		gated:           map[string]chan struct{}{},
		entered:         make(chan string, len(keys)),
	}
	for _, k := range keys {
		g.gated[k] = make(chan struct{})
	}
	return g
}

func (g *gatedBlobs) Get(ctx context.Context, key string) (string, bool, error) {
	if gate, ok := g.gated[key]; ok {
		g.entered <- key
		<-gate
	}
	// Returns the stored value even when ctx was cancelled so superseded
	// results actually reach the store and must be discarded there.
	return g.MemoryBlobStore.Get(context.Background(), key)
}

func (g *gatedBlobs) release(key string) { close(g.gated[key]) }

// recordingBlobs counts writes and can be made to fail them.
type recordingBlobs struct {
	*repo.MemoryBlobStore

	mu     sync.Mutex
	sets   map[string]int
	failOn error
}

func newRecordingBlobs() *recordingBlobs {
	return &recordingBlobs{MemoryBlobStore: repo.NewMemoryBlobStore(), sets: map[string]int{}}
}

func (r *recordingBlobs) Set(ctx context.Context, key, blob string) error {
	r.mu.Lock()
	r.sets[key]++
	err := r.failOn
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.MemoryBlobStore.Set(ctx, key, blob)
}

func (r *recordingBlobs) setCount(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets[key]
}

func (r *recordingBlobs) fail(err error) {
	r.mu.Lock()
	r.failOn = err
	r.mu.Unlock()
}

var errDiskFull = errors.New("disk full")

// gatedSetBlobs blocks the first Set until gate is closed and records the
// order of written values.
type gatedSetBlobs struct {
	*repo.MemoryBlobStore
	gate    chan struct{}
	entered chan struct{}

	mu     sync.Mutex
	values []string
}

func newGatedSetBlobs() *gatedSetBlobs {
	return &gatedSetBlobs{
		MemoryBlobStore: repo.NewMemoryBlobStore(),
		gate:            make(chan struct{}),
		entered:         make(chan struct{}, 1),
	}
}

func (g *gatedSetBlobs) Set(ctx context.Context, key, blob string) error {
	select {
	case g.entered <- struct{}{}:
	default:
	}
	<-g.gate

	g.mu.Lock()
	g.values = append(g.values, blob)
	g.mu.Unlock()
	return g.MemoryBlobStore.Set(ctx, key, blob)
}

func (g *gatedSetBlobs) written() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.values...)
}
