package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ErrPersisterClosed is recorded when a write is scheduled after Close.
var ErrPersisterClosed = errors.New("store: persister closed")

// Persister writes blobs in the background. Pending writes are coalesced per
// key so only the newest blob for a key is ever written, and each write is
// retried with exponential backoff before it is given up on.
type Persister struct {
	blobs      repo.BlobStore
	log        *slog.Logger
	maxRetries uint64
	backoff    time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wake   chan struct{}
	stop   chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	pending map[string]string
	// unwritten holds, per key, the newest blob not yet confirmed durable.
	unwritten map[string]string
	order     []string
	busy      bool
	closed    bool
	lastErr   error
	changed   chan struct{}
}

// NewPersister starts the background writer. Call Close to stop it.
func NewPersister(blobs repo.BlobStore, log *slog.Logger, maxRetries uint64, backoff time.Duration) *Persister {
	if log == nil {
		log = slog.Default()
	}
	if backoff <= 0 {
		backoff = time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Persister{
		blobs:      blobs,
		log:        log,
		maxRetries: maxRetries,
		backoff:    backoff,
		ctx:        ctx,
		cancel:     cancel,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		pending:    map[string]string{},
		unwritten:  map[string]string{},
		changed:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Enqueue schedules blob to be written under key, replacing any write for the
// same key that has not started yet. It never blocks on I/O.
func (p *Persister) Enqueue(key, blob string) {
	p.mu.Lock()
	if p.closed {
		p.lastErr = fmt.Errorf("persist %s: %w", key, ErrPersisterClosed)
		p.mu.Unlock()
		p.log.Error("write-back dropped", "key", key, "error", ErrPersisterClosed)
		return
	}
	if _, queued := p.pending[key]; !queued {
		p.order = append(p.order, key)
	}
	p.pending[key] = blob
	p.unwritten[key] = blob
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Unwritten returns the newest blob enqueued for key that has not been
// written successfully yet: queued, in flight, or abandoned after retries.
// Reads of key must prefer it over the blob store.
func (p *Persister) Unwritten(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	blob, ok := p.unwritten[key]
	return blob, ok
}

// LastError returns the error of the most recent write that failed after all
// retries. A later successful write clears it.
func (p *Persister) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Flush blocks until every write scheduled so far has finished or ctx ends.
func (p *Persister) Flush(ctx context.Context) error {
	for {
		p.mu.Lock()
		if len(p.order) == 0 && !p.busy {
			p.mu.Unlock()
			return nil
		}
		ch := p.changed
		p.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close drains the queue and stops the writer. If ctx ends first, in-flight
// writes are cancelled and ctx's error is returned.
func (p *Persister) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.done
		return nil
	}
	p.closed = true
	p.mu.Unlock()
	close(p.stop)

	select {
	case <-p.done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-p.done
		return ctx.Err()
	}
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.stop:
			p.drain()
			return
		}
	}
}

// drain writes queued blobs in FIFO key order until the queue is empty.
func (p *Persister) drain() {
	for {
		p.mu.Lock()
		if len(p.order) == 0 {
			p.busy = false
			p.notifyLocked()
			p.mu.Unlock()
			return
		}
		key := p.order[0]
		p.order = p.order[1:]
		blob := p.pending[key]
		delete(p.pending, key)
		p.busy = true
		p.mu.Unlock()

		err := p.write(key, blob)

		p.mu.Lock()
		p.lastErr = err
		if err == nil && p.unwritten[key] == blob {
			delete(p.unwritten, key)
		}
		p.notifyLocked()
		p.mu.Unlock()
	}
}

func (p *Persister) write(key, blob string) error {
	attempt := 0
	backoff := retry.WithMaxRetries(p.maxRetries, retry.NewExponential(p.backoff))
	err := retry.Do(p.ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := p.blobs.Set(ctx, key, blob); err != nil {
			p.log.Warn("write-back failed", "key", key, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		p.log.Error("write-back abandoned", "key", key, "attempts", attempt, "error", err)
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// notifyLocked wakes everyone waiting in Flush. p.mu must be held.
func (p *Persister) notifyLocked() {
	close(p.changed)
	p.changed = make(chan struct{})
}
