package photos

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	heroKeyPrefix = "heroImages:"
	heroPoolSize  = 10
)

// Searcher finds photo URLs for a destination. *Client implements it.
type Searcher interface {
	Search(ctx context.Context, destination string) []string
}

// blobs is the subset of repo.BlobStore the cache needs.
type blobs interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, blob string) error
}

// heroEntry is the persisted cache record for one destination.
// FetchedAt is in Unix milliseconds.
type heroEntry struct {
	FetchedAt int64    `json:"fetchedAt"`
	URLs      []string `json:"urls"`
	LastIndex *int     `json:"lastIndex,omitempty"`
}

// HeroCache hands out destination header images. It keeps a pool of up to
// ten URLs per destination, tops the pool up while it is short, and walks
// through it in shuffled order so consecutive calls show different images.
type HeroCache struct {
	blobs   blobs
	search  Searcher
	ttl     time.Duration
	now     func() time.Time
	shuffle func([]string)
	log     *slog.Logger
	group   singleflight.Group
	// locks serialises the read-modify-write of one destination's entry.
	locks sync.Map // key -> *sync.Mutex
}

// HeroOption configures a HeroCache.
type HeroOption func(*HeroCache)

// WithHeroClock replaces time.Now.
func WithHeroClock(now func() time.Time) HeroOption { return func(h *HeroCache) { h.now = now } }

// WithShuffle replaces the in-place shuffle used to randomise the pool.
func WithShuffle(fn func([]string)) HeroOption { return func(h *HeroCache) { h.shuffle = fn } }

// WithHeroLogger sets the logger. Defaults to slog.Default().
func WithHeroLogger(l *slog.Logger) HeroOption { return func(h *HeroCache) { h.log = l } }

// NewHeroCache returns a cache persisting through b and refilling from s.
// Entries older than ttl are refetched.
func NewHeroCache(b blobs, s Searcher, ttl time.Duration, opts ...HeroOption) *HeroCache {
	h := &HeroCache{
		blobs:  b,
		search: s,
		ttl:    ttl,
		now:    time.Now,
		shuffle: func(urls []string) {
			rand.Shuffle(len(urls), func(i, j int) { urls[i], urls[j] = urls[j], urls[i] })
		},
		log: slog.Default(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Next returns the image to show for destination, avoiding current (the
// image on screen now) when the pool has an alternative. It returns "" when
// no image is available. Concurrent calls for the same destination and
// current image share one lookup; calls for the same destination with
// different current images take turns.
func (h *HeroCache) Next(ctx context.Context, destination, current string) string {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return ""
	}
	key := heroKeyPrefix + strings.ToLower(destination)

	v, _, _ := h.group.Do(key+"\x00"+current, func() (any, error) {
		mu := h.lock(key)
		mu.Lock()
		defer mu.Unlock()
		return h.next(ctx, key, destination, current), nil
	})
	return v.(string)
}

func (h *HeroCache) next(ctx context.Context, key, destination, current string) string {
	now := h.now()
	entry, fresh := h.load(ctx, key, now)

	if !fresh || len(entry.URLs) == 0 {
		urls := h.pick(nonBlank(h.search.Search(ctx, destination)))
		if len(urls) == 0 {
			return ""
		}
		first := 0
		h.save(ctx, key, heroEntry{FetchedAt: now.UnixMilli(), URLs: urls, LastIndex: &first})
		return urls[0]
	}

	if len(entry.URLs) < heroPoolSize {
		merged := dedupe(append(entry.URLs, h.search.Search(ctx, destination)...))
		entry.URLs = h.pick(merged)
		h.save(ctx, key, entry)
	} else if len(entry.URLs) > heroPoolSize {
		entry.URLs = h.pick(entry.URLs)
		h.save(ctx, key, entry)
	}

	urls := entry.URLs
	last := -1
	if entry.LastIndex != nil {
		last = *entry.LastIndex
		if last >= len(urls)-1 {
			h.shuffle(urls)
			last = -1
		}
	}
	idx := (last + 1) % len(urls)
	if len(urls) > 1 && current != "" && urls[idx] == current {
		idx = (idx + 1) % len(urls)
	}

	entry.URLs = urls
	entry.LastIndex = &idx
	h.save(ctx, key, entry)
	return urls[idx]
}

func (h *HeroCache) lock(key string) *sync.Mutex {
	mu, _ := h.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// load reads key's entry. fresh is false when there is no usable entry or it
// has outlived the TTL.
func (h *HeroCache) load(ctx context.Context, key string, now time.Time) (heroEntry, bool) {
	raw, ok, err := h.blobs.Get(ctx, key)
	if err != nil {
		h.log.WarnContext(ctx, "hero cache read failed", "key", key, "error", err)
		return heroEntry{}, false
	}
	if !ok {
		return heroEntry{}, false
	}
	var entry heroEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		h.log.WarnContext(ctx, "hero cache entry is malformed", "key", key, "error", err)
		return heroEntry{}, false
	}
	if now.Sub(time.UnixMilli(entry.FetchedAt)) >= h.ttl {
		return heroEntry{}, false
	}
	entry.URLs = nonBlank(entry.URLs)
	return entry, true
}

func (h *HeroCache) save(ctx context.Context, key string, entry heroEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		h.log.ErrorContext(ctx, "encode hero cache entry", "key", key, "error", err)
		return
	}
	if err := h.blobs.Set(ctx, key, string(data)); err != nil {
		h.log.WarnContext(ctx, "hero cache write failed", "key", key, "error", err)
	}
}

// pick shuffles urls and keeps at most heroPoolSize of them.
func (h *HeroCache) pick(urls []string) []string {
	out := append([]string(nil), urls...)
	h.shuffle(out)
	if len(out) > heroPoolSize {
		out = out[:heroPoolSize]
	}
	return out
}

func nonBlank(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.TrimSpace(u) != "" {
			out = append(out, u)
		}
	}
	return out
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range nonBlank(urls) {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
