// Package querycache binds resource calls to a keyed, time-based cache with
// request deduplication, retry, subscriptions and optimistic mutations. A
// Cache is an explicit instance constructed at boot and passed down; server
// render paths build an isolated instance per request.
package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Options tune staleness, retention and retry behavior. The defaults mirror
// the application's long-standing settings: five-minute staleness, ten-minute
// retention, two query retries with capped exponential backoff, one mutation
// retry after a second.
type Options struct {
	StaleTime          time.Duration
	GCTime             time.Duration
	QueryRetries       int
	RetryDelay         func(attempt int) time.Duration
	MutationRetries    int
	MutationRetryDelay time.Duration
	Store              Store
	Logger             *slog.Logger
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		StaleTime:          5 * time.Minute,
		GCTime:             10 * time.Minute,
		QueryRetries:       2,
		RetryDelay:         ExponentialBackoff(time.Second, 30*time.Second),
		MutationRetries:    1,
		MutationRetryDelay: time.Second,
	}
}

// ExponentialBackoff returns a delay function doubling from base up to cap.
func ExponentialBackoff(base, cap time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		d := base
		for i := 0; i < attempt; i++ {
			d *= 2
			if d >= cap {
				return cap
			}
		}
		if d > cap {
			return cap
		}
		return d
	}
}

type entry struct {
	data      any
	updatedAt time.Time
}

// Cache is the single shared mutable store for remote-resource state. All
// reads and writes of server state go through it.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	// gens advances on every write or invalidation of a key and survives
	// entry deletion, so a mutation can tell whether a later writer touched
	// its entry before rolling back.
	gens map[string]uint64
	subs map[string]map[string]chan struct{}

	group singleflight.Group
	opts  Options
	now   func() time.Time
}

// New constructs an empty cache with the given options.
func New(opts Options) *Cache {
	if opts.RetryDelay == nil {
		opts.RetryDelay = ExponentialBackoff(time.Second, 30*time.Second)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Cache{
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
		subs:    make(map[string]map[string]chan struct{}),
		opts:    opts,
		now:     time.Now,
	}
}

// K joins key parts into a cache key.
func K(parts ...string) string {
	return strings.Join(parts, "/")
}

// Fetch returns the cached value for key while it is fresh, otherwise runs fn
// (with retries) and caches the result. Concurrent identical reads share a
// single in-flight call.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.freshValue(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	if v, ok := loadFromStore[T](ctx, c, key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		out, err := runWithRetry(ctx, c, fn)
		if err != nil {
			return nil, err
		}
		c.Set(key, out)
		return out, nil
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: key %q holds %T", key, v)
	}
	return typed, nil
}

func runWithRetry[T any](ctx context.Context, c *Cache, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; ; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if attempt >= c.opts.QueryRetries {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(c.opts.RetryDelay(attempt)):
		}
	}
	return zero, lastErr
}

// Get returns the cached value for key if present (fresh or stale), without
// triggering a fetch.
func Get[T any](c *Cache, key string) (T, bool) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entryLocked(key)
	if !ok {
		return zero, false
	}
	typed, ok := e.data.(T)
	return typed, ok
}

// Set stores a value for key, notifying subscribers.
func (c *Cache) Set(key string, v any) {
	c.mu.Lock()
	c.writeLocked(key, v)
	c.mu.Unlock()
	c.persist(key)
}

// Update applies fn to the current value (ok reports presence) under the
// cache lock and writes the result back when fn's second return is true. fn
// must return a new value rather than mutating current in place.
func Update[T any](c *Cache, key string, fn func(current T, ok bool) (T, bool)) {
	c.mu.Lock()
	var current T
	ok := false
	if e, present := c.entryLocked(key); present {
		if typed, tok := e.data.(T); tok {
			current = typed
			ok = true
		}
	}
	next, write := fn(current, ok)
	if write {
		c.writeLocked(key, next)
	}
	c.mu.Unlock()
	if write {
		c.persist(key)
	}
}

// Invalidate drops the entry for key so the next read refetches, notifying
// subscribers.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	c.deleteLocked(key)
	c.mu.Unlock()
	if c.opts.Store != nil {
		if err := c.opts.Store.Delete(context.Background(), key); err != nil {
			c.opts.Logger.Warn("cache store delete failed", "key", key, "error", err)
		}
	}
}

// Subscribe returns a channel that receives a signal whenever key is written
// or invalidated, plus a cancel function. Signals are coalesced.
func (c *Cache) Subscribe(key string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	id := uuid.NewString()
	c.mu.Lock()
	if c.subs[key] == nil {
		c.subs[key] = make(map[string]chan struct{})
	}
	c.subs[key][id] = ch
	c.mu.Unlock()
	cancel := func() {
		c.mu.Lock()
		delete(c.subs[key], id)
		c.mu.Unlock()
	}
	return ch, cancel
}

func (c *Cache) freshValue(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entryLocked(key)
	if !ok {
		return nil, false
	}
	if c.opts.StaleTime <= 0 || c.now().Sub(e.updatedAt) >= c.opts.StaleTime {
		return nil, false
	}
	return e.data, true
}

// entryLocked returns the live entry for key, evicting it when past GCTime.
func (c *Cache) entryLocked(key string) (*entry, bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.opts.GCTime > 0 && c.now().Sub(e.updatedAt) >= c.opts.GCTime {
		delete(c.entries, key)
		c.gens[key]++
		return nil, false
	}
	return e, true
}

func (c *Cache) writeLocked(key string, v any) {
	c.entries[key] = &entry{data: v, updatedAt: c.now()}
	c.gens[key]++
	c.notifyLocked(key)
}

func (c *Cache) deleteLocked(key string) {
	delete(c.entries, key)
	c.gens[key]++
	c.notifyLocked(key)
}

func (c *Cache) notifyLocked(key string) {
	for _, ch := range c.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

// persist writes the current entry for key to the backing store, best effort.
func (c *Cache) persist(key string) {
	if c.opts.Store == nil {
		return
	}
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	data, updatedAt := e.data, e.updatedAt
	c.mu.Unlock()

	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := c.opts.Store.Save(context.Background(), key, raw, updatedAt, c.opts.GCTime); err != nil {
		c.opts.Logger.Warn("cache store save failed", "key", key, "error", err)
	}
}

// loadFromStore warms the in-memory entry from the backing store when the
// persisted copy is still fresh.
func loadFromStore[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var zero T
	if c.opts.Store == nil {
		return zero, false
	}
	raw, updatedAt, ok, err := c.opts.Store.Load(ctx, key)
	if err != nil || !ok {
		return zero, false
	}
	if c.opts.StaleTime <= 0 || c.now().Sub(updatedAt) >= c.opts.StaleTime {
		return zero, false
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, false
	}
	c.mu.Lock()
	c.entries[key] = &entry{data: out, updatedAt: updatedAt}
	c.gens[key]++
	c.mu.Unlock()
	return out, true
}
