package querycache

import (
	"context"
	"time"
)

// Mutation runs a remote write with an explicit three-phase cache protocol:
// snapshot, speculative apply, commit-or-rollback.
//
// Apply (optional) rewrites the cached value before the call resolves; it
// receives the current value and whether one exists, and returns the
// speculative value plus whether to write it. Reconcile (optional) folds the
// server's result into the cache after success — the server's object, not the
// optimistic guess, is what sticks.
//
// The rollback snapshot is captured when Run starts and is applied only on
// this mutation's own failure, and only while no later writer has touched the
// entry. Concurrent mutations on the same entity are not serialized; that
// race is an accepted limitation. Apply and Reconcile must return new values
// rather than mutating their input in place.
type Mutation[T, R any] struct {
	Cache     *Cache
	Key       string
	Apply     func(current T, ok bool) (T, bool)
	Reconcile func(current T, ok bool, result R) (T, bool)
}

// Run executes call with the cache's mutation retry policy. On failure no
// partial cache change survives; on success the cache reflects Reconcile's
// output.
func (m Mutation[T, R]) Run(ctx context.Context, call func(context.Context) (R, error)) (R, error) {
	var zero R
	c := m.Cache

	var snapshot T
	hadValue := false
	applied := false
	var specGen uint64

	if m.Apply != nil {
		c.mu.Lock()
		if e, ok := c.entryLocked(m.Key); ok {
			if typed, tok := e.data.(T); tok {
				snapshot = typed
				hadValue = true
			}
		}
		next, write := m.Apply(snapshot, hadValue)
		if write {
			c.writeLocked(m.Key, next)
			specGen = c.gens[m.Key]
			applied = true
		}
		c.mu.Unlock()
	}

	result, err := m.call(ctx, call)
	if err != nil {
		if applied {
			c.mu.Lock()
			if c.gens[m.Key] == specGen {
				if hadValue {
					c.writeLocked(m.Key, snapshot)
				} else {
					c.deleteLocked(m.Key)
				}
			}
			c.mu.Unlock()
		}
		return zero, err
	}

	if m.Reconcile != nil {
		c.mu.Lock()
		var current T
		ok := false
		if e, present := c.entryLocked(m.Key); present {
			if typed, tok := e.data.(T); tok {
				current = typed
				ok = true
			}
		}
		next, write := m.Reconcile(current, ok, result)
		if write {
			c.writeLocked(m.Key, next)
		}
		c.mu.Unlock()
		if write {
			c.persist(m.Key)
		}
	}
	return result, nil
}

func (m Mutation[T, R]) call(ctx context.Context, call func(context.Context) (R, error)) (R, error) {
	var zero R
	c := m.Cache
	var lastErr error
	for attempt := 0; ; attempt++ {
		result, err := call(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if attempt >= c.opts.MutationRetries {
			break
		}
		delay := c.opts.MutationRetryDelay
		if delay <= 0 {
			delay = time.Second
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
	return zero, lastErr
}
