// Package cache is a small read-through cache with time-based expiry.
//
// Values are shared between callers and must be treated as read-only.
// There is no invalidation other than expiry, and no background refresh:
// the first access after expiry triggers exactly one reload, concurrent
// callers wait for it.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"catalogdash/internal/pkg/clock"
)

type entry[V any] struct {
	val      V
	storedAt time.Time
}

type Cache[V any] struct {
	ttl   time.Duration
	clock clock.Clock
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry[V]
}

// New creates a cache. ttl <= 0 keeps entries forever.
func New[V any](ttl time.Duration, clk clock.Clock) *Cache[V] {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Cache[V]{
		ttl:     ttl,
		clock:   clk,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the value for key, calling load on a miss or after expiry.
// Load errors are returned to every waiting caller and are not cached.
//
// The shared load runs detached from the caller's cancellation, so load
// must bound itself. A caller whose ctx ends stops waiting and gets
// ctx.Err(); the load keeps going for the others.
func (c *Cache[V]) Get(ctx context.Context, key string, load func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.store(key, v)
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

// StoredAt reports when key was last loaded.
func (c *Cache[V]) StoredAt(key string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e.storedAt, ok
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.ttl > 0 && !c.clock.Now().Before(e.storedAt.Add(c.ttl)) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.val, true
}

func (c *Cache[V]) store(key string, v V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{val: v, storedAt: c.clock.Now()}
	c.mu.Unlock()
}
