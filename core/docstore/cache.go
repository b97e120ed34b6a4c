package docstore

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// entry is one cached lookup result.
type entry struct {
	value any
	built time.Time
}

// expired returns true if this entry has outlived the TTL.
func (e entry) expired(ttl time.Duration) bool {
	if ttl == 0 {
		return true // No caching
	}
	return time.Since(e.built) > ttl
}

// Cached is a read-through TTL cache over any Store. Document content is
// immutable and queue membership is stable within the engine's view, so a
// short TTL only bounds staleness against out-of-band re-ingestion.
// Concurrent misses for the same key collapse into one backend load.
type Cached struct {
	inner Store
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]entry
	sf      singleflight.Group
}

// NewCached wraps a store with caching. A zero TTL disables caching
// entirely; every call goes to the backend.
func NewCached(inner Store, ttl time.Duration) *Cached {
	return &Cached{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// GetDocument implements Store.
func (c *Cached) GetDocument(ctx context.Context, id string) (*Document, error) {
	value, err := c.lookup(ctx, "doc:"+id, func() (any, error) {
		return c.inner.GetDocument(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return value.(*Document), nil
}

// GetQueue implements Store.
func (c *Cached) GetQueue(ctx context.Context, id string) (*Queue, error) {
	value, err := c.lookup(ctx, "queue:"+id, func() (any, error) {
		return c.inner.GetQueue(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return value.(*Queue), nil
}

// QueueMembers implements Store.
func (c *Cached) QueueMembers(ctx context.Context, queueID string) ([]string, error) {
	queue, err := c.GetQueue(ctx, queueID)
	if err != nil {
		return nil, err
	}
	return queue.DocumentIDs, nil
}

// Invalidate drops every cached entry. Exposed for operational tooling;
// normal operation relies on TTL expiry.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// lookup serves from cache when fresh, otherwise loads via singleflight so
// that concurrent misses don't stampede the backend. Errors are not cached.
func (c *Cached) lookup(ctx context.Context, key string, load func() (any, error)) (any, error) {
	if c.ttl == 0 {
		return load()
	}

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && !cached.expired(c.ttl) {
		return cached.value, nil
	}

	value, err, _ := c.sf.Do(key, func() (any, error) {
		// Another goroutine may have refreshed while we waited.
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && !cached.expired(c.ttl) {
			return cached.value, nil
		}

		loaded, err := load()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{value: loaded, built: time.Now()}
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}
