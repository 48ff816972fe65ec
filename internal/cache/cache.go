// Package cache provides a small in-process TTL cache used to memoise
// expensive list queries. Entries expire after a fixed duration and the
// cache sheds its oldest entries once it grows past a bounded size, so a
// burst of distinct filter combinations cannot grow memory without limit.
package cache

import (
	"sync"
	"time"
)

const (
	// maxEntries is the high-water mark; once exceeded the oldest
	// evictBatch insertions are dropped in one sweep.
	maxEntries = 100
	evictBatch = 50
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// TTL is a mutex-guarded map with per-entry expiry. The zero value is not
// usable; construct with New.
type TTL[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]
	now     func() time.Time
}

// New returns an empty cache whose entries expire ttl after insertion.
func New[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and not yet expired.
// Expired entries are removed on access.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry. If the cache
// exceeds maxEntries afterwards, the evictBatch oldest insertions are
// discarded.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, insertedAt: c.now()}
	if len(c.entries) > maxEntries {
		c.evictOldestLocked(evictBatch)
	}
}

// Invalidate drops every entry. Called after any write to the underlying
// data so readers never observe stale lists longer than one request.
func (c *TTL[V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Len reports the current number of entries, expired or not.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTL[V]) evictOldestLocked(n int) {
	type aged struct {
		key string
		at  time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, at: e.insertedAt})
	}
	// Selection of the n oldest; the cache is small enough that a simple
	// insertion sort style pass beats pulling in a heap.
	for i := 0; i < n && i < len(all); i++ {
		min := i
		for j := i + 1; j < len(all); j++ {
			if all[j].at.Before(all[min].at) {
				min = j
			}
		}
		all[i], all[min] = all[min], all[i]
		delete(c.entries, all[i].key)
	}
}
