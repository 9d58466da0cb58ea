// Package cache holds the process-local response cache for assembled display
// payloads. With ~1000 screens polling on a fixed interval, most requests for
// the same (identifier, rotation index) arrive inside one TTL and must never
// reach the database. The TTL is the only invalidation mechanism: admin edits
// become visible when the entry expires, a tradeoff accepted for scale.
package cache

import (
	"sync"
	"time"

	"github.com/orhanozan33/menuslide-sub001/internal/display"
)

// Key identifies one cached payload. RotationIndex is part of the key because
// every rotation step is a distinct renderable payload.
type Key struct {
	Identifier    string
	RotationIndex int
}

type entry struct {
	payload   *display.Payload
	expiresAt time.Time
}

// PayloadCache is a TTL map from Key to the last assembled payload. Expiry is
// lazy: entries are evicted when a read finds them stale, no sweeper runs.
// Concurrent misses for the same key are not de-duplicated; both assemble and
// the later Set wins.
type PayloadCache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	ttl     time.Duration

	now func() time.Time // injectable for tests
}

// New constructs a PayloadCache with the given TTL.
func New(ttl time.Duration) *PayloadCache {
	return &PayloadCache{
		entries: make(map[Key]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached payload for key if present and unexpired. An expired
// entry is evicted and reported as a miss.
func (c *PayloadCache) Get(key Key) (*display.Payload, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key, unconditionally overwriting any previous
// entry and restarting its TTL.
func (c *PayloadCache) Set(key Key, payload *display.Payload) {
	c.mu.Lock()
	c.entries[key] = entry{payload: payload, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Len reports the number of entries currently held, including ones that are
// expired but not yet evicted.
func (c *PayloadCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
