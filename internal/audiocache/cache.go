// Package audiocache keeps a bounded in-memory map of synthesized audio,
// shared by all sessions so repeated requests skip the speech backend.
package audiocache

import (
	"sync"
)

// DefaultLimit is how many entries the cache holds before evicting.
const DefaultLimit = 50

// Stats reports the current cache occupancy.
type Stats struct {
	Size  int `json:"cache_size"`
	Limit int `json:"cache_limit"`
}

// Cache maps (text, voice) keys to encoded audio bytes with strict FIFO
// eviction: the oldest-inserted entry goes first, reads never touch the
// eviction order.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]byte
	order   []string
	limit   int
}

// New creates a cache holding at most limit entries. A non-positive limit
// falls back to DefaultLimit.
func New(limit int) *Cache {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Cache{
		entries: make(map[string][]byte, limit),
		order:   make([]string, 0, limit),
		limit:   limit,
	}
}

// Key builds the cache key for a synthesis request.
func Key(text, voice string) string {
	return text + "_" + voice
}

// Get returns the cached audio for key, if present.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[key]
	return data, ok
}

// Put stores audio under key, evicting the single oldest-inserted entry
// when the cache is at capacity. Re-putting an existing key refreshes the
// value without growing the cache.
func (c *Cache) Put(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = data
		return
	}

	if len(c.entries) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = data
	c.order = append(c.order, key)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte, c.limit)
	c.order = c.order[:0]
}

// Stats returns the current size and the configured limit.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Size: len(c.entries), Limit: c.limit}
}
