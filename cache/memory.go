package cache

import (
	"sort"
	"sync"
	"time"
)

// MemoryCache implements the Cache interface with an in-process map.
// It is unbounded; entries only leave through Clear or by being overwritten.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-memory cache
func NewMemoryCache(opts ...Option) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*Entry),
		now:     applyOptions(opts).now,
	}
}

// Read implements Reader interface
func (mc *MemoryCache) Read(key string, maxAge time.Duration) (*Entry, bool) {
	mc.mu.RLock()
	entry, ok := mc.entries[key]
	mc.mu.RUnlock()
	if !ok {
		return nil, false
	}

	// Expired entries stay in the map until overwritten or cleared
	if maxAge > 0 && mc.now().Sub(entry.StoredAt) >= maxAge {
		return entry.clone(), false
	}

	return entry.clone(), true
}

// Write implements Writer interface
func (mc *MemoryCache) Write(key string, entry *Entry) error {
	stored := entry.clone()
	stored.Key = key
	stored.StoredAt = mc.now()

	mc.mu.Lock()
	mc.entries[key] = stored
	mc.mu.Unlock()
	return nil
}

// KeyFor implements KeyGenerator interface
func (mc *MemoryCache) KeyFor(endpoint, query string) string {
	return KeyFor(endpoint, query)
}

// Len returns the number of stored entries, expired ones included
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.entries)
}

// Keys returns the stored keys in sorted order
func (mc *MemoryCache) Keys() []string {
	mc.mu.RLock()
	keys := make([]string, 0, len(mc.entries))
	for k := range mc.entries {
		keys = append(keys, k)
	}
	mc.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Clear drops every entry
func (mc *MemoryCache) Clear() {
	mc.mu.Lock()
	mc.entries = make(map[string]*Entry)
	mc.mu.Unlock()
}

// KeyFor joins an endpoint and its exact query payload into a cache key.
// Different payloads to the same endpoint never collide.
func KeyFor(endpoint, query string) string {
	return endpoint + ":" + query
}

func (e *Entry) clone() *Entry {
	c := *e
	if e.Body != nil {
		c.Body = append([]byte(nil), e.Body...)
	}
	return &c
}

// Ensure MemoryCache implements the Cache interface
var _ Cache = (*MemoryCache)(nil)
