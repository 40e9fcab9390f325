// Package cache provides a unified caching interface for upstream API responses
// with TTL-based expiration.
package cache

import (
	"encoding/json"
	"time"
)

// Entry represents a cached response with metadata
type Entry struct {
	Key      string          `json:"key"`
	StoredAt time.Time       `json:"stored_at"`
	Body     json.RawMessage `json:"body"`
}

// Reader defines the interface for reading cache entries
type Reader interface {
	// Read retrieves a cache entry by key with TTL validation
	// Returns the entry and true if found and not expired, false otherwise
	Read(key string, maxAge time.Duration) (*Entry, bool)
}

// Writer defines the interface for writing cache entries
type Writer interface {
	// Write stores a cache entry with the given key
	Write(key string, entry *Entry) error
}

// ReadWriter combines both cache operations
type ReadWriter interface {
	Reader
	Writer
}

// KeyGenerator generates cache keys from request parameters
type KeyGenerator interface {
	// KeyFor generates a stable cache key from an endpoint and the exact query payload
	KeyFor(endpoint, query string) string
}

// Inspector exposes diagnostics and wholesale invalidation
type Inspector interface {
	Len() int
	Keys() []string
	Clear()
}

// Cache is the main interface that combines all cache operations
type Cache interface {
	ReadWriter
	KeyGenerator
	Inspector
}
