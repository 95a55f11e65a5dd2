// Package cache provides the shared store for raw upstream response bodies.
//
// Two providers are registered: "memory" (an expirable LRU local to the
// process) and "redis" (a Redis/Valkey server shared by every instance).
package cache

// EvictCallback is called when an entry is evicted from the cache.
// The redis provider never calls it; expiry happens server-side.
type EvictCallback func(key string, value []byte)

// Cache stores byte payloads by key with a per-entry TTL.
type Cache interface {
	// Get returns the value and true on hit, nil and false on miss.
	Get(key string) ([]byte, bool)
	// Set stores value under key, replacing any previous entry.
	Set(key string, value []byte)
	// Contains reports whether key is present without refreshing it.
	Contains(key string) bool
	// Len returns the number of live entries.
	Len() int
	// Close releases connections held by the provider.
	Close() error
}
