// Package cache provides byte-level caching backends for API responses.
//
// # Backends
//
//   - [FileCache]: JSON entries on disk, for single-user CLI usage
//   - [RedisCache]: shared cache for multiple processes (go-redis)
//   - [NullCache]: never stores anything; used with --no-cache and in tests
//
// The dispatcher itself never caches. Caching is a caller concern: the eveapi
// client reads character endpoints through a Cache with the TTL announced by
// the remote service (cachedUntil).
//
// # Keys
//
// Keys are produced by a [Keyer]. Request URLs carry verification codes, so
// the default keyer hashes them rather than storing them verbatim.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads with an optional TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the payload for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ResponseKey returns the key for a decoded response fetched from url
	// within namespace (for example "eveapi").
	ResponseKey(namespace, url string) string
}

// DefaultKeyer hashes request URLs so that credentials never appear in keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResponseKey returns "resp:<namespace>:<sha256(url)>".
func (DefaultKeyer) ResponseKey(namespace, url string) string {
	return hashKey("resp:"+namespace, url)
}
