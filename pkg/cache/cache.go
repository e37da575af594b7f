// Package cache provides byte-level caching for diagrams and rendered
// artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: sharded JSON files on disk, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the API server
//   - [NullCache]: never stores anything (caching disabled)
//
// Keys are produced by a [Keyer] so that every layer hashes graphs and
// options the same way. [ScopedKeyer] prefixes keys for isolated namespaces.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per key type.
const (
	TTLHTTP     = 24 * time.Hour
	TTLDiagram  = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for opaque byte payloads.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero ttl passed to Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
