// Package cache stores computed layouts and rendered artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: never stores anything, for --no-cache runs and tests
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes every input that affects
// the output, so a changed option can never return a stale layout.
// [ScopedKeyer] prefixes keys to separate tenants that share one backend.
package cache

import (
	"context"
	"time"
)

// Default lifetimes. Layouts depend only on their inputs, so they live long;
// artifacts are cheap to re-render from a cached layout.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// A ttl of zero means the entry does not expire.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
