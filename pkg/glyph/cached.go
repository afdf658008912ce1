package glyph

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg/cache"
)

// DefaultCacheSize bounds the number of memoized measurements.
const DefaultCacheSize = 2000

// Cached memoizes another provider. Returned masks are shared between
// callers and must not be modified.
type Cached struct {
	inner   Provider
	entries *cache.ShardedCache[string, Metrics]
}

// NewCached wraps inner with an LRU of the given capacity
// (DefaultCacheSize when capacity <= 0).
func NewCached(inner Provider, capacity int) *Cached {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cached{
		inner:   inner,
		entries: cache.NewSharded[string, Metrics](perShard(capacity), cache.StringHasher),
	}
}

// Measure implements Provider. Errors are not cached.
func (c *Cached) Measure(text, family string, size, rotation float64) (Metrics, error) {
	key := measureKey(text, family, size, rotation)
	if m, ok := c.entries.Get(key); ok {
		return m, nil
	}
	m, err := c.inner.Measure(text, family, size, rotation)
	if err != nil {
		return Metrics{}, err
	}
	c.entries.Set(key, m)
	return m, nil
}

// perShard converts a total capacity into the sharded cache's per-shard size.
func perShard(capacity int) int {
	return max(1, (capacity+cache.DefaultShardCount-1)/cache.DefaultShardCount)
}

func measureKey(text, family string, size, rotation float64) string {
	var b strings.Builder
	b.WriteString(family)
	b.WriteByte(0)
	b.WriteString(text)
	b.WriteByte(0)
	b.WriteString(strconv.FormatFloat(size, 'g', -1, 64))
	b.WriteByte(0)
	b.WriteString(strconv.FormatFloat(rotation, 'g', -1, 64))
	return b.String()
}

var _ Provider = (*Cached)(nil)
