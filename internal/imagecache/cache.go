package imagecache

import (
	"sync/atomic"

	"github.com/gogpu/gg/cache"
)

const (
	// DefaultMaxEntries is the total entry limit when Options leaves it zero.
	DefaultMaxEntries = 1024
	// DefaultMaxImageBytes is the per-image size limit when Options leaves it
	// zero.
	DefaultMaxImageBytes = 256 << 10
)

// Options bounds a Cache. Resident memory never exceeds roughly
// MaxEntries * MaxImageBytes.
type Options struct {
	MaxEntries    int
	MaxImageBytes int
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	// Oversize counts images that were not stored because they exceeded
	// MaxImageBytes.
	Oversize uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a sharded LRU of encoded images.
type Cache struct {
	lru      *cache.ShardedCache[string, []byte]
	maxImage int
	oversize atomic.Uint64
}

// New creates a Cache. Zero limits select the defaults. MaxEntries is
// rounded up to a multiple of the shard count.
func New(opts Options) *Cache {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = DefaultMaxImageBytes
	}
	perShard := (opts.MaxEntries + cache.DefaultShardCount - 1) / cache.DefaultShardCount
	return &Cache{
		lru:      cache.NewSharded[string, []byte](perShard, cache.StringHasher),
		maxImage: opts.MaxImageBytes,
	}
}

// Get returns the cached bytes for key. Callers must not modify them.
func (c *Cache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

// Set stores data under key. Images larger than MaxImageBytes are not stored.
// The slice is kept as-is, so callers must not modify it afterwards.
func (c *Cache) Set(key string, data []byte) {
	if len(data) > c.maxImage {
		c.oversize.Add(1)
		return
	}
	c.lru.Set(key, data)
}

// GetOrRender returns the cached bytes for key, or calls render and caches
// its result. Errors are not cached. render runs without any lock held, so
// concurrent misses for one key may render more than once.
func (c *Cache) GetOrRender(key string, render func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.Get(key); ok {
		return data, nil
	}
	data, err := render()
	if err != nil {
		return nil, err
	}
	c.Set(key, data)
	return data, nil
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Capacity returns the total entry limit after rounding to whole shards.
func (c *Cache) Capacity() int {
	return c.lru.TotalCapacity()
}

// Stats returns current counters.
func (c *Cache) Stats() Stats {
	st := c.lru.Stats()
	return Stats{
		Entries:   st.Len,
		Hits:      st.Hits,
		Misses:    st.Misses,
		Evictions: st.Evictions,
		Oversize:  c.oversize.Load(),
	}
}
