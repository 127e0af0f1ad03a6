package shape

import (
	"hash/maphash"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/termatlas/font"
)

// Default cache configuration constants.
const (
	// DefaultShardCount is the number of shards for reduced lock
	// contention. Must be a power of 2 for fast modulo via bitwise AND.
	DefaultShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 256

	// shardMask is used for fast shard selection.
	shardMask = DefaultShardCount - 1
)

// keySeed salts run-key hashing for shard selection.
var keySeed = maphash.MakeSeed()

// RunKey identifies a shaped run in the run cache. Every shaping
// parameter that affects the result is part of the key.
type RunKey struct {
	// TextHash is a 64-bit hash of the run text.
	TextHash uint64

	// Face is the stable face identity; the soft font hashes as a
	// distinct face.
	Face font.Key

	// SizeBits is the IEEE 754 bit pattern of the font size. Using the
	// bit pattern gives exact matching without floating-point issues.
	SizeBits uint32

	// CellWidth pins the advance grid: the same text at the same em size
	// snaps to different advances when the cell geometry changes (DPI or
	// advance-scale updates).
	CellWidth uint32

	// Attributes distinguishes bold/italic shaping of the same text.
	Attributes font.Attributes
}

// NewRunKey builds the cache key for one run.
func NewRunKey(text string, face font.Handle, size float32, cellWidth int, attrs font.Attributes) RunKey {
	return RunKey{
		TextHash:   maphash.String(keySeed, text),
		Face:       face.Key(),
		SizeBits:   math.Float32bits(size),
		CellWidth:  uint32(cellWidth),
		Attributes: attrs,
	}
}

// shardIndex selects the shard for a key.
func (k *RunKey) shardIndex() uint64 {
	var h maphash.Hash
	h.SetSeed(keySeed)
	var buf [25]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(k.TextHash >> (8 * i))
		buf[8+i] = byte(k.Face.ID >> (8 * i))
	}
	buf[16] = byte(k.SizeBits)
	buf[17] = byte(k.SizeBits >> 8)
	buf[18] = byte(k.SizeBits >> 16)
	buf[19] = byte(k.SizeBits >> 24)
	buf[20] = byte(k.CellWidth)
	buf[21] = byte(k.CellWidth >> 8)
	buf[22] = byte(k.CellWidth >> 16)
	buf[23] = byte(k.CellWidth >> 24)
	buf[24] = byte(k.Face.Kind)<<4 | byte(k.Attributes)
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// RunCache is a thread-safe, sharded LRU cache for shaped runs.
//
// Rows redraw with largely the same content frame after frame; the cache
// turns those repeats into map lookups. Entries are evicted LRU per
// shard, and atomic counters expose hit/miss/eviction statistics.
type RunCache struct {
	shards   [DefaultShardCount]*cacheShard
	capacity int // per-shard capacity

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// cacheShard is a single shard with its own lock.
type cacheShard struct {
	mu      sync.RWMutex
	entries map[RunKey]*cacheEntry
	lru     *lruList[RunKey]
}

type cacheEntry struct {
	value *ShapedRun
	node  *lruNode[RunKey]
}

// NewRunCache creates a run cache with the given per-shard capacity.
// Total capacity is approximately capacity * DefaultShardCount.
// A capacity of zero or less uses DefaultCapacity.
func NewRunCache(capacity int) *RunCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &RunCache{capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &cacheShard{
			entries: make(map[RunKey]*cacheEntry),
			lru:     newLRUList[RunKey](),
		}
	}
	return c
}

func (c *RunCache) getShard(key *RunKey) *cacheShard {
	return c.shards[key.shardIndex()&shardMask]
}

// Get retrieves a cached shaped run. On a hit the entry moves to the
// front of its shard's LRU list.
func (c *RunCache) Get(key RunKey) (*ShapedRun, bool) {
	shard := c.getShard(&key)

	shard.mu.RLock()
	_, exists := shard.entries[key]
	shard.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil, false
	}

	shard.mu.Lock()
	entry, ok := shard.entries[key]
	if !ok {
		// Evicted between the two locks.
		shard.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}
	shard.lru.MoveToFront(entry.node)
	value := entry.value
	shard.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// Set stores a shaped run. The value is stored as-is, not copied;
// callers must not modify it after caching.
func (c *RunCache) Set(key RunKey, value *ShapedRun) {
	if value == nil {
		return
	}

	shard := c.getShard(&key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if existing, ok := shard.entries[key]; ok {
		existing.value = value
		shard.lru.MoveToFront(existing.node)
		return
	}

	for shard.lru.Len() >= c.capacity {
		oldest, ok := shard.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(shard.entries, oldest)
		c.evictions.Add(1)
	}

	node := shard.lru.PushFront(key)
	shard.entries[key] = &cacheEntry{value: value, node: node}
}

// GetOrCreate returns the cached shaped run or creates and stores it.
// The create function runs with the shard lock held, preventing
// duplicate shaping of the same key; keep it fast.
func (c *RunCache) GetOrCreate(key RunKey, create func() *ShapedRun) *ShapedRun {
	if v, ok := c.Get(key); ok {
		return v
	}

	shard := c.getShard(&key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if entry, ok := shard.entries[key]; ok {
		shard.lru.MoveToFront(entry.node)
		c.hits.Add(1)
		return entry.value
	}

	c.misses.Add(1)
	value := create()
	if value == nil {
		return nil
	}

	for shard.lru.Len() >= c.capacity {
		oldest, ok := shard.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(shard.entries, oldest)
		c.evictions.Add(1)
	}

	node := shard.lru.PushFront(key)
	shard.entries[key] = &cacheEntry{value: value, node: node}
	return value
}

// Clear removes all entries.
func (c *RunCache) Clear() {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.entries = make(map[RunKey]*cacheEntry)
		shard.lru.Clear()
		shard.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *RunCache) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}

// CacheStats contains cache statistics for monitoring.
type CacheStats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the per-shard capacity.
	Capacity int
	// Hits is the number of cache hits.
	Hits uint64
	// Misses is the number of cache misses.
	Misses uint64
	// HitRate is the cache hit rate (0.0 to 1.0).
	HitRate float64
	// Evictions is the number of entries evicted.
	Evictions uint64
}

// Stats returns current cache statistics.
func (c *RunCache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: c.evictions.Load(),
	}
}
