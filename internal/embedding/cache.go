package embedding

import (
	"container/list"
	"encoding/binary"
	"hash/fnv"
	"math"
	"strconv"
	"sync"
)

// EmbeddingCache is an LRU cache for embeddings keyed by image content
// hash. Values are copied on the way in and out, so callers may mutate
// slices they pass or receive without corrupting other lookups.
type EmbeddingCache struct {
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

type cacheEntry struct {
	key   string
	value []float32
}

// NewEmbeddingCache creates a new cache with the given capacity.
func NewEmbeddingCache(capacity int) *EmbeddingCache {
	return &EmbeddingCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get returns a copy of the cached embedding for key if present.
func (c *EmbeddingCache) Get(key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		stored := elem.Value.(*cacheEntry).value
		out := make([]float32, len(stored))
		copy(out, stored)
		return out, true
	}
	return nil, false
}

// Set stores a copy of the embedding for key, evicting the oldest entry
// if at capacity.
func (c *EmbeddingCache) Set(key string, value []float32) {
	stored := make([]float32, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = stored
		return
	}

	entry := &cacheEntry{key: key, value: stored}
	elem := c.lru.PushFront(entry)
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*cacheEntry).key)
		}
	}
}

// tensorKey hashes a preprocessed input tensor into a cache key.
func tensorKey(t []float32) string {
	h := fnv.New64a()
	var buf [4]byte
	for _, v := range t {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		h.Write(buf[:])
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
