package library

import (
	"container/list"
	"sync"

	"github.com/FocuswithJustin/Scriptura/core/verseindex"
)

// Cache is a generic LRU cache interface.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache.
	Get(key K) (V, bool)

	// Put stores a value in the cache.
	Put(key K, value V)

	// Remove removes a value from the cache.
	Remove(key K)

	// Clear removes all entries from the cache.
	Clear()

	// Len returns the number of entries in the cache.
	Len() int

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// entry represents a cache entry.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// lruCache is a thread-safe LRU cache implementation.
type lruCache[K comparable, V any] struct {
	mu        sync.RWMutex
	maxSize   int
	entries   map[K]*list.Element
	evictList *list.List
	stats     Stats
}

// NewLRUCache creates a new LRU cache holding at most maxSize entries
// (0 = unlimited).
func NewLRUCache[K comparable, V any](maxSize int) Cache[K, V] {
	if maxSize < 0 {
		maxSize = 0
	}
	return &lruCache[K, V]{
		maxSize:   maxSize,
		entries:   make(map[K]*list.Element),
		evictList: list.New(),
	}
}

// Get retrieves a value from the cache.
func (c *lruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.evictList.MoveToFront(ent)
	c.stats.Hits++
	return ent.Value.(*entry[K, V]).value, true
}

// Put stores a value in the cache.
func (c *lruCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*entry[K, V]).value = value
		return
	}

	ent := c.evictList.PushFront(&entry[K, V]{key: key, value: value})
	c.entries[key] = ent

	if c.maxSize > 0 && c.evictList.Len() > c.maxSize {
		c.removeOldest()
	}
}

// Remove removes a value from the cache.
func (c *lruCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.removeElement(ent)
	}
}

// Clear removes all entries from the cache.
func (c *lruCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.evictList.Init()
}

// Len returns the number of entries in the cache.
func (c *lruCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.evictList.Len()
}

// Stats returns cache statistics.
func (c *lruCache[K, V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.maxSize
	return s
}

func (c *lruCache[K, V]) removeOldest() {
	ent := c.evictList.Back()
	if ent != nil {
		c.removeElement(ent)
		c.stats.Evictions++
	}
}

func (c *lruCache[K, V]) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	delete(c.entries, ent.Value.(*entry[K, V]).key)
}

// indexCache is a specialized cache for built verse indexes, keyed by
// payload fingerprint.
type indexCache struct {
	cache Cache[string, *verseindex.Index]
}

func newIndexCache(maxSize int) *indexCache {
	return &indexCache{cache: NewLRUCache[string, *verseindex.Index](maxSize)}
}

func (c *indexCache) Get(fingerprint string) (*verseindex.Index, bool) {
	return c.cache.Get(fingerprint)
}

func (c *indexCache) Put(fingerprint string, idx *verseindex.Index) {
	c.cache.Put(fingerprint, idx)
}

func (c *indexCache) Remove(fingerprint string) {
	c.cache.Remove(fingerprint)
}

func (c *indexCache) Stats() Stats {
	return c.cache.Stats()
}
