// Package cache provides a size-bounded LRU cache used for shared
// renderer resources: rasterized label images and hit-test masks.
//
// Caches here are explicitly constructed and passed down from the
// composition root rather than held in package globals, so lifecycle
// and test isolation stay clean.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the default maximum number of entries.
const DefaultCapacity = 512

// Stats contains cache usage statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries.
	Capacity int
	// Hits is the number of successful lookups.
	Hits uint64
	// Misses is the number of failed lookups.
	Misses uint64
	// Evictions is the number of entries evicted by capacity pressure.
	Evictions uint64
}

// entry holds a cached value with its LRU position.
type entry[K comparable, V any] struct {
	key     K
	value   V
	element *list.Element
}

// LRU is a thread-safe, size-bounded LRU cache.
//
// The zero value is not usable; construct with New. All methods are
// safe for concurrent use, though the renderer's single-threaded model
// means contention is rare in practice.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	order    *list.List // front = most recently used
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates an LRU cache holding at most capacity entries.
// If capacity <= 0, DefaultCapacity is used.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{
		entries:  make(map[K]*entry[K, V]),
		order:    list.New(),
		capacity: capacity,
	}
}

// Get retrieves a cached value by key.
// Returns (value, true) if found, (zero, false) otherwise.
// On a hit the entry becomes the most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.order.MoveToFront(e.element)
	c.hits.Add(1)
	return e.value, true
}

// Set stores a value in the cache, evicting the least recently used
// entries when over capacity. The value is stored as-is, not copied.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		existing.value = value
		c.order.MoveToFront(existing.element)
		return
	}

	c.evictLocked(c.capacity - 1)

	e := &entry[K, V]{key: key, value: value}
	e.element = c.order.PushFront(e)
	c.entries[key] = e
}

// GetOrCreate returns a cached value or creates and stores it using the
// provided function. This is the preferred access method: it prevents
// duplicate rasterization of the same resource.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.order.MoveToFront(e.element)
		c.hits.Add(1)
		return e.value
	}
	c.misses.Add(1)

	value := create()
	c.evictLocked(c.capacity - 1)
	e := &entry[K, V]{key: key, value: value}
	e.element = c.order.PushFront(e)
	c.entries[key] = e
	return value
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(e.element)
	delete(c.entries, key)
	return true
}

// Prune drops the least recently used half of the cache. Layers call
// this between frames when the view changed enough that old labels are
// unlikely to be reused.
func (c *LRU[K, V]) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(len(c.entries) / 2)
}

// Clear removes all entries from the cache.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*entry[K, V])
	c.order.Init()
}

// evictLocked removes oldest entries until at most max remain.
// Caller must hold c.mu.
func (c *LRU[K, V]) evictLocked(max int) {
	if max < 0 {
		max = 0
	}
	for len(c.entries) > max {
		back := c.order.Back()
		if back == nil {
			return
		}
		e := back.Value.(*entry[K, V])
		c.order.Remove(back)
		delete(c.entries, e.key)
		c.evictions.Add(1)
	}
}

// Len returns the current number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int { return c.capacity }

// Stats returns current cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
