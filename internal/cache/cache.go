package cache

import (
	"sync"
	"time"
)

// item is a cached value with expiration
type item[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a small in-memory TTL cache safe for concurrent use
type Cache[V any] struct {
	items map[string]item[V]
	mutex sync.RWMutex
	now   func() time.Time
}

// New creates a new cache instance
func New[V any]() *Cache[V] {
	return &Cache[V]{
		items: make(map[string]item[V]),
		now:   time.Now,
	}
}

// WithClock replaces the time source, used by tests
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.now = now
	return c
}

// Get retrieves an unexpired value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mutex.RLock()
	entry, exists := c.items[key]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	if !c.now().Before(entry.expiresAt) {
		c.mutex.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it
		if current, ok := c.items[key]; ok && !c.now().Before(current.expiresAt) {
			delete(c.items, key)
		}
		c.mutex.Unlock()
		return zero, false
	}

	return entry.value, true
}

// Set stores a value in the cache with TTL
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = item[V]{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// Delete removes an item from the cache
func (c *Cache[V]) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache[V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items = make(map[string]item[V])
}

// Len returns the number of stored items, expired or not
func (c *Cache[V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}
