// Package cache provides in-process and Redis-backed caches.
package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// LRU is a size-bounded cache whose entries also expire after a TTL.
// It is safe for concurrent use.
type LRU[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items *lru.Cache
	now   func() time.Time
}

type cacheItem[T any] struct {
	data      T
	expiresAt time.Time
}

// NewLRU creates a new LRU holding at most maxSize entries for ttl each.
// A non-positive ttl disables expiry.
func NewLRU[T any](maxSize int, ttl time.Duration) (*LRU[T], error) {
	if maxSize < 1 {
		maxSize = 1
	}
	items, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[T]{
		ttl:   ttl,
		items: items,
		now:   time.Now,
	}, nil
}

// Get retrieves a value. Expired entries are removed and reported as misses.
func (c *LRU[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	value, ok := c.items.Get(key)
	if !ok {
		return zero, false
	}

	item := value.(cacheItem[T])
	if c.expired(item) {
		c.items.Remove(key)
		return zero, false
	}
	return item.data, true
}

// Set stores a value, evicting the least recently used entry when full.
func (c *LRU[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := cacheItem[T]{data: data}
	if c.ttl > 0 {
		item.expiresAt = c.now().Add(c.ttl)
	}
	c.items.Add(key, item)
}

// Delete removes a key.
func (c *LRU[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Remove(key)
}

// Purge removes every entry.
func (c *LRU[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Purge()
}

// CleanExpired removes all expired entries and returns the number removed.
func (c *LRU[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, key := range c.items.Keys() {
		value, ok := c.items.Peek(key)
		if !ok {
			continue
		}
		if c.expired(value.(cacheItem[T])) {
			c.items.Remove(key)
			removed++
		}
	}
	return removed
}

// Size returns the current number of entries, expired ones included.
func (c *LRU[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}

func (c *LRU[T]) expired(item cacheItem[T]) bool {
	return !item.expiresAt.IsZero() && c.now().After(item.expiresAt)
}
