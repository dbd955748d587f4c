package cfv2

import (
	"context"
	"sync"
	"time"
)

// CacheEntry is a cached GET response body with its expiry.
type CacheEntry struct {
	Data      []byte    `json:"data"           yaml:"data"`
	ExpiresAt time.Time `json:"expires_at"     yaml:"expires_at"`
	ETag      string    `json:"etag,omitempty" yaml:"etag,omitempty"`
}

// Expired reports whether the entry is past its expiry.
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// Cache is the interface implemented by all cache backends.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheOptions holds options common to all backends.
type CacheOptions struct {
	// DefaultTTL applies to entries stored without an explicit expiry.
	DefaultTTL time.Duration
}

// DefaultCacheOptions returns the default cache options.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		DefaultTTL: 1 * time.Minute,
	}
}

// MemoryCache is an in-process cache with a fixed size cap. Expired
// entries are dropped lazily on access; when the cap is reached the
// oldest entry is evicted.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*memoryCacheItem
	maxSize int
}

type memoryCacheItem struct {
	entry    *CacheEntry
	storedAt time.Time
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1
	}

	return &MemoryCache{
		entries: make(map[string]*memoryCacheItem),
		maxSize: maxSize,
	}
}

// Get retrieves an entry, dropping it when expired.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	item, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}

	if item.entry.Expired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()

		return nil, ErrCacheMiss
	}

	return item.entry, nil
}

// Set stores an entry, evicting the oldest one when the cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}

	c.entries[key] = &memoryCacheItem{
		entry:    entry,
		storedAt: time.Now(),
	}

	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*memoryCacheItem)

	return nil
}

// Has reports whether a live entry exists for the key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *MemoryCache) evictOldestLocked() {
	// Prefer evicting an expired entry.
	for key, item := range c.entries {
		if item.entry.Expired() {
			delete(c.entries, key)

			return
		}
	}

	var (
		oldestKey  string
		oldestTime time.Time
	)

	for key, item := range c.entries {
		if oldestKey == "" || item.storedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.storedAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
