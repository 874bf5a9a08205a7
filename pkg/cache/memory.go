package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process TTL cache backed by patrickmn/go-cache.
// It suits a single long-lived session (the TUI, or a single-instance
// server) where recomputing layouts on every keystroke would be wasteful.
type MemoryCache struct {
	inner *gocache.Cache
}

// NewMemoryCache creates an in-memory cache. defaultTTL applies when Set is
// called with a zero ttl; expired entries are purged every cleanupInterval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) Cache {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &MemoryCache{inner: gocache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a value.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.inner.Get(key)
	if !ok {
		return nil, false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		// Foreign entry type - treat as miss and clear it.
		c.inner.Delete(key)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores a value. A ttl of zero uses the cache's default TTL. A negative
// ttl names an entry that is already expired, so nothing is stored.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		c.inner.Delete(key)
		return nil
	}
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.inner.Set(key, data, ttl)
	return nil
}

// Delete removes a value.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.inner.Delete(key)
	return nil
}

// Close does nothing for the memory cache.
func (c *MemoryCache) Close() error {
	return nil
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
