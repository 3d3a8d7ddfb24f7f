// ABOUTME: In-memory cache backed by patrickmn/go-cache
// ABOUTME: Holds synthesized audio and feed listings with per-key TTLs and periodic janitor cleanup

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrCacheMiss is returned for absent or expired keys
var ErrCacheMiss = errors.New("key not found")

const cleanupInterval = 10 * time.Minute

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

// Get retrieves a copy of the cached value
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := c.items.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	stored, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}

	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a copy of value. A zero TTL never expires.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.items.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.items.Delete(key)
	return nil
}

// Len returns the number of stored items, expired ones included until the janitor runs
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}
