package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"suptui/internal/table"
)

// FetchFunc loads a fresh dataset for a resource.
type FetchFunc func(ctx context.Context) ([]table.Row, error)

type cacheEntry struct {
	rows      []table.Row
	expiresAt time.Time
}

// Cache keeps fetched datasets for a limited time. Concurrent fetches of the
// same resource share one call.
type Cache struct {
	mu         sync.RWMutex
	items      map[string]cacheEntry
	ttl        map[string]time.Duration
	defaultTTL time.Duration
	group      singleflight.Group
	now        func() time.Time
}

// NewCache creates a new Cache with the given default TTL (or 5m if zero).
func NewCache(defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Cache{
		items:      make(map[string]cacheEntry),
		ttl:        make(map[string]time.Duration),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// SetTTL sets a custom TTL for a resource.
func (c *Cache) SetTTL(resource string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.ttl[resource] = ttl
	c.mu.Unlock()
}

func (c *Cache) getTTL(resource string) time.Duration {
	c.mu.RLock()
	ttl, ok := c.ttl[resource]
	c.mu.RUnlock()
	if ok {
		return ttl
	}
	return c.defaultTTL
}

// Set stores rows for resource.
func (c *Cache) Set(resource string, rows []table.Row) {
	expires := c.now().Add(c.getTTL(resource))
	c.mu.Lock()
	c.items[resource] = cacheEntry{rows: rows, expiresAt: expires}
	c.mu.Unlock()
}

// Get returns the rows of resource if present and not stale.
func (c *Cache) Get(resource string) ([]table.Row, bool) {
	c.mu.RLock()
	entry, ok := c.items[resource]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.Invalidate(resource)
		return nil, false
	}
	return entry.rows, true
}

// Fetch returns the cached rows of resource, calling fetch when they are
// missing or stale. Errors are not cached.
func (c *Cache) Fetch(ctx context.Context, resource string, fetch FetchFunc) ([]table.Row, error) {
	if rows, ok := c.Get(resource); ok {
		return rows, nil
	}
	v, err, _ := c.group.Do(resource, func() (any, error) {
		rows, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(resource, rows)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]table.Row), nil
}

// Refresh drops the cached rows of resource and fetches them again.
func (c *Cache) Refresh(ctx context.Context, resource string, fetch FetchFunc) ([]table.Row, error) {
	c.Invalidate(resource)
	return c.Fetch(ctx, resource, fetch)
}

// Invalidate removes the rows of resource.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	delete(c.items, resource)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// PurgeExpired removes all expired entries.
func (c *Cache) PurgeExpired() {
	now := c.now()
	c.mu.Lock()
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
	c.mu.Unlock()
}
