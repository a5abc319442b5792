// ABOUTME: Client-side cache of the sweet catalog
// ABOUTME: Invalidated by full re-fetch after every mutation, refreshes deduplicated

package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sweetworks/sweetshop-cli/internal/api"
)

// Cache holds the last fetched catalog. The backend is the inventory truth;
// this copy exists only to render views, and every mutating call invalidates
// it for a full re-fetch. No partial or optimistic updates.
type Cache struct {
	client *api.Client
	group  singleflight.Group

	mu     sync.RWMutex
	sweets []api.Sweet
	loaded bool
}

// NewCache creates an empty cache over the given client.
func NewCache(client *api.Client) *Cache {
	return &Cache{client: client}
}

// Sweets returns the cached catalog, fetching it first when nothing is
// loaded yet.
func (c *Cache) Sweets(ctx context.Context) ([]api.Sweet, error) {
	c.mu.RLock()
	if c.loaded {
		sweets := c.sweets
		c.mu.RUnlock()
		return sweets, nil
	}
	c.mu.RUnlock()
	return c.Refresh(ctx)
}

// Refresh re-fetches the catalog from the backend. Concurrent refreshes are
// collapsed into a single request; every waiter gets the same result.
func (c *Cache) Refresh(ctx context.Context) ([]api.Sweet, error) {
	result, err, _ := c.group.Do("sweets", func() (any, error) {
		sweets, err := c.client.ListSweets(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.sweets = sweets
		c.loaded = true
		c.mu.Unlock()
		return sweets, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]api.Sweet), nil
}

// Invalidate drops the cached copy so the next read re-fetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.sweets = nil
	c.loaded = false
	c.mu.Unlock()
}

// Loaded reports whether a catalog has been fetched since the last
// invalidation.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
