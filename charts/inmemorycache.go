package charts

import (
	"sync"
	"time"
)

// InMemoryChartsCache is a simple in-memory implementation of ChartsCache.
// Thread-safe for concurrent access.
type InMemoryChartsCache struct {
	listing  []*SavedChart
	cachedAt time.Time
	config   CacheConfig
	mu       sync.RWMutex
	isValid  bool
}

// NewInMemoryChartsCache creates a new in-memory listing cache.
func NewInMemoryChartsCache(config CacheConfig) *InMemoryChartsCache {
	return &InMemoryChartsCache{
		config:  config,
		isValid: false,
	}
}

// Get retrieves the cached listing, nil when invalid or expired.
func (c *InMemoryChartsCache) Get() []*SavedChart {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.isValid {
		return nil
	}

	if c.config.TTL > 0 && time.Since(c.cachedAt) > c.config.TTL {
		return nil
	}

	// Return a copy to prevent external modification.
	listingCopy := make([]*SavedChart, len(c.listing))
	copy(listingCopy, c.listing)
	return listingCopy
}

// Set stores a listing in the cache.
func (c *InMemoryChartsCache) Set(listing []*SavedChart) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listing = make([]*SavedChart, len(listing))
	copy(c.listing, listing)
	c.cachedAt = time.Now()
	c.isValid = true
}

// Invalidate clears the cache.
func (c *InMemoryChartsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isValid = false
	c.listing = nil
}

// IsValid returns true if the cache holds unexpired data.
func (c *InMemoryChartsCache) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.isValid {
		return false
	}
	if c.config.TTL > 0 {
		return time.Since(c.cachedAt) <= c.config.TTL
	}
	return true
}
