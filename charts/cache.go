package charts

import "time"

// ChartsCache caches the recent-charts listing so list requests do not hit
// the database every time. Implementations must be safe for concurrent use.
type ChartsCache interface {
	// Get retrieves the cached listing, nil on miss or expiry.
	Get() []*SavedChart

	// Set stores a listing in the cache.
	Set(listing []*SavedChart)

	// Invalidate clears the cache, forcing a refresh on next Get.
	Invalidate()

	// IsValid returns true if the cache holds unexpired data.
	IsValid() bool
}

// CacheConfig holds configuration for cache behavior.
type CacheConfig struct {
	// TTL is the time-to-live for the cached listing.
	// Set to 0 for no expiration (manual invalidation only).
	TTL time.Duration
}

// DefaultCacheConfig returns sensible defaults for listing caching. A short
// TTL keeps the listing fresh even when mutations happen out of band.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL: 30 * time.Second,
	}
}
