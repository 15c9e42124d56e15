// Package geocache decorates a domain.Geocoder with an in-memory TTL cache.
package geocache

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/couchcryptid/weather-odds/internal/domain"
	"github.com/couchcryptid/weather-odds/internal/observability"
)

// CachedGeocoder wraps a Geocoder with an expiring in-memory cache keyed by
// the case-folded query.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *cache.Cache
	metrics *observability.Metrics
}

// New creates a cache decorator around a geocoder. Entries expire after ttl.
func New(inner domain.Geocoder, ttl time.Duration, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   cache.New(ttl, 2*ttl),
		metrics: metrics,
	}
}

// Search returns cached candidates when present, otherwise delegates.
func (c *CachedGeocoder) Search(ctx context.Context, query string) ([]domain.Location, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if v, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return copyLocations(v.([]domain.Location)), nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty results so a "not found" can be retried.
	if len(result) > 0 {
		c.cache.Set(key, copyLocations(result), cache.DefaultExpiration)
	}
	return result, nil
}

// Len returns the number of unexpired entries.
func (c *CachedGeocoder) Len() int {
	return c.cache.ItemCount()
}

func copyLocations(in []domain.Location) []domain.Location {
	out := make([]domain.Location, len(in))
	copy(out, in)
	return out
}
