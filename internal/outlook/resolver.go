package outlook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/weather-odds/internal/domain"
	"github.com/couchcryptid/weather-odds/internal/observability"
)

// Resolver turns a free-text place into a Location using a remote geocoder
// and a static fallback table.
type Resolver struct {
	geocoder        domain.Geocoder
	fallback        domain.FallbackTable
	fallbackOnError bool
	logger          *slog.Logger
	metrics         *observability.Metrics
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithFallbackOnError serves fallback-table hits when the geocoder fails,
// instead of reporting the location service as unavailable.
func WithFallbackOnError() ResolverOption {
	return func(r *Resolver) { r.fallbackOnError = true }
}

// NewResolver creates a Resolver. The fallback table is injected so callers
// and tests can supply their own.
func NewResolver(geocoder domain.Geocoder, fallback domain.FallbackTable, logger *slog.Logger, metrics *observability.Metrics, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		geocoder: geocoder,
		fallback: fallback,
		logger:   logger,
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve issues one remote lookup and takes the first valid candidate. With
// no candidates it consults the fallback table before failing with
// ErrLocationNotFound. A geocoder failure is ErrLocationServiceUnavailable.
func (r *Resolver) Resolve(ctx context.Context, query string) (domain.Location, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return domain.Location{}, fmt.Errorf("empty location query: %w", domain.ErrLocationNotFound)
	}

	start := time.Now()
	candidates, err := r.geocoder.Search(ctx, q)
	r.metrics.UpstreamDuration.WithLabelValues("geocoder").Observe(time.Since(start).Seconds())

	if err != nil {
		r.metrics.UpstreamRequests.WithLabelValues("geocoder", "error").Inc()
		r.logger.Warn("geocoding failed", "query", q, "error", err)
		if r.fallbackOnError {
			if loc, ok := r.fallback.Lookup(q); ok {
				r.metrics.GeocodeFallback.WithLabelValues("error").Inc()
				return loc, nil
			}
		}
		return domain.Location{}, fmt.Errorf("geocode %q: %w: %w", q, domain.ErrLocationServiceUnavailable, err)
	}

	for i, c := range candidates {
		if verr := c.Validate(); verr != nil {
			r.logger.Warn("skipping invalid geocoding candidate", "query", q, "index", i, "error", verr)
			continue
		}
		r.metrics.UpstreamRequests.WithLabelValues("geocoder", "success").Inc()
		return c, nil
	}

	r.metrics.UpstreamRequests.WithLabelValues("geocoder", "empty").Inc()
	if loc, ok := r.fallback.Lookup(q); ok {
		r.metrics.GeocodeFallback.WithLabelValues("empty").Inc()
		r.logger.Info("location served from fallback table", "query", q, "display_name", loc.DisplayName)
		return loc, nil
	}
	return domain.Location{}, fmt.Errorf("resolve %q: %w", q, domain.ErrLocationNotFound)
}
