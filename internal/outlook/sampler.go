package outlook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-odds/internal/domain"
	"github.com/couchcryptid/weather-odds/internal/observability"
)

// Sampler collects same-calendar-day observations across recent years.
type Sampler struct {
	archive domain.Archive
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewSampler creates a Sampler backed by archive.
func NewSampler(archive domain.Archive, logger *slog.Logger, metrics *observability.Metrics) *Sampler {
	return &Sampler{archive: archive, logger: logger, metrics: metrics}
}

// Fetch returns the samples for month/day over the `years` most recent
// completed years. The whole multi-year range is requested from the archive
// in a single call and filtered locally. Invalid dates fail with
// ErrInvalidDate before any request is made.
func (s *Sampler) Fetch(ctx context.Context, loc domain.Location, month, day, years int) (domain.SampleSet, domain.Window, error) {
	if err := domain.ValidateDate(month, day); err != nil {
		return nil, domain.Window{}, err
	}
	if years < 1 {
		return nil, domain.Window{}, &RangeError{Field: "years", Value: years, Min: 1}
	}

	window := domain.SampleWindow(domain.Now(), month, day, years)
	from, to := window.DateRange(month, day)

	began := time.Now()
	records, err := s.archive.DailyRange(ctx, loc, from, to)
	s.metrics.UpstreamDuration.WithLabelValues("archive").Observe(time.Since(began).Seconds())
	if err != nil {
		s.metrics.UpstreamRequests.WithLabelValues("archive", "error").Inc()
		s.logger.Warn("archive request failed",
			"lat", loc.Latitude,
			"lon", loc.Longitude,
			"start", from.Format(time.DateOnly),
			"end", to.Format(time.DateOnly),
			"error", err,
		)
		return nil, window, fmt.Errorf("fetch %s..%s: %w: %w",
			from.Format(time.DateOnly), to.Format(time.DateOnly), domain.ErrWeatherService, err)
	}

	samples := domain.ExtractSamples(records, window, month, day)
	outcome := "success"
	if len(samples) == 0 {
		outcome = "empty"
	}
	s.metrics.UpstreamRequests.WithLabelValues("archive", outcome).Inc()

	if len(samples) < years {
		s.logger.Debug("archive returned partial history",
			"requested_years", years,
			"samples", len(samples),
			"records", len(records),
		)
	}
	return samples, window, nil
}
