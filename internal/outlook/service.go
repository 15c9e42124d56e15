// Package outlook chains location resolution, historical sampling, the
// probability engine and advisory mapping into a single request flow.
package outlook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-odds/internal/domain"
	"github.com/couchcryptid/weather-odds/internal/observability"
)

// Request is a single outlook query.
type Request struct {
	Location string
	Month    int
	Day      int
	Years    int
}

// Assessment is the result of a successful outlook request.
type Assessment struct {
	Location   domain.Location          `json:"location"`
	Month      int                      `json:"month"`
	Day        int                      `json:"day"`
	Years      int                      `json:"years"`
	Window     domain.Window            `json:"window"`
	Report     domain.ProbabilityReport `json:"report"`
	Summary    domain.Summary           `json:"summary"`
	Advice     []string                 `json:"advice"`
	AssessedAt time.Time                `json:"assessed_at"`
}

// Publisher receives completed assessments. Implementations must not block
// the caller for long; failures are logged and never fail the request.
type Publisher interface {
	Publish(ctx context.Context, a Assessment) error
}

// Service answers outlook requests.
type Service struct {
	resolver     *Resolver
	sampler      *Sampler
	thresholds   domain.Thresholds
	defaultYears int
	maxYears     int
	publisher    Publisher
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// Option customises a Service.
type Option func(*Service)

// WithPublisher attaches a Publisher that receives every successful assessment.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithYears overrides the default and maximum number of sampled years.
func WithYears(defaultYears, maxYears int) Option {
	return func(s *Service) {
		s.defaultYears = defaultYears
		s.maxYears = maxYears
	}
}

// NewService creates a Service. Thresholds are fixed for the service lifetime.
func NewService(resolver *Resolver, sampler *Sampler, thresholds domain.Thresholds, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Service {
	s := &Service{
		resolver:     resolver,
		sampler:      sampler,
		thresholds:   thresholds,
		defaultYears: 10,
		maxYears:     40,
		logger:       logger,
		metrics:      metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assess resolves the location, samples the archive, and derives the report
// and advice. The date is checked before any outbound request.
func (s *Service) Assess(ctx context.Context, req Request) (Assessment, error) {
	start := time.Now()
	a, err := s.assess(ctx, req)
	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		kind := domain.KindOf(err)
		s.metrics.Assessments.WithLabelValues(string(kind)).Inc()
		s.logger.Warn("outlook failed",
			"location", req.Location,
			"month", req.Month,
			"day", req.Day,
			"kind", kind,
			"error", err,
		)
		return Assessment{}, err
	}

	s.metrics.Assessments.WithLabelValues("ok").Inc()
	s.metrics.Dominant.WithLabelValues(string(a.Report.Dominant)).Inc()
	s.metrics.SamplesPerRequest.Observe(float64(a.Summary.SampleCount))
	s.logger.Info("outlook assessed",
		"location", a.Location.DisplayName,
		"month", a.Month,
		"day", a.Day,
		"samples", a.Summary.SampleCount,
		"dominant", a.Report.Dominant,
	)

	s.publish(ctx, a)
	return a, nil
}

func (s *Service) assess(ctx context.Context, req Request) (Assessment, error) {
	if err := domain.ValidateDate(req.Month, req.Day); err != nil {
		return Assessment{}, err
	}
	years, err := s.years(req.Years)
	if err != nil {
		return Assessment{}, err
	}

	loc, err := s.resolver.Resolve(ctx, req.Location)
	if err != nil {
		return Assessment{}, err
	}

	samples, window, err := s.sampler.Fetch(ctx, loc, req.Month, req.Day, years)
	if err != nil {
		return Assessment{}, err
	}

	report, err := domain.Evaluate(samples, s.thresholds)
	if err != nil {
		return Assessment{}, fmt.Errorf("%s %02d-%02d: %w", loc.DisplayName, req.Month, req.Day, err)
	}

	return Assessment{
		Location:   loc,
		Month:      req.Month,
		Day:        req.Day,
		Years:      years,
		Window:     window,
		Report:     report,
		Summary:    domain.Summarize(samples),
		Advice:     domain.Advise(report.Dominant),
		AssessedAt: domain.Now().UTC(),
	}, nil
}

// years applies the default when n is zero and rejects values outside
// [1, maxYears].
func (s *Service) years(n int) (int, error) {
	if n == 0 {
		return s.defaultYears, nil
	}
	if n < 1 || n > s.maxYears {
		return 0, &RangeError{Field: "years", Value: n, Min: 1, Max: s.maxYears}
	}
	return n, nil
}

func (s *Service) publish(ctx context.Context, a Assessment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), a); err != nil {
		s.logger.Warn("publish assessment failed", "location", a.Location.DisplayName, "error", err)
	}
}

// RangeError reports a request parameter outside its accepted bounds. A zero
// Max means no upper bound.
type RangeError struct {
	Field    string
	Value    int
	Min, Max int
}

func (e *RangeError) Error() string {
	if e.Max == 0 {
		return fmt.Sprintf("%s must be at least %d, got %d", e.Field, e.Min, e.Value)
	}
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}
