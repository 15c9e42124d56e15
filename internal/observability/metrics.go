package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the outlook service.
type Metrics struct {
	Assessments        *prometheus.CounterVec // labels: outcome={ok,<error kind>}
	AssessmentDuration prometheus.Histogram
	SamplesPerRequest  prometheus.Histogram
	Dominant           *prometheus.CounterVec // labels: condition

	// Upstream metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: upstream={geocoder,archive}, outcome={success,error,empty}
	UpstreamDuration *prometheus.HistogramVec // labels: upstream
	GeocodeFallback  *prometheus.CounterVec   // labels: reason={empty,error}
	GeocodeCache     *prometheus.CounterVec   // labels: result={hit,miss}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Assessments,
		m.AssessmentDuration,
		m.SamplesPerRequest,
		m.Dominant,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.GeocodeFallback,
		m.GeocodeCache,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "assessments_total",
			Help:      "Outlook requests by outcome.",
		}, []string{"outcome"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_odds",
			Name:      "assessment_duration_seconds",
			Help:      "End-to-end duration of an outlook request.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		}),
		SamplesPerRequest: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_odds",
			Name:      "samples_per_assessment",
			Help:      "Number of historical samples behind each report.",
			Buckets:   []float64{0, 1, 3, 5, 10, 20, 40},
		}),
		Dominant: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "dominant_total",
			Help:      "Reports by dominant condition.",
		}, []string{"condition"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "upstream_requests_total",
			Help:      "Outbound requests by upstream and outcome.",
		}, []string{"upstream", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_odds",
			Name:      "upstream_duration_seconds",
			Help:      "Outbound request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"upstream"}),
		GeocodeFallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "geocode_fallback_total",
			Help:      "Locations served from the static city table, by reason.",
		}, []string{"reason"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}
