// Package app assembles the outlook service from configuration. Both the
// HTTP server and the CLI build their dependencies here.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/weather-odds/internal/adapter/geocache"
	"github.com/couchcryptid/weather-odds/internal/adapter/httpclient"
	kafkaadapter "github.com/couchcryptid/weather-odds/internal/adapter/kafka"
	"github.com/couchcryptid/weather-odds/internal/adapter/mapbox"
	"github.com/couchcryptid/weather-odds/internal/adapter/nasapower"
	"github.com/couchcryptid/weather-odds/internal/adapter/nominatim"
	"github.com/couchcryptid/weather-odds/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-odds/internal/config"
	"github.com/couchcryptid/weather-odds/internal/domain"
	"github.com/couchcryptid/weather-odds/internal/observability"
	"github.com/couchcryptid/weather-odds/internal/outlook"
)

// App holds the assembled service and the resources that need closing.
type App struct {
	Service *outlook.Service
	archive *httpclient.Resilient
	writer  *kafkaadapter.Writer
	logger  *slog.Logger
}

// New wires geocoder, archive, and optional publisher according to cfg.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*App, error) {
	client := httpclient.NewPooled(cfg.OutboundTimeout)

	geocoder, err := newGeocoder(cfg, client, logger, metrics)
	if err != nil {
		return nil, err
	}

	fallback, err := cfg.LoadFallbackTable()
	if err != nil {
		return nil, err
	}

	settings := httpclient.DefaultSettings(cfg.ArchiveProvider)
	settings.Retries = cfg.ArchiveRetries
	resilient := httpclient.NewResilient(client, settings, logger)

	var archive domain.Archive
	switch cfg.ArchiveProvider {
	case config.ArchiveOpenMeteo:
		archive = openmeteo.NewArchive(resilient, cfg.ArchiveURL)
	case config.ArchiveNASAPower:
		archive = nasapower.NewArchive(resilient, cfg.ArchiveURL)
	default:
		return nil, fmt.Errorf("unknown archive provider %q", cfg.ArchiveProvider)
	}

	var resolverOpts []outlook.ResolverOption
	if cfg.GeocodeFallbackOnError {
		resolverOpts = append(resolverOpts, outlook.WithFallbackOnError())
	}

	a := &App{archive: resilient, logger: logger}
	opts := []outlook.Option{outlook.WithYears(cfg.DefaultYears, cfg.MaxYears)}
	if cfg.PublishEnabled() {
		a.writer = kafkaadapter.NewWriter(cfg, logger)
		opts = append(opts, outlook.WithPublisher(a.writer))
		logger.Info("assessment publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	a.Service = outlook.NewService(
		outlook.NewResolver(geocoder, fallback, logger, metrics, resolverOpts...),
		outlook.NewSampler(archive, logger, metrics),
		cfg.Thresholds,
		logger,
		metrics,
		opts...,
	)

	logger.Info("outlook service configured",
		"geocoder", cfg.GeocoderProvider,
		"archive", cfg.ArchiveProvider,
		"fallback_cities", fallback.Len(),
		"default_years", cfg.DefaultYears,
		"max_years", cfg.MaxYears,
	)
	return a, nil
}

func newGeocoder(cfg *config.Config, client *http.Client, logger *slog.Logger, metrics *observability.Metrics) (domain.Geocoder, error) {
	var g domain.Geocoder
	switch cfg.GeocoderProvider {
	case config.GeocoderNominatim:
		g = nominatim.NewClient(client, cfg.GeocoderURL, cfg.NominatimUserAgent, logger)
	case config.GeocoderMapbox:
		g = mapbox.NewClient(client, cfg.GeocoderURL, cfg.MapboxToken, logger)
	default:
		return nil, fmt.Errorf("unknown geocoder provider %q", cfg.GeocoderProvider)
	}

	if cfg.GeocodeCacheTTL > 0 {
		logger.Info("geocode cache enabled", "ttl", cfg.GeocodeCacheTTL)
		g = geocache.New(g, cfg.GeocodeCacheTTL, metrics)
	}
	return g, nil
}

// CheckReadiness fails while the archive circuit breaker is open.
func (a *App) CheckReadiness(ctx context.Context) error {
	return a.archive.CheckReadiness(ctx)
}

// Close flushes the publisher, if any.
func (a *App) Close() error {
	if a.writer == nil {
		return nil
	}
	return a.writer.Close()
}
