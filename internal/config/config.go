package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/couchcryptid/weather-odds/internal/domain"
)

// Provider names accepted by ARCHIVE_PROVIDER and GEOCODER_PROVIDER.
const (
	ArchiveOpenMeteo  = "openmeteo"
	ArchiveNASAPower  = "nasapower"
	GeocoderNominatim = "nominatim"
	GeocoderMapbox    = "mapbox"
)

// Config holds all service settings, populated from environment variables.
// It is loaded once at startup and never mutated afterwards.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DefaultYears    int
	MaxYears        int
	OutboundTimeout time.Duration
	Thresholds      domain.Thresholds

	ArchiveProvider string
	ArchiveURL      string
	ArchiveRetries  int

	GeocoderProvider       string
	GeocoderURL            string
	NominatimUserAgent     string
	MapboxToken            string
	GeocodeCacheTTL        time.Duration
	GeocodeFallbackOnError bool
	FallbackCitiesFile     string

	// Assessment publishing; disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	outboundTimeout, err := parseDuration("OUTBOUND_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	if outboundTimeout < time.Second || outboundTimeout > time.Minute {
		return nil, errors.New("OUTBOUND_TIMEOUT must be between 1s and 60s")
	}

	cacheTTL, err := parseDuration("GEOCODE_CACHE_TTL", "0s")
	if err != nil {
		return nil, err
	}
	if cacheTTL < 0 {
		return nil, errors.New("invalid GEOCODE_CACHE_TTL")
	}

	defaultYears, err := parseInt("DEFAULT_YEARS", 10)
	if err != nil {
		return nil, err
	}
	maxYears, err := parseInt("MAX_YEARS", 40)
	if err != nil {
		return nil, err
	}
	retries, err := parseInt("ARCHIVE_RETRIES", 1)
	if err != nil {
		return nil, err
	}

	thresholds, err := parseThresholds()
	if err != nil {
		return nil, err
	}

	fallbackOnError, err := parseBool("GEOCODE_FALLBACK_ON_ERROR", false)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DefaultYears:    defaultYears,
		MaxYears:        maxYears,
		OutboundTimeout: outboundTimeout,
		Thresholds:      thresholds,

		ArchiveProvider: strings.ToLower(sharedcfg.EnvOrDefault("ARCHIVE_PROVIDER", ArchiveOpenMeteo)),
		ArchiveURL:      os.Getenv("ARCHIVE_URL"),
		ArchiveRetries:  retries,

		GeocoderProvider:       strings.ToLower(sharedcfg.EnvOrDefault("GEOCODER_PROVIDER", GeocoderNominatim)),
		GeocoderURL:            os.Getenv("GEOCODER_URL"),
		NominatimUserAgent:     sharedcfg.EnvOrDefault("NOMINATIM_USER_AGENT", "weather-odds/1.0"),
		MapboxToken:            os.Getenv("MAPBOX_TOKEN"),
		GeocodeCacheTTL:        cacheTTL,
		GeocodeFallbackOnError: fallbackOnError,
		FallbackCitiesFile:     os.Getenv("FALLBACK_CITIES_FILE"),

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "weather-outlooks"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PublishEnabled reports whether completed assessments are published to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c *Config) validate() error {
	if c.MaxYears < 1 || c.MaxYears > 80 {
		return errors.New("MAX_YEARS must be between 1 and 80")
	}
	if c.DefaultYears < 1 || c.DefaultYears > c.MaxYears {
		return fmt.Errorf("DEFAULT_YEARS must be between 1 and MAX_YEARS (%d)", c.MaxYears)
	}
	if c.ArchiveRetries < 0 || c.ArchiveRetries > 1 {
		return errors.New("ARCHIVE_RETRIES must be 0 or 1")
	}
	switch c.ArchiveProvider {
	case ArchiveOpenMeteo, ArchiveNASAPower:
	default:
		return fmt.Errorf("unknown ARCHIVE_PROVIDER %q", c.ArchiveProvider)
	}
	switch c.GeocoderProvider {
	case GeocoderNominatim:
		if c.NominatimUserAgent == "" {
			return errors.New("NOMINATIM_USER_AGENT is required")
		}
	case GeocoderMapbox:
		if c.MapboxToken == "" {
			return errors.New("GEOCODER_PROVIDER is mapbox but MAPBOX_TOKEN is not set")
		}
	default:
		return fmt.Errorf("unknown GEOCODER_PROVIDER %q", c.GeocoderProvider)
	}
	if c.PublishEnabled() && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

func parseThresholds() (domain.Thresholds, error) {
	t := domain.DefaultThresholds()
	fields := []struct {
		key string
		dst *float64
	}{
		{"HOT_THRESHOLD_C", &t.HotC},
		{"COLD_THRESHOLD_C", &t.ColdC},
		{"WIND_THRESHOLD_MS", &t.WindMS},
		{"RAIN_THRESHOLD_MM", &t.RainMM},
	}
	for _, f := range fields {
		s := os.Getenv(f.key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return domain.Thresholds{}, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = v
	}
	if t.WindMS < 0 || t.RainMM < 0 {
		return domain.Thresholds{}, errors.New("WIND_THRESHOLD_MS and RAIN_THRESHOLD_MM must not be negative")
	}
	return t, nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
