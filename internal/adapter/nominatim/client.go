// Package nominatim implements domain.Geocoder against the OpenStreetMap
// Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/couchcryptid/weather-odds/internal/adapter/httpclient"
	"github.com/couchcryptid/weather-odds/internal/domain"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim's usage policy requires an identifying User-Agent and caps
// clients at one request per second, so lookups are never retried here.

// Client implements domain.Geocoder using Nominatim.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limit      int
	logger     *slog.Logger
}

// NewClient creates a Nominatim client. httpClient should carry the outbound
// timeout; userAgent identifies the application to the operator.
func NewClient(httpClient *http.Client, baseURL, userAgent string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		limit:      1,
		logger:     logger,
	}
}

// Search returns Nominatim's candidates for query, best first.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Location, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {strconv.Itoa(c.limit)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &httpclient.StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}

	out := make([]domain.Location, 0, len(places))
	for _, p := range places {
		loc, err := p.location()
		if err != nil {
			c.logger.Debug("dropping unparseable nominatim place", "query", query, "error", err)
			continue
		}
		out = append(out, loc)
	}
	return out, nil
}

// Nominatim API response types. Coordinates arrive as decimal strings.

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (p place) location() (domain.Location, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("lon %q: %w", p.Lon, err)
	}
	return domain.Location{Latitude: lat, Longitude: lon, DisplayName: p.DisplayName}, nil
}
