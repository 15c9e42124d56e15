package mapbox

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

// DefaultBaseURL is the Mapbox forward geocoding endpoint.
const DefaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// Client implements domain.Geocoder using the Mapbox Geocoding API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	limit      int
	logger     *slog.Logger
}

// NewClient creates a Mapbox geocoding client. An empty baseURL selects
// DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL, token string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		token:      token,
		httpClient: httpClient,
		baseURL:    baseURL,
		limit:      3,
		logger:     logger,
	}
}

// Search converts a free-text place name to candidate coordinates.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Location, error) {
	u := fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(query))
	params := url.Values{
		"access_token": {c.token},
		"limit":        {strconv.Itoa(c.limit)},
		"types":        {"place,locality,region,country"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mapbox search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &httpclient.StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var mapboxResp response
	if err := json.NewDecoder(resp.Body).Decode(&mapboxResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := make([]domain.Location, 0, len(mapboxResp.Features))
	for _, f := range mapboxResp.Features {
		if len(f.Center) != 2 {
			c.logger.Debug("dropping mapbox feature without center", "query", query, "place_name", f.PlaceName)
			continue
		}
		out = append(out, domain.Location{
			Latitude:    f.Center[1],
			Longitude:   f.Center[0],
			DisplayName: f.PlaceName,
		})
	}
	return out, nil
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Center    []float64 `json:"center"` // [lon, lat]
	PlaceName string    `json:"place_name"`
	Text      string    `json:"text"`
	Relevance float64   `json:"relevance"`
}
