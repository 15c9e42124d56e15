// Package openmeteo implements domain.Archive against the Open-Meteo
// historical weather API.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-odds/internal/domain"
)

// DefaultBaseURL is the public Open-Meteo archive host.
const DefaultBaseURL = "https://archive-api.open-meteo.com/v1"

const dailyVariables = "temperature_2m_mean,wind_speed_10m_mean,precipitation_sum"

// Getter fetches a URL and returns the body of a successful response.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Archive implements domain.Archive using Open-Meteo's ERA5 reanalysis.
type Archive struct {
	getter  Getter
	baseURL string
}

// NewArchive creates an Open-Meteo archive client.
func NewArchive(getter Getter, baseURL string) *Archive {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Archive{getter: getter, baseURL: baseURL}
}

// DailyRange requests [start, end] in a single call. Null values come back as
// nil metrics.
func (a *Archive) DailyRange(ctx context.Context, loc domain.Location, start, end time.Time) ([]domain.DailyRecord, error) {
	params := url.Values{
		"latitude":        {strconv.FormatFloat(loc.Latitude, 'f', 4, 64)},
		"longitude":       {strconv.FormatFloat(loc.Longitude, 'f', 4, 64)},
		"start_date":      {start.Format(time.DateOnly)},
		"end_date":        {end.Format(time.DateOnly)},
		"daily":           {dailyVariables},
		"wind_speed_unit": {"ms"},
		"timezone":        {"UTC"},
	}

	body, err := a.getter.Get(ctx, a.baseURL+"/archive?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("open-meteo archive: %w", err)
	}

	var resp archiveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode open-meteo response: %w", err)
	}
	if resp.Error {
		return nil, fmt.Errorf("open-meteo archive: %s", resp.Reason)
	}
	if resp.Daily == nil || resp.Daily.Time == nil {
		return nil, errors.New("open-meteo response has no daily series")
	}
	return resp.Daily.records()
}

// Open-Meteo API response types. Daily values are parallel arrays indexed by
// the time array.

type archiveResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
	Daily  *daily `json:"daily"`
}

type daily struct {
	Time      []string   `json:"time"`
	TempMean  []*float64 `json:"temperature_2m_mean"`
	WindMean  []*float64 `json:"wind_speed_10m_mean"`
	PrecipSum []*float64 `json:"precipitation_sum"`
}

func (d daily) records() ([]domain.DailyRecord, error) {
	out := make([]domain.DailyRecord, 0, len(d.Time))
	for i, ts := range d.Time {
		date, err := time.Parse(time.DateOnly, ts)
		if err != nil {
			return nil, fmt.Errorf("open-meteo date %q: %w", ts, err)
		}
		out = append(out, domain.DailyRecord{
			Date:        date,
			MeanTempC:   at(d.TempMean, i),
			WindSpeedMS: at(d.WindMean, i),
			PrecipMM:    at(d.PrecipSum, i),
		})
	}
	return out, nil
}

// at tolerates arrays shorter than the time axis.
func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
