// Package nasapower implements domain.Archive against the NASA POWER daily
// point API.
package nasapower

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-odds/internal/domain"
)

// DefaultBaseURL is the NASA POWER daily point endpoint.
const DefaultBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

// fillValue marks a missing observation in POWER responses.
const fillValue = -999.0

const (
	paramTemp   = "T2M"
	paramWind   = "WS10M"
	paramPrecip = "PRECTOTCORR"
	dateLayout  = "20060102"
)

// Getter fetches a URL and returns the body of a successful response.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Archive implements domain.Archive using NASA POWER (MERRA-2 based).
type Archive struct {
	getter  Getter
	baseURL string
}

// NewArchive creates a NASA POWER archive client.
func NewArchive(getter Getter, baseURL string) *Archive {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Archive{getter: getter, baseURL: baseURL}
}

// DailyRange requests [start, end] in a single call. The -999 fill value and
// absent keys both become nil metrics.
func (a *Archive) DailyRange(ctx context.Context, loc domain.Location, start, end time.Time) ([]domain.DailyRecord, error) {
	params := url.Values{
		"parameters": {paramTemp + "," + paramWind + "," + paramPrecip},
		"community":  {"RE"},
		"latitude":   {strconv.FormatFloat(loc.Latitude, 'f', 4, 64)},
		"longitude":  {strconv.FormatFloat(loc.Longitude, 'f', 4, 64)},
		"start":      {start.Format(dateLayout)},
		"end":        {end.Format(dateLayout)},
		"format":     {"JSON"},
	}

	body, err := a.getter.Get(ctx, a.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("nasa power: %w", err)
	}

	var resp pointResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode nasa power response: %w", err)
	}
	if resp.Properties.Parameter == nil {
		return nil, fmt.Errorf("nasa power: response has no parameter block")
	}
	return resp.records()
}

// NASA POWER API response types. Each parameter maps YYYYMMDD to a value.

type pointResponse struct {
	Header struct {
		FillValue *float64 `json:"fill_value"`
	} `json:"header"`
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

func (r pointResponse) records() ([]domain.DailyRecord, error) {
	fill := fillValue
	if r.Header.FillValue != nil {
		fill = *r.Header.FillValue
	}
	params := r.Properties.Parameter

	days := make(map[string]struct{})
	for _, series := range params {
		for k := range series {
			days[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]domain.DailyRecord, 0, len(keys))
	for _, k := range keys {
		date, err := time.Parse(dateLayout, k)
		if err != nil {
			return nil, fmt.Errorf("nasa power date %q: %w", k, err)
		}
		out = append(out, domain.DailyRecord{
			Date:        date,
			MeanTempC:   value(params[paramTemp], k, fill),
			WindSpeedMS: value(params[paramWind], k, fill),
			PrecipMM:    value(params[paramPrecip], k, fill),
		})
	}
	return out, nil
}

func value(series map[string]float64, key string, fill float64) *float64 {
	v, ok := series[key]
	if !ok || v == fill {
		return nil
	}
	return &v
}
