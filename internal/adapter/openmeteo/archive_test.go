package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-odds/internal/adapter/httpclient"
	"github.com/couchcryptid/weather-odds/internal/domain"
)

var douala = domain.Location{Latitude: 4.0511, Longitude: 9.7679, DisplayName: "Douala, Cameroon"}

func testArchive(t *testing.T, baseURL string) *Archive {
	t.Helper()
	s := httpclient.DefaultSettings("openmeteo")
	s.RetryDelay = time.Millisecond
	getter := httpclient.NewResilient(httpclient.NewPooled(5*time.Second), s, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewArchive(getter, baseURL)
}

func TestArchive_DailyRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/archive", r.URL.Path)
		assert.Equal(t, "4.0511", q.Get("latitude"))
		assert.Equal(t, "9.7679", q.Get("longitude"))
		assert.Equal(t, "2016-07-14", q.Get("start_date"))
		assert.Equal(t, "2025-07-14", q.Get("end_date"))
		assert.Equal(t, dailyVariables, q.Get("daily"))
		assert.Equal(t, "ms", q.Get("wind_speed_unit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"latitude": 4.05, "longitude": 9.77,
			"daily_units": {"time": "iso8601", "temperature_2m_mean": "°C"},
			"daily": {
				"time": ["2016-07-14", "2016-07-15", "2017-07-14"],
				"temperature_2m_mean": [25.1, 25.3, null],
				"wind_speed_10m_mean": [4.2, 3.9, 5.0],
				"precipitation_sum": [12.4, 0.0, null]
			}
		}`))
	}))
	defer srv.Close()

	start := time.Date(2016, time.July, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC)

	got, err := testArchive(t, srv.URL).DailyRange(context.Background(), douala, start, end)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, start, got[0].Date)
	assert.Equal(t, 25.1, *got[0].MeanTempC)
	assert.Equal(t, 4.2, *got[0].WindSpeedMS)
	assert.Equal(t, 12.4, *got[0].PrecipMM)

	assert.Nil(t, got[2].MeanTempC)
	assert.Equal(t, 5.0, *got[2].WindSpeedMS)
	assert.Nil(t, got[2].PrecipMM)
}

func TestArchive_ShortArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["2020-01-01","2020-01-02"],"temperature_2m_mean":[1.5]}}`))
	}))
	defer srv.Close()

	got, err := testArchive(t, srv.URL).DailyRange(context.Background(), douala, time.Now(), time.Now())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[1].MeanTempC)
	assert.True(t, got[1].Empty())
}

func TestArchive_UpstreamReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Parameter 'start_date' is out of allowed range"}`))
	}))
	defer srv.Close()

	_, err := testArchive(t, srv.URL).DailyRange(context.Background(), douala, time.Now(), time.Now())
	var serr *httpclient.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.Code)
}

func TestArchive_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := testArchive(t, srv.URL).DailyRange(context.Background(), douala, time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestArchive_MissingDailyBlock(t *testing.T) {
	for _, body := range []string{`{}`, `null`, `{"latitude":4.05}`, `{"daily":null}`, `{"daily":{}}`} {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := testArchive(t, srv.URL).DailyRange(context.Background(), douala, time.Now(), time.Now())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "no daily series")
		})
	}
}

func TestArchive_EmptySeriesIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":[],"temperature_2m_mean":[]}}`))
	}))
	defer srv.Close()

	got, err := testArchive(t, srv.URL).DailyRange(context.Background(), douala, time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestArchive_BadDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["14/07/2020"]}}`))
	}))
	defer srv.Close()

	_, err := testArchive(t, srv.URL).DailyRange(context.Background(), douala, time.Now(), time.Now())
	require.Error(t, err)
}
