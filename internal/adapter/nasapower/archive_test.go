package nasapower

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-odds/internal/domain"
)

type stubGetter struct {
	body []byte
	err  error
	urls []string
}

func (s *stubGetter) Get(_ context.Context, u string) ([]byte, error) {
	s.urls = append(s.urls, u)
	return s.body, s.err
}

var yaounde = domain.Location{Latitude: 3.848, Longitude: 11.5021, DisplayName: "Yaoundé, Cameroon"}

const sampleResponse = `{
	"type": "Feature",
	"header": {"title": "NASA/POWER", "fill_value": -999.0},
	"properties": {
		"parameter": {
			"T2M":         {"20230301": 24.6, "20240301": -999.0, "20250301": 25.9},
			"WS10M":       {"20230301": 1.9,  "20240301": 2.4,    "20250301": 2.1},
			"PRECTOTCORR": {"20230301": 3.2,  "20240301": 0.0}
		}
	}
}`

func TestArchive_DailyRange(t *testing.T) {
	getter := &stubGetter{body: []byte(sampleResponse)}
	a := NewArchive(getter, "https://power.test/daily")

	start := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	got, err := a.DailyRange(context.Background(), yaounde, start, end)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Len(t, getter.urls, 1)
	assert.Contains(t, getter.urls[0], "start=20230301")
	assert.Contains(t, getter.urls[0], "end=20250301")
	assert.Contains(t, getter.urls[0], "parameters=T2M%2CWS10M%2CPRECTOTCORR")
	assert.Contains(t, getter.urls[0], "latitude=3.8480")

	assert.Equal(t, start, got[0].Date)
	assert.Equal(t, 24.6, *got[0].MeanTempC)
	assert.Equal(t, 3.2, *got[0].PrecipMM)

	assert.Nil(t, got[1].MeanTempC, "fill value is missing")
	assert.Equal(t, 0.0, *got[1].PrecipMM, "zero rain is a real observation")

	assert.Nil(t, got[2].PrecipMM, "absent key is missing")
	assert.Equal(t, 25.9, *got[2].MeanTempC)
}

func TestArchive_CustomFillValue(t *testing.T) {
	body := `{"header":{"fill_value":-99},"properties":{"parameter":{"T2M":{"20200101":-99,"20200102":-999}}}}`
	a := NewArchive(&stubGetter{body: []byte(body)}, "")

	got, err := a.DailyRange(context.Background(), yaounde, time.Now(), time.Now())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].MeanTempC)
	assert.Equal(t, -999.0, *got[1].MeanTempC)
}

func TestArchive_UpstreamError(t *testing.T) {
	upstream := errors.New("502")
	a := NewArchive(&stubGetter{err: upstream}, "")

	_, err := a.DailyRange(context.Background(), yaounde, time.Now(), time.Now())
	require.ErrorIs(t, err, upstream)
}

func TestArchive_MissingParameterBlock(t *testing.T) {
	a := NewArchive(&stubGetter{body: []byte(`{"messages":["rate limited"]}`)}, "")

	_, err := a.DailyRange(context.Background(), yaounde, time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameter block")
}

func TestArchive_Decode(t *testing.T) {
	a := NewArchive(&stubGetter{body: []byte(`<!doctype html>`)}, "")

	_, err := a.DailyRange(context.Background(), yaounde, time.Now(), time.Now())
	require.Error(t, err)
}
