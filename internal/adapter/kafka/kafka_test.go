package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-odds/internal/config"
	"github.com/couchcryptid/weather-odds/internal/domain"
	"github.com/couchcryptid/weather-odds/internal/outlook"
)

func tokyoAssessment(now time.Time) outlook.Assessment {
	return outlook.Assessment{
		Location:   domain.Location{Latitude: 35.6762, Longitude: 139.6503, DisplayName: "Tokyo, Japan"},
		Month:      8,
		Day:        3,
		Years:      10,
		Window:     domain.Window{StartYear: 2016, EndYear: 2025},
		Report:     domain.ProbabilityReport{VeryHotPct: 40, VeryWetPct: 20, Dominant: domain.ConditionHot},
		Summary:    domain.Summary{SampleCount: 10, FirstYear: 2016, LastYear: 2025},
		Advice:     domain.Advise(domain.ConditionHot),
		AssessedAt: now,
	}
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 10, 0, 0, time.UTC)
	a := tokyoAssessment(now)

	msg, err := serializeToMessage(a)
	require.NoError(t, err)

	assert.Equal(t, []byte("35.6762,139.6503|08-03"), msg.Key)
	assert.Contains(t, string(msg.Value), `"dominant":"HOT"`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "dominant", msg.Headers[0].Key)
	assert.Equal(t, []byte("HOT"), msg.Headers[0].Value)
	assert.Equal(t, "assessed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var back outlook.Assessment
	require.NoError(t, json.Unmarshal(msg.Value, &back))
	assert.Equal(t, a.Location, back.Location)
	assert.Equal(t, a.Report, back.Report)
	assert.Equal(t, a.Window, back.Window)
}

func TestMessageKey_RoundsCoordinates(t *testing.T) {
	a := outlook.Assessment{
		Location: domain.Location{Latitude: -1.286389123, Longitude: 36.817223999},
		Month:    12,
		Day:      1,
	}
	assert.Equal(t, "-1.2864,36.8172|12-01", messageKey(a))
}

func TestWriter_PublishDoesNotBlockWithoutBroker(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaTopic: "weather-outlooks"}
	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	require.NoError(t, w.Publish(ctx, tokyoAssessment(time.Now())))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
