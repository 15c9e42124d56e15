package outlook

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/weather-odds/internal/domain"
	"github.com/couchcryptid/weather-odds/internal/observability"
)

type mockGeocoder struct {
	results []domain.Location
	err     error
	calls   int
	queries []string
}

func (m *mockGeocoder) Search(_ context.Context, query string) ([]domain.Location, error) {
	m.calls++
	m.queries = append(m.queries, query)
	return m.results, m.err
}

type archiveCall struct {
	loc        domain.Location
	start, end time.Time
}

type mockArchive struct {
	records []domain.DailyRecord
	err     error
	calls   []archiveCall
}

func (m *mockArchive) DailyRange(_ context.Context, loc domain.Location, start, end time.Time) ([]domain.DailyRecord, error) {
	m.calls = append(m.calls, archiveCall{loc: loc, start: start, end: end})
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.DailyRecord
	for _, r := range m.records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type mockPublisher struct {
	mu        sync.Mutex
	published []Assessment
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, a Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, a)
	return m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

// dailyHistory builds one record per year for month/day with the given values.
func dailyHistory(month time.Month, day int, years map[int][3]float64) []domain.DailyRecord {
	records := make([]domain.DailyRecord, 0, len(years))
	for y, v := range years {
		records = append(records, domain.DailyRecord{
			Date:        time.Date(y, month, day, 0, 0, 0, 0, time.UTC),
			MeanTempC:   domain.Value(v[0]),
			WindSpeedMS: domain.Value(v[1]),
			PrecipMM:    domain.Value(v[2]),
		})
	}
	return records
}
