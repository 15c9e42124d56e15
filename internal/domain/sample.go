package domain

import "time"

// DailyRecord is one day of an archive series. Nil metrics are gaps.
type DailyRecord struct {
	Date        time.Time
	MeanTempC   *float64
	WindSpeedMS *float64
	PrecipMM    *float64
}

// Empty reports whether the record carries no metric at all.
func (r DailyRecord) Empty() bool {
	return r.MeanTempC == nil && r.WindSpeedMS == nil && r.PrecipMM == nil
}

// DailySample is one historical observation of the target calendar day.
type DailySample struct {
	Year        int      `json:"year"`
	MeanTempC   *float64 `json:"mean_temp_c,omitempty"`
	WindSpeedMS *float64 `json:"wind_speed_ms,omitempty"`
	PrecipMM    *float64 `json:"precip_mm,omitempty"`
}

// SampleSet holds samples for one month/day ordered by ascending year.
// It never holds more entries than the requested number of years.
type SampleSet []DailySample

// Value returns a pointer to v, for building samples with present metrics.
func Value(v float64) *float64 {
	return &v
}
