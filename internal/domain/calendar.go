package domain

import (
	"fmt"
	"time"
)

// leapYear is used to validate month/day pairs so that February 29 is accepted.
const leapYear = 2000

// ValidateDate rejects month/day pairs that never occur on the calendar.
func ValidateDate(month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d: %w", month, ErrInvalidDate)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("day %d: %w", day, ErrInvalidDate)
	}
	t := time.Date(leapYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return fmt.Errorf("%s has no day %d: %w", time.Month(month), day, ErrInvalidDate)
	}
	return nil
}

// Window is the inclusive range of years sampled for one calendar day.
type Window struct {
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`
}

// Years returns the number of years in the window.
func (w Window) Years() int {
	return w.EndYear - w.StartYear + 1
}

// SampleWindow returns the `years` most recent years in which month/day has
// already completed relative to now. The current day counts as not completed,
// so the window never reaches today or any future date.
func SampleWindow(now time.Time, month, day, years int) Window {
	end := now.Year()
	if !occurredBefore(now, month, day) {
		end--
	}
	return Window{StartYear: end - years + 1, EndYear: end}
}

func occurredBefore(now time.Time, month, day int) bool {
	if time.Month(month) != now.Month() {
		return time.Month(month) < now.Month()
	}
	return day < now.Day()
}

// DateRange returns the first and last calendar dates that bracket month/day
// across the window. February 29 falls back to February 28 in non-leap years,
// which never moves the range past the target day.
func (w Window) DateRange(month, day int) (start, end time.Time) {
	return calendarDate(w.StartYear, month, day), calendarDate(w.EndYear, month, day)
}

func calendarDate(year, month, day int) time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) {
		// Only Feb 29 in a non-leap year normalises into March.
		t = time.Date(year, time.Month(month), day-1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

// ExtractSamples picks the records whose month and day match the target and
// whose year falls inside the window, one per year in ascending order.
// Records without any metric are treated as missing years.
func ExtractSamples(records []DailyRecord, w Window, month, day int) SampleSet {
	byYear := make(map[int]DailyRecord, w.Years())
	for _, r := range records {
		y := r.Date.Year()
		if int(r.Date.Month()) != month || r.Date.Day() != day {
			continue
		}
		if y < w.StartYear || y > w.EndYear || r.Empty() {
			continue
		}
		byYear[y] = r
	}

	samples := make(SampleSet, 0, len(byYear))
	for y := w.StartYear; y <= w.EndYear; y++ {
		r, ok := byYear[y]
		if !ok {
			continue
		}
		samples = append(samples, DailySample{
			Year:        y,
			MeanTempC:   r.MeanTempC,
			WindSpeedMS: r.WindSpeedMS,
			PrecipMM:    r.PrecipMM,
		})
	}
	return samples
}
