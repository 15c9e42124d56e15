package domain

import (
	"fmt"
	"math"
)

// Condition is the dominant prediction for a day.
type Condition string

const (
	ConditionHot         Condition = "HOT"
	ConditionCold        Condition = "COLD"
	ConditionWindy       Condition = "WINDY"
	ConditionWet         Condition = "WET"
	ConditionComfortable Condition = "COMFORTABLE"
)

// Conditions lists every Condition. The first four are in tie-break priority order.
var Conditions = []Condition{ConditionHot, ConditionCold, ConditionWindy, ConditionWet, ConditionComfortable}

// ProbabilityReport holds exceedance percentages in [0,100], rounded to one
// decimal place, and the dominant condition.
type ProbabilityReport struct {
	VeryHotPct   float64   `json:"very_hot_pct"`
	VeryColdPct  float64   `json:"very_cold_pct"`
	VeryWindyPct float64   `json:"very_windy_pct"`
	VeryWetPct   float64   `json:"very_wet_pct"`
	Dominant     Condition `json:"dominant"`
}

// Evaluate computes per-condition exceedance percentages over samples.
// Each metric's denominator counts only the samples where that metric is
// present. It fails with ErrInsufficientData when samples is empty.
func Evaluate(samples SampleSet, t Thresholds) (ProbabilityReport, error) {
	if len(samples) == 0 {
		return ProbabilityReport{}, fmt.Errorf("evaluate: no samples: %w", ErrInsufficientData)
	}

	var hot, cold, windy, wet exceedance
	for _, s := range samples {
		if s.MeanTempC != nil {
			hot.observe(*s.MeanTempC > t.HotC)
			cold.observe(*s.MeanTempC < t.ColdC)
		}
		if s.WindSpeedMS != nil {
			windy.observe(*s.WindSpeedMS > t.WindMS)
		}
		if s.PrecipMM != nil {
			wet.observe(*s.PrecipMM > t.RainMM)
		}
	}

	pcts := [4]float64{hot.pct(), cold.pct(), windy.pct(), wet.pct()}

	return ProbabilityReport{
		VeryHotPct:   round1(pcts[0]),
		VeryColdPct:  round1(pcts[1]),
		VeryWindyPct: round1(pcts[2]),
		VeryWetPct:   round1(pcts[3]),
		Dominant:     dominant(pcts),
	}, nil
}

// dominant picks the highest percentage. All zero is COMFORTABLE and is
// checked before the HOT > COLD > WINDY > WET tie-break.
func dominant(pcts [4]float64) Condition {
	best := -1
	for i, p := range pcts {
		if p > 0 && (best < 0 || p > pcts[best]) {
			best = i
		}
	}
	if best < 0 {
		return ConditionComfortable
	}
	return Conditions[best]
}

type exceedance struct {
	hits, total int
}

func (e *exceedance) observe(hit bool) {
	e.total++
	if hit {
		e.hits++
	}
}

func (e exceedance) pct() float64 {
	if e.total == 0 {
		return 0
	}
	return 100 * float64(e.hits) / float64(e.total)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
