package domain

import "math"

// Summary describes the raw sample values behind a report. Every statistic
// covers only the samples where its metric is present; a metric with no
// values at all is reported as nil.
type Summary struct {
	SampleCount  int      `json:"sample_count"`
	FirstYear    int      `json:"first_year,omitempty"`
	LastYear     int      `json:"last_year,omitempty"`
	MeanTempC    *float64 `json:"mean_temp_c,omitempty"`
	MinTempC     *float64 `json:"min_temp_c,omitempty"`
	MaxTempC     *float64 `json:"max_temp_c,omitempty"`
	MeanWindMS   *float64 `json:"mean_wind_ms,omitempty"`
	MaxWindMS    *float64 `json:"max_wind_ms,omitempty"`
	MeanPrecipMM *float64 `json:"mean_precip_mm,omitempty"`
	MaxPrecipMM  *float64 `json:"max_precip_mm,omitempty"`
}

// Summarize computes descriptive statistics over samples, rounded to one decimal.
func Summarize(samples SampleSet) Summary {
	s := Summary{SampleCount: len(samples)}
	if len(samples) == 0 {
		return s
	}
	s.FirstYear = samples[0].Year
	s.LastYear = samples[len(samples)-1].Year

	var temp, wind, precip series
	for _, x := range samples {
		temp.add(x.MeanTempC)
		wind.add(x.WindSpeedMS)
		precip.add(x.PrecipMM)
	}

	s.MeanTempC, s.MinTempC, s.MaxTempC = temp.mean(), temp.lo(), temp.hi()
	s.MeanWindMS, s.MaxWindMS = wind.mean(), wind.hi()
	s.MeanPrecipMM, s.MaxPrecipMM = precip.mean(), precip.hi()
	return s
}

type series struct {
	n             int
	sum, min, max float64
}

func (s *series) add(v *float64) {
	if v == nil {
		return
	}
	if s.n == 0 {
		s.min, s.max = *v, *v
	}
	s.n++
	s.sum += *v
	s.min = math.Min(s.min, *v)
	s.max = math.Max(s.max, *v)
}

func (s series) mean() *float64 {
	if s.n == 0 {
		return nil
	}
	return Value(round1(s.sum / float64(s.n)))
}

func (s series) lo() *float64 {
	if s.n == 0 {
		return nil
	}
	return Value(round1(s.min))
}

func (s series) hi() *float64 {
	if s.n == 0 {
		return nil
	}
	return Value(round1(s.max))
}
