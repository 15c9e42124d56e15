package domain

// Default threshold values.
const (
	DefaultHotC   = 30.0
	DefaultColdC  = 10.0
	DefaultWindMS = 10.0
	DefaultRainMM = 10.0
)

// Thresholds are the cut-offs for the four extreme conditions. Each field is
// independent; overriding one never changes how the others are applied.
type Thresholds struct {
	HotC   float64 `json:"hot_c"`
	ColdC  float64 `json:"cold_c"`
	WindMS float64 `json:"wind_ms"`
	RainMM float64 `json:"rain_mm"`
}

// DefaultThresholds returns HOT 30°C, COLD 10°C, WINDY 10 m/s, WET 10 mm.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HotC:   DefaultHotC,
		ColdC:  DefaultColdC,
		WindMS: DefaultWindMS,
		RainMM: DefaultRainMM,
	}
}
