package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarize(t *testing.T) {
	samples := SampleSet{
		sample(2020, 32, 5, 2),
		{Year: 2021, MeanTempC: Value(31), WindSpeedMS: Value(4)},
		sample(2022, 29, 12, 20),
	}

	want := Summary{
		SampleCount:  3,
		FirstYear:    2020,
		LastYear:     2022,
		MeanTempC:    Value(30.7),
		MinTempC:     Value(29),
		MaxTempC:     Value(32),
		MeanWindMS:   Value(7),
		MaxWindMS:    Value(12),
		MeanPrecipMM: Value(11),
		MaxPrecipMM:  Value(20),
	}

	if diff := cmp.Diff(want, Summarize(samples)); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if diff := cmp.Diff(Summary{}, Summarize(nil)); diff != "" {
		t.Errorf("Summarize(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_MissingMetric(t *testing.T) {
	got := Summarize(SampleSet{{Year: 2024, MeanTempC: Value(-3.25)}})
	if got.MaxPrecipMM != nil || got.MeanWindMS != nil {
		t.Fatalf("expected nil wind and precip stats, got %+v", got)
	}
	if *got.MinTempC != -3.3 {
		t.Errorf("MinTempC = %v, want -3.3", *got.MinTempC)
	}
}
