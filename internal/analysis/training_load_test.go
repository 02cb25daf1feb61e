package analysis

import (
	"math"
	"testing"
)

func TestTRIMP(t *testing.T) {
	params := DefaultParams()

	tests := []struct {
		name     string
		record   WorkoutRecord
		params   Params
		expected float64
		delta    float64
	}{
		{
			name:   "60 min at 150 bpm",
			record: run(day(2024, 1, 1), 10, 60, 150),
			params: params,
			// hrr = (150-60)/(190-60) = 0.6923
			// TRIMP = 60 * 0.6923 * 0.64 * e^(1.92*0.6923)
			expected: 100.4,
			delta:    0.5,
		},
		{
			name:     "no heart rate",
			record:   run(day(2024, 1, 1), 10, 60, 0),
			params:   params,
			expected: 0,
		},
		{
			name:     "no duration",
			record:   run(day(2024, 1, 1), 10, 0, 150),
			params:   params,
			expected: 0,
		},
		{
			name:     "resting HR above max",
			record:   run(day(2024, 1, 1), 10, 60, 150),
			params:   Params{MaxHR: 150, RestingHR: 160},
			expected: 0,
		},
		{
			name:   "rides count too",
			record: ride(day(2024, 1, 1), 40, 90, 130),
			params: params,
			// hrr = 70/130 = 0.5385
			expected: 90 * 0.5385 * 0.64 * math.Exp(1.92*0.5385),
			delta:    0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TRIMP(tt.record, tt.params)
			if math.Abs(got-tt.expected) > tt.delta {
				t.Errorf("TRIMP() = %v, want %v (±%v)", got, tt.expected, tt.delta)
			}
		})
	}
}

func TestBuildDailyLoads(t *testing.T) {
	params := DefaultParams()
	records := []WorkoutRecord{
		run(day(2024, 1, 1), 10, 60, 150),
		run(day(2024, 1, 1), 5, 30, 150),
		run(day(2024, 1, 4), 10, 60, 150),
		run(day(2024, 1, 20), 10, 60, 150), // after asOf
	}

	loads := BuildDailyLoads(records, day(2024, 1, 5), params)
	if len(loads) != 5 {
		t.Fatalf("len(loads) = %d, want 5", len(loads))
	}

	single := TRIMP(records[0], params)
	if math.Abs(loads[0].TRIMP-1.5*single) > 1e-9 {
		t.Errorf("loads[0].TRIMP = %v, want %v", loads[0].TRIMP, 1.5*single)
	}
	for _, i := range []int{1, 2, 4} {
		if loads[i].TRIMP != 0 {
			t.Errorf("loads[%d].TRIMP = %v, want 0", i, loads[i].TRIMP)
		}
	}
	if !loads[3].Date.Equal(day(2024, 1, 4)) {
		t.Errorf("loads[3].Date = %v, want 2024-01-04", loads[3].Date)
	}
}

func TestBuildDailyLoads_OversizedSpan(t *testing.T) {
	records := []WorkoutRecord{run(day(1900, 1, 1), 10, 60, 150)}
	if loads := BuildDailyLoads(records, day(2024, 1, 1), DefaultParams()); loads != nil {
		t.Errorf("len(loads) = %d, want nil", len(loads))
	}
}

func TestCalculateFitnessTrend(t *testing.T) {
	params := DefaultParams()
	loads := []DailyLoad{
		{Date: day(2024, 1, 1), TRIMP: 100},
		{Date: day(2024, 1, 2), TRIMP: 0},
		{Date: day(2024, 1, 3), TRIMP: 50},
	}

	metrics := CalculateFitnessTrend(loads, params)
	if len(metrics) != 3 {
		t.Fatalf("len(metrics) = %d, want 3", len(metrics))
	}

	// Day 1: ctl = 100/42, atl = 100/7
	if math.Abs(metrics[0].CTL-100.0/42) > 1e-9 {
		t.Errorf("day 1 CTL = %v, want %v", metrics[0].CTL, 100.0/42)
	}
	if math.Abs(metrics[0].ATL-100.0/7) > 1e-9 {
		t.Errorf("day 1 ATL = %v, want %v", metrics[0].ATL, 100.0/7)
	}

	for i, m := range metrics {
		if m.TSB != m.CTL-m.ATL {
			t.Errorf("day %d TSB = %v, want CTL-ATL = %v", i+1, m.TSB, m.CTL-m.ATL)
		}
	}

	if CalculateFitnessTrend(nil, params) != nil {
		t.Error("CalculateFitnessTrend(nil) should be nil")
	}
}

func TestCalculateFitnessTrend_ConstantLoadConverges(t *testing.T) {
	params := DefaultParams()
	const k = 80.0
	loads := make([]DailyLoad, 300)
	for i := range loads {
		loads[i] = DailyLoad{Date: day(2024, 1, 1).AddDate(0, 0, i), TRIMP: k}
	}

	metrics := CalculateFitnessTrend(loads, params)
	last := metrics[len(metrics)-1]
	if math.Abs(last.CTL-k) >= 0.01*k {
		t.Errorf("CTL = %v, want within 1%% of %v", last.CTL, k)
	}
	if math.Abs(last.ATL-k) >= 0.01*k {
		t.Errorf("ATL = %v, want within 1%% of %v", last.ATL, k)
	}
}

func TestCalculateTrainingLoad(t *testing.T) {
	params := DefaultParams()

	if got := CalculateTrainingLoad([]WorkoutRecord{run(day(2024, 1, 1), 10, 60, 150)}, day(2024, 1, 1), params); got != nil {
		t.Errorf("CalculateTrainingLoad() with one record = %+v, want nil", got)
	}

	// Two weeks of daily hard training ends fatigued
	var records []WorkoutRecord
	for i := 0; i < 14; i++ {
		records = append(records, run(day(2024, 1, 1).AddDate(0, 0, i), 15, 90, 165))
	}
	load := CalculateTrainingLoad(records, day(2024, 1, 14), params)
	if load == nil {
		t.Fatal("CalculateTrainingLoad() = nil")
	}
	if len(load.Series) != 14 {
		t.Errorf("len(Series) = %d, want 14", len(load.Series))
	}
	if load.CurrentTSB >= 0 {
		t.Errorf("CurrentTSB = %v, want negative", load.CurrentTSB)
	}
	if load.Status != ClassifyForm(load.CurrentTSB) {
		t.Errorf("Status = %v, want %v", load.Status, ClassifyForm(load.CurrentTSB))
	}
	if load.RaceReady {
		t.Error("RaceReady = true, want false")
	}

	// Tapering for three weeks turns balance positive
	taper := CalculateTrainingLoad(records, day(2024, 2, 4), params)
	if taper.CurrentTSB <= 0 {
		t.Errorf("tapered CurrentTSB = %v, want positive", taper.CurrentTSB)
	}
	if math.Abs(taper.CurrentTSB-(taper.CurrentFitness-taper.CurrentFatigue)) > 0.11 {
		t.Errorf("CurrentTSB = %v, inconsistent with %v - %v", taper.CurrentTSB, taper.CurrentFitness, taper.CurrentFatigue)
	}
}

func TestClassifyForm(t *testing.T) {
	tests := []struct {
		tsb  float64
		want FormStatus
	}{
		{25, FormFresh},
		{10.1, FormFresh},
		{10, FormRecovered},
		{0.1, FormRecovered},
		{0, FormMildFatigue},
		{-9.9, FormMildFatigue},
		{-10, FormFatigued},
		{-19.9, FormFatigued},
		{-20, FormOverreached},
		{-45, FormOverreached},
	}

	for _, tt := range tests {
		if got := ClassifyForm(tt.tsb); got != tt.want {
			t.Errorf("ClassifyForm(%v) = %v, want %v", tt.tsb, got, tt.want)
		}
	}
}

func TestFormDescription(t *testing.T) {
	statuses := []FormStatus{FormFresh, FormRecovered, FormMildFatigue, FormFatigued, FormOverreached}
	seen := map[string]bool{}
	for _, s := range statuses {
		desc := FormDescription(s)
		if desc == "" {
			t.Errorf("FormDescription(%v) is empty", s)
		}
		if seen[desc] {
			t.Errorf("FormDescription(%v) = %q is not unique", s, desc)
		}
		seen[desc] = true
	}
}
