package analysis

import (
	"math"
	"testing"
)

func TestLinearRegression(t *testing.T) {
	tests := []struct {
		name      string
		points    []DataPoint
		wantNil   bool
		slope     float64
		intercept float64
		r2        float64
		trend     Trend
	}{
		{
			name:    "no points",
			points:  nil,
			wantNil: true,
		},
		{
			name:    "single point",
			points:  []DataPoint{{X: 1, Y: 2}},
			wantNil: true,
		},
		{
			name:    "identical x values",
			points:  []DataPoint{{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 5}},
			wantNil: true,
		},
		{
			name:      "exact line",
			points:    []DataPoint{{X: 0, Y: 3}, {X: 1, Y: 5}, {X: 2, Y: 7}, {X: 5, Y: 13}},
			slope:     2,
			intercept: 3,
			r2:        1,
			trend:     TrendIncreasing,
		},
		{
			name:      "decreasing line",
			points:    []DataPoint{{X: 0, Y: 6}, {X: 7, Y: 5.3}, {X: 14, Y: 4.6}},
			slope:     -0.1,
			intercept: 6,
			r2:        1,
			trend:     TrendDecreasing,
		},
		{
			name:      "constant y has zero r2",
			points:    []DataPoint{{X: 0, Y: 150}, {X: 3, Y: 150}, {X: 9, Y: 150}},
			slope:     0,
			intercept: 150,
			r2:        0,
			trend:     TrendStable,
		},
		{
			name:      "slope inside epsilon is stable",
			points:    []DataPoint{{X: 0, Y: 5}, {X: 100, Y: 5.5}},
			slope:     0.005,
			intercept: 5,
			r2:        1,
			trend:     TrendStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearRegression(tt.points)
			if tt.wantNil {
				if got != nil {
					t.Errorf("LinearRegression() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("LinearRegression() = nil, want a fit")
			}
			if math.Abs(got.Slope-tt.slope) > 1e-9 {
				t.Errorf("Slope = %v, want %v", got.Slope, tt.slope)
			}
			if math.Abs(got.Intercept-tt.intercept) > 1e-9 {
				t.Errorf("Intercept = %v, want %v", got.Intercept, tt.intercept)
			}
			if math.Abs(got.R2-tt.r2) > 1e-9 {
				t.Errorf("R2 = %v, want %v", got.R2, tt.r2)
			}
			if math.Abs(got.WeeklyChange-tt.slope*7) > 1e-9 {
				t.Errorf("WeeklyChange = %v, want %v", got.WeeklyChange, tt.slope*7)
			}
			if got.Trend != tt.trend {
				t.Errorf("Trend = %v, want %v", got.Trend, tt.trend)
			}
		})
	}
}

func TestLinearRegression_R2Bounds(t *testing.T) {
	points := []DataPoint{{X: 0, Y: 5.1}, {X: 2, Y: 4.7}, {X: 5, Y: 5.4}, {X: 9, Y: 4.9}, {X: 12, Y: 5.0}}
	got := LinearRegression(points)
	if got == nil {
		t.Fatal("LinearRegression() = nil")
	}
	if got.R2 < 0 || got.R2 > 1 {
		t.Errorf("R2 = %v, want within [0, 1]", got.R2)
	}
	if got.Predict(0) != got.Intercept {
		t.Errorf("Predict(0) = %v, want %v", got.Predict(0), got.Intercept)
	}
}

func TestPaceTrend_MinimumPoints(t *testing.T) {
	records := []WorkoutRecord{
		run(day(2024, 1, 1), 10, 55, 150),
		run(day(2024, 1, 8), 10, 53, 150),
		ride(day(2024, 1, 10), 40, 90, 130),
	}
	if got := PaceTrend(records); got != nil {
		t.Errorf("PaceTrend() with 2 runs = %+v, want nil", got)
	}

	records = append(records, run(day(2024, 1, 15), 10, 51, 150))
	got := PaceTrend(records)
	if got == nil {
		t.Fatal("PaceTrend() with 3 runs = nil, want a trend")
	}
	if got.Trend != TrendDecreasing {
		t.Errorf("Trend = %v, want %v", got.Trend, TrendDecreasing)
	}
}

func TestHeartRateTrend_SkipsMissingHR(t *testing.T) {
	records := []WorkoutRecord{
		run(day(2024, 1, 1), 10, 55, 160),
		run(day(2024, 1, 3), 10, 55, 0),
		run(day(2024, 1, 8), 10, 55, 155),
		run(day(2024, 1, 15), 10, 55, 150),
	}
	got := HeartRateTrend(records)
	if got == nil {
		t.Fatal("HeartRateTrend() = nil")
	}
	if math.Abs(got.Slope+5.0/7) > 1e-9 {
		t.Errorf("Slope = %v, want %v", got.Slope, -5.0/7)
	}
	if !got.Improving {
		t.Error("Improving = false, want true")
	}
}

func TestPaceTrend_ElapsedDaysFromEarliestRecord(t *testing.T) {
	// A leading ride shifts x but not the slope
	records := []WorkoutRecord{
		ride(day(2024, 1, 1), 30, 60, 130),
		run(day(2024, 1, 11), 10, 60, 150),
		run(day(2024, 1, 21), 10, 59, 150),
		run(day(2024, 1, 31), 10, 58, 150),
	}
	got := PaceTrend(records)
	if got == nil {
		t.Fatal("PaceTrend() = nil")
	}
	if math.Abs(got.Slope+0.01) > 1e-9 {
		t.Errorf("Slope = %v, want -0.01", got.Slope)
	}
	if math.Abs(got.Predict(10)-6) > 1e-9 {
		t.Errorf("Predict(10) = %v, want 6", got.Predict(10))
	}
}
