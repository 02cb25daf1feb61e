package tui

import (
	"math"
	"testing"

	"trainer/internal/config"
)

func TestUnits(t *testing.T) {
	km := NewUnits(config.DisplayConfig{DistanceUnit: "km"})
	mi := NewUnits(config.DisplayConfig{DistanceUnit: "mi"})

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"km distance", km.FormatDistance(10), "10.0 km"},
		{"mi distance", mi.FormatDistance(16.09344), "10.0 mi"},
		{"km pace", km.FormatPace(5.5), "5:30 /km"},
		{"mi pace", mi.FormatPace(5), "8:03 /mi"},
		{"missing pace", mi.FormatPace(0), "-"},
		{"km label", km.PaceLabel(), "min/km"},
		{"mi label", mi.PaceLabel(), "min/mi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	series := mi.PaceSeries([]float64{5, 6})
	if math.Abs(series[1]-6*kmPerMile) > 1e-9 {
		t.Errorf("PaceSeries()[1] = %v, want %v", series[1], 6*kmPerMile)
	}
}
