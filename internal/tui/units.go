package tui

import (
	"fmt"

	"trainer/internal/analysis"
	"trainer/internal/config"
)

const kmPerMile = 1.609344

// Units converts stored kilometres to the user's preferred unit
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// IsMiles returns true if distance unit is miles
func (u Units) IsMiles() bool {
	return u.cfg.DistanceUnit == "mi"
}

// Distance converts kilometres to the display unit
func (u Units) Distance(km float64) float64 {
	if u.IsMiles() {
		return km / kmPerMile
	}
	return km
}

// FormatDistance formats kilometres with a unit label
func (u Units) FormatDistance(km float64) string {
	return fmt.Sprintf("%.1f %s", u.Distance(km), u.DistanceLabel())
}

// Pace converts min/km to minutes per display unit
func (u Units) Pace(minPerKm float64) float64 {
	if u.IsMiles() {
		return minPerKm * kmPerMile
	}
	return minPerKm
}

// FormatPace formats a min/km pace in the display unit, e.g. "5:30 /km"
func (u Units) FormatPace(minPerKm float64) string {
	if !u.IsMiles() {
		return analysis.FormatPace(minPerKm)
	}
	s := analysis.FormatPace(u.Pace(minPerKm))
	if s == "-" {
		return s
	}
	return s[:len(s)-len("/km")] + "/mi"
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.IsMiles() {
		return "mi"
	}
	return "km"
}

// PaceLabel returns the pace unit label ("min/mi" or "min/km")
func (u Units) PaceLabel() string {
	return "min/" + u.DistanceLabel()
}

// PaceSeries converts a min/km series for charts
func (u Units) PaceSeries(minPerKm []float64) []float64 {
	out := make([]float64, len(minPerKm))
	for i, p := range minPerKm {
		out[i] = u.Pace(p)
	}
	return out
}
