package analysis

import (
	"fmt"
	"math"
	"strconv"
)

// FormatPace formats a pace in min/km as "m:ss /km"
func FormatPace(minPerKm float64) string {
	if minPerKm <= 0 || math.IsInf(minPerKm, 0) || math.IsNaN(minPerKm) {
		return "-"
	}
	total := int(math.Round(minPerKm * 60))
	return fmt.Sprintf("%d:%02d /km", total/60, total%60)
}

// FormatDuration formats minutes as "h:mm:ss", or "m:ss" under an hour
func FormatDuration(minutes float64) string {
	if minutes <= 0 || math.IsInf(minutes, 0) || math.IsNaN(minutes) {
		return "--:--"
	}
	total := int(math.Round(minutes * 60))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatKm labels a race distance, e.g. 21.1 -> "21.1K"
func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64) + "K"
}
