package analysis

import "math"

// HRZone is a heart rate training zone expressed as a fraction of max HR
type HRZone struct {
	Key  string  `json:"key"`
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// HRZones lists the zones from easiest to hardest
var HRZones = []HRZone{
	{"zone1", "Recovery", 0.50, 0.60},
	{"zone2", "Easy", 0.60, 0.70},
	{"zone2-3", "Aerobic base", 0.70, 0.80},
	{"zone3", "Tempo", 0.80, 0.85},
	{"zone4", "Interval", 0.85, 0.90},
	{"zone5", "Max", 0.90, 1.00},
}

// ZoneForHR returns the zone an average heart rate falls into
func ZoneForHR(hr, maxHR float64) HRZone {
	if maxHR <= 0 {
		return HRZones[0]
	}
	pct := hr / maxHR
	for _, z := range HRZones[:len(HRZones)-1] {
		if pct < z.Max {
			return z
		}
	}
	return HRZones[len(HRZones)-1]
}

// ZoneBPM returns the zone bounds in beats per minute
func ZoneBPM(z HRZone, maxHR float64) (low, high int) {
	return int(math.Round(z.Min * maxHR)), int(math.Round(z.Max * maxHR))
}
