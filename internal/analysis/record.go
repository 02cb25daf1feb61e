package analysis

import (
	"math"
	"sort"
	"time"
)

// Sport identifies the discipline of a workout
type Sport string

const (
	SportRun  Sport = "Run"
	SportBike Sport = "Bike"
)

// WorkoutRecord is a single logged training session.
// Required numeric fields use 0 for "not recorded".
type WorkoutRecord struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Sport           Sport     `json:"sport"`
	Type            string    `json:"type"`
	DistanceKm      float64   `json:"distance_km"`
	DurationMin     float64   `json:"duration_min"`
	AvgHeartRate    float64   `json:"avg_heart_rate"`
	MaxHeartRate    *float64  `json:"max_heart_rate,omitempty"`
	PerceivedEffort *int      `json:"perceived_effort,omitempty"` // 1-10
	Notes           string    `json:"notes,omitempty"`
}

// IsRun reports whether the record is a run
func (r WorkoutRecord) IsRun() bool {
	return r.Sport == SportRun
}

// HasHeartRate reports whether an average heart rate was recorded
func (r WorkoutRecord) HasHeartRate() bool {
	return r.AvgHeartRate > 0
}

// Pace returns min/km for runs with a known distance and duration
func (r WorkoutRecord) Pace() (float64, bool) {
	if !r.IsRun() || r.DistanceKm <= 0 || r.DurationMin <= 0 {
		return 0, false
	}
	return r.DurationMin / r.DistanceKm, true
}

// Speed returns km/h for rides with a known distance and duration
func (r WorkoutRecord) Speed() (float64, bool) {
	if r.Sport != SportBike || r.DistanceKm <= 0 || r.DurationMin <= 0 {
		return 0, false
	}
	return r.DistanceKm / r.DurationMin * 60, true
}

// Day returns the calendar date of the record as UTC midnight
func (r WorkoutRecord) Day() time.Time {
	return dayOf(r.Date)
}

// dayOf truncates t to its calendar date, keeping the date as written
// rather than converting between zones.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the elapsed days from start to t
func daysBetween(start, t time.Time) float64 {
	return dayOf(t).Sub(dayOf(start)).Hours() / 24
}

// sortedCopy returns the records ordered by date. Records on the same date
// keep their input order.
func sortedCopy(records []WorkoutRecord) []WorkoutRecord {
	sorted := make([]WorkoutRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Day().Before(sorted[j].Day())
	})
	return sorted
}

// earliestDay returns the first calendar date in the set
func earliestDay(records []WorkoutRecord) time.Time {
	var start time.Time
	for i, r := range records {
		d := r.Day()
		if i == 0 || d.Before(start) {
			start = d
		}
	}
	return start
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdDev divides by N, not N-1
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}
