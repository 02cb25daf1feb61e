package analysis

import (
	"sort"
	"time"
)

// SportTotals aggregates one discipline within a week
type SportTotals struct {
	Km           float64 `json:"km"`
	Minutes      float64 `json:"minutes"`
	Count        int     `json:"count"`
	AvgHeartRate float64 `json:"avg_heart_rate"`
	AvgPace      float64 `json:"avg_pace,omitempty"`  // runs, min/km
	AvgSpeed     float64 `json:"avg_speed,omitempty"` // rides, km/h
}

// WeekStats summarises one Monday-to-Sunday week
type WeekStats struct {
	WeekStart time.Time   `json:"week_start"`
	Run       SportTotals `json:"run"`
	Bike      SportTotals `json:"bike"`
	Total     SportTotals `json:"total"`
}

// WeekStart returns the Monday of the week containing t
func WeekStart(t time.Time) time.Time {
	d := dayOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

type weekAccumulator struct {
	stats              WeekStats
	runHR, bikeHR      []float64
	runPaces, bikeSpds []float64
}

// WeeklyStats groups records into weeks, oldest first
func WeeklyStats(records []WorkoutRecord) []WeekStats {
	weeks := make(map[time.Time]*weekAccumulator)

	for _, r := range records {
		key := WeekStart(r.Date)
		acc, ok := weeks[key]
		if !ok {
			acc = &weekAccumulator{stats: WeekStats{WeekStart: key}}
			weeks[key] = acc
		}

		if r.IsRun() {
			addTotals(&acc.stats.Run, r)
			if r.HasHeartRate() {
				acc.runHR = append(acc.runHR, r.AvgHeartRate)
			}
			if pace, ok := r.Pace(); ok {
				acc.runPaces = append(acc.runPaces, pace)
			}
		} else {
			addTotals(&acc.stats.Bike, r)
			if r.HasHeartRate() {
				acc.bikeHR = append(acc.bikeHR, r.AvgHeartRate)
			}
			if speed, ok := r.Speed(); ok {
				acc.bikeSpds = append(acc.bikeSpds, speed)
			}
		}
		addTotals(&acc.stats.Total, r)
	}

	result := make([]WeekStats, 0, len(weeks))
	for _, acc := range weeks {
		acc.stats.Run.AvgHeartRate = mean(acc.runHR)
		acc.stats.Run.AvgPace = mean(acc.runPaces)
		acc.stats.Bike.AvgHeartRate = mean(acc.bikeHR)
		acc.stats.Bike.AvgSpeed = mean(acc.bikeSpds)
		acc.stats.Total.AvgHeartRate = mean(append(append([]float64{}, acc.runHR...), acc.bikeHR...))
		result = append(result, acc.stats)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].WeekStart.Before(result[j].WeekStart)
	})
	return result
}

func addTotals(t *SportTotals, r WorkoutRecord) {
	t.Km += r.DistanceKm
	t.Minutes += r.DurationMin
	t.Count++
}
