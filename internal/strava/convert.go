package strava

import (
	"fmt"
	"math"
	"time"

	"trainer/internal/analysis"
)

// IDPrefix namespaces imported workouts so re-imports upsert the same row
const IDPrefix = "strava-"

var sportByKind = map[string]analysis.Sport{
	"Run":         analysis.SportRun,
	"TrailRun":    analysis.SportRun,
	"VirtualRun":  analysis.SportRun,
	"Ride":        analysis.SportBike,
	"VirtualRide": analysis.SportBike,
	"GravelRide":  analysis.SportBike,
}

// Strava workout_type values for runs
const (
	workoutTypeRace     = 1
	workoutTypeLongRun  = 2
	workoutTypeWorkout  = 3
	workoutTypeRideRace = 11 // rides use 10-12
)

// ToWorkout converts an activity into a workout record. ok is false for
// activity types that are not tracked.
func ToWorkout(a Activity) (analysis.WorkoutRecord, bool) {
	sport, ok := sportByKind[a.Kind()]
	if !ok || a.Distance <= 0 || a.MovingTime <= 0 {
		return analysis.WorkoutRecord{}, false
	}

	// start_date_local carries the athlete's wall clock with a Z suffix
	local := a.StartDateLocal
	if local.IsZero() {
		local = a.StartDate
	}

	w := analysis.WorkoutRecord{
		ID:           fmt.Sprintf("%s%d", IDPrefix, a.ID),
		Date:         time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
		Sport:        sport,
		Type:         workoutType(sport, a),
		DistanceKm:   math.Round(a.Distance) / 1000,
		DurationMin:  float64(a.MovingTime) / 60,
		AvgHeartRate: math.Round(a.AverageHeartrate),
		Notes:        a.Name,
	}
	if a.MaxHeartrate > 0 {
		maxHR := a.MaxHeartrate
		w.MaxHeartRate = &maxHR
	}
	if a.PerceivedExertion != nil && *a.PerceivedExertion >= 1 && *a.PerceivedExertion <= 10 {
		effort := int(math.Round(*a.PerceivedExertion))
		w.PerceivedEffort = &effort
	}
	return w, true
}

func workoutType(sport analysis.Sport, a Activity) string {
	wt := 0
	if a.WorkoutType != nil {
		wt = *a.WorkoutType
	}
	if sport == analysis.SportBike {
		if wt == workoutTypeRideRace {
			return "race"
		}
		return "endurance"
	}
	switch wt {
	case workoutTypeRace:
		return "race"
	case workoutTypeLongRun:
		return "long"
	case workoutTypeWorkout:
		return "tempo"
	default:
		return "easy"
	}
}
