package strava

import "time"

// Activity is the summary representation returned by /athlete/activities
type Activity struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	SportType         string    `json:"sport_type"`
	StartDate         time.Time `json:"start_date"`
	StartDateLocal    time.Time `json:"start_date_local"`
	Distance          float64   `json:"distance"`     // meters
	MovingTime        int       `json:"moving_time"`  // seconds
	ElapsedTime       int       `json:"elapsed_time"` // seconds
	AverageHeartrate  float64   `json:"average_heartrate"`
	MaxHeartrate      float64   `json:"max_heartrate"`
	HasHeartrate      bool      `json:"has_heartrate"`
	WorkoutType       *int      `json:"workout_type"` // runs: 1 race, 2 long run, 3 workout
	PerceivedExertion *float64  `json:"perceived_exertion"`
}

// Kind returns the most specific activity type available
func (a Activity) Kind() string {
	if a.SportType != "" {
		return a.SportType
	}
	return a.Type
}
