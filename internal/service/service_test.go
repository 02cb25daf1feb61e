package service

import (
	"testing"
	"time"

	"trainer/internal/analysis"
	"trainer/internal/logging"
	"trainer/internal/store"
)

func setupTestDB(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.OpenPath(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

// seedProgression stores six weekly 10 km runs getting faster at a
// constant heart rate, starting Monday 2024-03-04
func seedProgression(t *testing.T, db *store.DB) {
	t.Helper()
	for i := 0; i < 6; i++ {
		w := &analysis.WorkoutRecord{
			ID:           "run-" + string(rune('a'+i)),
			Date:         day(2024, 3, 4).AddDate(0, 0, 7*i),
			Sport:        analysis.SportRun,
			Type:         "easy",
			DistanceKm:   10,
			DurationMin:  55 - 2*float64(i),
			AvgHeartRate: 150,
		}
		if err := db.InsertWorkout(w); err != nil {
			t.Fatalf("InsertWorkout() error = %v", err)
		}
	}
}

var testLog = logging.Discard()
