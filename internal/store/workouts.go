package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trainer/internal/analysis"
)

const (
	dateLayout      = "2006-01-02"
	sqliteTimestamp = "2006-01-02 15:04:05"
)

var (
	// ErrWorkoutNotFound is returned when a workout doesn't exist
	ErrWorkoutNotFound = errors.New("workout not found")
	// ErrDuplicateWorkout is returned when inserting an existing ID
	ErrDuplicateWorkout = errors.New("workout already exists")
)

const workoutColumns = `id, date, sport, type, distance_km, duration_min,
	avg_heart_rate, max_heart_rate, perceived_effort, notes`

// InsertWorkout stores a new workout
func (db *DB) InsertWorkout(w *analysis.WorkoutRecord) error {
	if _, err := db.GetWorkout(w.ID); err == nil {
		return fmt.Errorf("%w: %s", ErrDuplicateWorkout, w.ID)
	} else if !errors.Is(err, ErrWorkoutNotFound) {
		return err
	}

	_, err := db.Exec(`
		INSERT INTO workouts (`+workoutColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, workoutArgs(w)...)
	return err
}

// UpsertWorkout inserts or replaces a workout. Imports use it so running
// a sync twice leaves one row per activity.
func (db *DB) UpsertWorkout(w *analysis.WorkoutRecord) error {
	_, err := db.Exec(`
		INSERT INTO workouts (`+workoutColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			sport = excluded.sport,
			type = excluded.type,
			distance_km = excluded.distance_km,
			duration_min = excluded.duration_min,
			avg_heart_rate = excluded.avg_heart_rate,
			max_heart_rate = excluded.max_heart_rate,
			perceived_effort = excluded.perceived_effort,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP
	`, workoutArgs(w)...)
	return err
}

// GetWorkout retrieves a workout by ID
func (db *DB) GetWorkout(id string) (*analysis.WorkoutRecord, error) {
	row := db.QueryRow(`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	return w, err
}

// ListWorkouts returns every workout ordered by date, oldest first.
// The slice is freshly allocated on each call.
func (db *DB) ListWorkouts() ([]analysis.WorkoutRecord, error) {
	rows, err := db.Query(`
		SELECT ` + workoutColumns + `
		FROM workouts
		ORDER BY date ASC, created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// ListWorkoutsBetween returns workouts with from <= date <= to, oldest first
func (db *DB) ListWorkoutsBetween(from, to time.Time) ([]analysis.WorkoutRecord, error) {
	rows, err := db.Query(`
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC, id ASC
	`, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// DeleteWorkout removes a workout by ID
func (db *DB) DeleteWorkout(id string) error {
	result, err := db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result, ErrWorkoutNotFound)
}

// CountWorkouts returns the total number of workouts
func (db *DB) CountWorkouts() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM workouts").Scan(&count)
	return count, err
}

func workoutArgs(w *analysis.WorkoutRecord) []any {
	var maxHR sql.NullFloat64
	if w.MaxHeartRate != nil {
		maxHR = sql.NullFloat64{Float64: *w.MaxHeartRate, Valid: true}
	}
	var effort sql.NullInt64
	if w.PerceivedEffort != nil {
		effort = sql.NullInt64{Int64: int64(*w.PerceivedEffort), Valid: true}
	}
	return []any{
		w.ID, w.Date.Format(dateLayout), string(w.Sport), w.Type,
		w.DistanceKm, w.DurationMin, w.AvgHeartRate,
		maxHR, effort, w.Notes,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row scanner) (*analysis.WorkoutRecord, error) {
	var w analysis.WorkoutRecord
	var date, sport string
	var maxHR sql.NullFloat64
	var effort sql.NullInt64

	err := row.Scan(
		&w.ID, &date, &sport, &w.Type, &w.DistanceKm, &w.DurationMin,
		&w.AvgHeartRate, &maxHR, &effort, &w.Notes,
	)
	if err != nil {
		return nil, err
	}

	w.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parsing date of workout %s: %w", w.ID, err)
	}
	w.Sport = analysis.Sport(sport)
	if maxHR.Valid {
		v := maxHR.Float64
		w.MaxHeartRate = &v
	}
	if effort.Valid {
		v := int(effort.Int64)
		w.PerceivedEffort = &v
	}
	return &w, nil
}

func scanWorkouts(rows *sql.Rows) ([]analysis.WorkoutRecord, error) {
	workouts := []analysis.WorkoutRecord{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}
