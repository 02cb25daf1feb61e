package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"trainer/internal/analysis"
	"trainer/internal/config"
	"trainer/internal/metrics"
)

// ErrInvalidWorkout is returned when workout input fails validation
var ErrInvalidWorkout = errors.New("invalid workout")

// WorkoutStore is the persistence the workout service needs
type WorkoutStore interface {
	InsertWorkout(w *analysis.WorkoutRecord) error
	GetWorkout(id string) (*analysis.WorkoutRecord, error)
	ListWorkouts() ([]analysis.WorkoutRecord, error)
	ListWorkoutsBetween(from, to time.Time) ([]analysis.WorkoutRecord, error)
	DeleteWorkout(id string) error
	CountWorkouts() (int, error)
}

// WorkoutInput is a workout as entered by the user. Duration accepts
// h:mm:ss, mm:ss or decimal minutes.
type WorkoutInput struct {
	Date            string   `json:"date"`
	Sport           string   `json:"sport"`
	Type            string   `json:"type"`
	DistanceKm      float64  `json:"distance_km"`
	Duration        string   `json:"duration"`
	AvgHeartRate    float64  `json:"avg_heart_rate"`
	MaxHeartRate    *float64 `json:"max_heart_rate,omitempty"`
	PerceivedEffort *int     `json:"perceived_effort,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// WorkoutService validates and persists manually logged workouts
type WorkoutService struct {
	store WorkoutStore
	log   logrus.FieldLogger
}

// NewWorkoutService creates a new workout service
func NewWorkoutService(store WorkoutStore, log logrus.FieldLogger) *WorkoutService {
	return &WorkoutService{store: store, log: log}
}

// Add validates the input, assigns an ID and stores the workout
func (s *WorkoutService) Add(in WorkoutInput) (*analysis.WorkoutRecord, error) {
	w, err := in.Record()
	if err != nil {
		return nil, err
	}
	w.ID = uuid.NewString()

	if err := s.store.InsertWorkout(&w); err != nil {
		return nil, fmt.Errorf("storing workout: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"id":    w.ID,
		"date":  w.Date.Format(config.DateLayout),
		"sport": w.Sport,
		"km":    w.DistanceKm,
	}).Info("workout added")
	s.updateCount()

	return &w, nil
}

// Get returns one workout
func (s *WorkoutService) Get(id string) (*analysis.WorkoutRecord, error) {
	return s.store.GetWorkout(id)
}

// List returns every workout, oldest first
func (s *WorkoutService) List() ([]analysis.WorkoutRecord, error) {
	return s.store.ListWorkouts()
}

// Recent returns up to n workouts, newest first
func (s *WorkoutService) Recent(n int) ([]analysis.WorkoutRecord, error) {
	all, err := s.store.ListWorkouts()
	if err != nil {
		return nil, err
	}
	out := make([]analysis.WorkoutRecord, 0, min(n, len(all)))
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// Between returns workouts dated from..to inclusive, oldest first. A zero
// bound is open.
func (s *WorkoutService) Between(from, to time.Time) ([]analysis.WorkoutRecord, error) {
	if from.IsZero() && to.IsZero() {
		return s.store.ListWorkouts()
	}
	if to.IsZero() {
		to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range ends before it starts", ErrInvalidWorkout)
	}
	return s.store.ListWorkoutsBetween(from, to)
}

// Delete removes a workout. store.ErrWorkoutNotFound is passed through.
func (s *WorkoutService) Delete(id string) error {
	if err := s.store.DeleteWorkout(id); err != nil {
		return err
	}
	s.log.WithField("id", id).Info("workout deleted")
	s.updateCount()
	return nil
}

func (s *WorkoutService) updateCount() {
	n, err := s.store.CountWorkouts()
	if err != nil {
		s.log.WithError(err).Warn("counting workouts")
		return
	}
	metrics.SetWorkoutCount(n)
}

// Record validates the input and converts it to a workout record without
// an ID. Errors wrap ErrInvalidWorkout.
func (in WorkoutInput) Record() (analysis.WorkoutRecord, error) {
	var missing []string
	if strings.TrimSpace(in.Date) == "" {
		missing = append(missing, "date")
	}
	if in.Sport == "" {
		missing = append(missing, "sport")
	}
	if strings.TrimSpace(in.Type) == "" {
		missing = append(missing, "type")
	}
	if in.DistanceKm == 0 {
		missing = append(missing, "distance_km")
	}
	if strings.TrimSpace(in.Duration) == "" {
		missing = append(missing, "duration")
	}
	if in.AvgHeartRate == 0 {
		missing = append(missing, "avg_heart_rate")
	}
	if len(missing) > 0 {
		return analysis.WorkoutRecord{}, fmt.Errorf("%w: missing required fields: %s", ErrInvalidWorkout, strings.Join(missing, ", "))
	}

	date, err := time.Parse(config.DateLayout, strings.TrimSpace(in.Date))
	if err != nil {
		return analysis.WorkoutRecord{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidWorkout, in.Date)
	}

	sport, err := ParseSport(in.Sport)
	if err != nil {
		return analysis.WorkoutRecord{}, err
	}

	if in.DistanceKm < 0 || in.DistanceKm > MaxDistanceKm {
		return analysis.WorkoutRecord{}, fmt.Errorf("%w: distance_km out of range: %v", ErrInvalidWorkout, in.DistanceKm)
	}

	minutes, err := ParseDuration(in.Duration)
	if err != nil {
		return analysis.WorkoutRecord{}, err
	}
	if minutes <= 0 || minutes > MaxDurationMin {
		return analysis.WorkoutRecord{}, fmt.Errorf("%w: duration out of range: %q", ErrInvalidWorkout, in.Duration)
	}

	if !validHeartrate(in.AvgHeartRate) {
		return analysis.WorkoutRecord{}, fmt.Errorf("%w: avg_heart_rate out of range: %v", ErrInvalidWorkout, in.AvgHeartRate)
	}
	if in.MaxHeartRate != nil {
		if !validHeartrate(*in.MaxHeartRate) || *in.MaxHeartRate < in.AvgHeartRate {
			return analysis.WorkoutRecord{}, fmt.Errorf("%w: max_heart_rate out of range: %v", ErrInvalidWorkout, *in.MaxHeartRate)
		}
	}
	if in.PerceivedEffort != nil && (*in.PerceivedEffort < MinEffort || *in.PerceivedEffort > MaxEffort) {
		return analysis.WorkoutRecord{}, fmt.Errorf("%w: perceived_effort must be %d-%d, got %d", ErrInvalidWorkout, MinEffort, MaxEffort, *in.PerceivedEffort)
	}

	return analysis.WorkoutRecord{
		Date:            date,
		Sport:           sport,
		Type:            strings.ToLower(strings.TrimSpace(in.Type)),
		DistanceKm:      in.DistanceKm,
		DurationMin:     minutes,
		AvgHeartRate:    in.AvgHeartRate,
		MaxHeartRate:    in.MaxHeartRate,
		PerceivedEffort: in.PerceivedEffort,
		Notes:           strings.TrimSpace(in.Notes),
	}, nil
}

// ParseSport accepts Run or Bike in any case
func ParseSport(s string) (analysis.Sport, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "run":
		return analysis.SportRun, nil
	case "bike":
		return analysis.SportBike, nil
	}
	return "", fmt.Errorf("%w: sport must be Run or Bike, got %q", ErrInvalidWorkout, s)
}

// ParseDuration converts h:mm:ss, mm:ss or decimal minutes to minutes
func ParseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")

	nums := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: duration must be h:mm:ss, mm:ss or minutes, got %q", ErrInvalidWorkout, s)
		}
		nums[i] = v
	}

	switch len(nums) {
	case 1:
		return nums[0], nil
	case 2:
		if nums[1] >= 60 {
			break
		}
		return nums[0] + nums[1]/60, nil
	case 3:
		if nums[1] >= 60 || nums[2] >= 60 {
			break
		}
		return nums[0]*60 + nums[1] + nums[2]/60, nil
	}
	return 0, fmt.Errorf("%w: duration must be h:mm:ss, mm:ss or minutes, got %q", ErrInvalidWorkout, s)
}

func validHeartrate(hr float64) bool {
	return hr >= MinValidHeartrate && hr <= MaxValidHeartrate
}
