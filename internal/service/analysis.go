package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"trainer/internal/analysis"
	"trainer/internal/coach"
	"trainer/internal/config"
	"trainer/internal/metrics"
)

// WorkoutLister loads the full training log
type WorkoutLister interface {
	ListWorkouts() ([]analysis.WorkoutRecord, error)
}

// AnalysisService runs the engine over a fresh snapshot of the store
type AnalysisService struct {
	store    WorkoutLister
	engine   *analysis.Engine
	raceDate time.Time
	now      func() time.Time
	log      logrus.FieldLogger
}

// NewAnalysisService creates an analysis service for the given athlete
func NewAnalysisService(store WorkoutLister, athlete config.AthleteConfig, log logrus.FieldLogger) *AnalysisService {
	raceDate, _ := athlete.RaceDay()
	return &AnalysisService{
		store:    store,
		engine:   analysis.NewEngine(athlete.Params()),
		raceDate: raceDate,
		now:      time.Now,
		log:      log,
	}
}

// SetClock replaces the clock used when no as-of date is given
func (s *AnalysisService) SetClock(now func() time.Time) {
	s.now = now
}

// Today returns the current date according to the service clock
func (s *AnalysisService) Today() time.Time {
	t := s.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Params returns the engine parameters in effect
func (s *AnalysisService) Params() analysis.Params {
	return s.engine.Params()
}

// RaceDate returns the configured race date, or the zero time
func (s *AnalysisService) RaceDate() time.Time {
	return s.raceDate
}

// Analyze builds a report as of the given date, or today when asOf is
// zero. Workouts dated after asOf are ignored. It returns
// analysis.ErrNoRecords when nothing has been logged by then.
func (s *AnalysisService) Analyze(asOf time.Time) (*analysis.Report, error) {
	records, err := s.store.ListWorkouts()
	if err != nil {
		metrics.RecordAnalysisError()
		return nil, fmt.Errorf("loading workouts: %w", err)
	}
	asOf = s.resolve(asOf)
	return s.analyze(onOrBefore(records, asOf), asOf)
}

func (s *AnalysisService) analyze(records []analysis.WorkoutRecord, asOf time.Time) (*analysis.Report, error) {
	start := time.Now()
	report, err := s.engine.Analyze(records, asOf)
	if errors.Is(err, analysis.ErrNoRecords) {
		metrics.RecordAnalysis(nil, time.Since(start))
		return nil, err
	}
	if err != nil {
		metrics.RecordAnalysisError()
		return nil, fmt.Errorf("analyzing workouts: %w", err)
	}
	metrics.RecordAnalysis(report, time.Since(start))

	s.log.WithFields(logrus.Fields{
		"as_of":     asOf.Format(config.DateLayout),
		"workouts":  report.SampleCount,
		"anomalies": len(report.Anomalies),
		"elapsed":   time.Since(start),
	}).Debug("analysis complete")
	return report, nil
}

// Dashboard contains everything the overview screens show
type Dashboard struct {
	AsOf         time.Time                `json:"as_of"`
	Report       *analysis.Report         `json:"report,omitempty"` // nil without workouts
	Weeks        []analysis.WeekStats     `json:"weeks"`            // oldest first
	Recent       []analysis.WorkoutRecord `json:"recent"`           // newest first
	Advice       []coach.Advice           `json:"advice"`
	Warnings     []coach.Advice           `json:"warnings"`
	RaceDate     *time.Time               `json:"race_date,omitempty"`
	DaysToRace   int                      `json:"days_to_race"`
	WorkoutCount int                      `json:"workout_count"`
}

// Dashboard builds the report, weekly stats and coaching advice as of the
// given date, or today when asOf is zero. Workouts after asOf are ignored.
func (s *AnalysisService) Dashboard(asOf time.Time) (*Dashboard, error) {
	asOf = s.resolve(asOf)

	records, err := s.store.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("loading workouts: %w", err)
	}
	visible := onOrBefore(records, asOf)

	report, err := s.analyze(visible, asOf)
	if err != nil && !errors.Is(err, analysis.ErrNoRecords) {
		return nil, err
	}

	weeks := analysis.WeeklyStats(visible)
	if len(weeks) > DashboardWeeks {
		weeks = weeks[len(weeks)-DashboardWeeks:]
	}

	recent := make([]analysis.WorkoutRecord, 0, RecentWorkoutsLimit)
	for i := len(visible) - 1; i >= 0 && len(recent) < RecentWorkoutsLimit; i-- {
		recent = append(recent, visible[i])
	}

	d := &Dashboard{
		AsOf:         asOf,
		Report:       report,
		Weeks:        weeks,
		Recent:       recent,
		Advice:       coach.Advise(report, asOf, s.raceDate),
		Warnings:     coach.Warnings(visible, asOf, s.Params()),
		DaysToRace:   coach.DaysUntil(asOf, s.raceDate),
		WorkoutCount: len(visible),
	}
	if !s.raceDate.IsZero() {
		rd := s.raceDate
		d.RaceDate = &rd
	}
	return d, nil
}

func (s *AnalysisService) resolve(asOf time.Time) time.Time {
	if asOf.IsZero() {
		return s.Today()
	}
	return asOf
}

// onOrBefore keeps records dated on or before asOf's calendar day
func onOrBefore(records []analysis.WorkoutRecord, asOf time.Time) []analysis.WorkoutRecord {
	limit := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]analysis.WorkoutRecord, 0, len(records))
	for _, r := range records {
		if !r.Day().After(limit) {
			out = append(out, r)
		}
	}
	return out
}
