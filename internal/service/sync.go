package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"trainer/internal/analysis"
	"trainer/internal/metrics"
	"trainer/internal/strava"
)

// ActivitySource lists activities from Strava
type ActivitySource interface {
	AllActivities(ctx context.Context, after time.Time, onProgress func(fetched int)) ([]strava.Activity, error)
	RateLimitStatus() (shortRemaining, dailyRemaining int)
}

// SyncStore persists imported workouts and the sync watermark
type SyncStore interface {
	UpsertWorkout(w *analysis.WorkoutRecord) error
	CountWorkouts() (int, error)
	LastSync() (time.Time, error)
	SetLastSync(t time.Time) error
}

// Sync phases
const (
	PhaseFetch  = "fetch"
	PhaseImport = "import"
)

// SyncService imports Strava activities as workouts
type SyncService struct {
	source ActivitySource
	store  SyncStore
	now    func() time.Time
	log    logrus.FieldLogger
}

// NewSyncService creates a new sync service
func NewSyncService(source ActivitySource, store SyncStore, log logrus.FieldLogger) *SyncService {
	return &SyncService{
		source: source,
		store:  store,
		now:    time.Now,
		log:    log,
	}
}

// SyncProgress reports progress during sync
type SyncProgress struct {
	Phase     string
	Total     int
	Completed int
	Current   string
}

// SyncResult contains the results of a sync operation
type SyncResult struct {
	ActivitiesFetched int
	WorkoutsImported  int
	Skipped           int // untracked activity types
	Errors            []error
}

// SyncAll fetches activities since the last sync and upserts the tracked
// ones. progress, when non-nil, is closed on return. The watermark only
// advances when every fetched activity was stored.
func (s *SyncService) SyncAll(ctx context.Context, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}
	started := s.now()
	result := &SyncResult{}

	after, err := s.store.LastSync()
	if err != nil {
		return result, fmt.Errorf("reading last sync: %w", err)
	}
	log := s.log.WithField("after", after)
	log.Info("sync started")

	report(ctx, progress, SyncProgress{Phase: PhaseFetch})
	activities, err := s.source.AllActivities(ctx, after, func(fetched int) {
		report(ctx, progress, SyncProgress{Phase: PhaseFetch, Completed: fetched})
	})
	if err != nil {
		return result, fmt.Errorf("fetching activities: %w", err)
	}
	result.ActivitiesFetched = len(activities)

	for i, a := range activities {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		report(ctx, progress, SyncProgress{
			Phase:     PhaseImport,
			Total:     len(activities),
			Completed: i,
			Current:   a.Name,
		})

		w, ok := strava.ToWorkout(a)
		if !ok {
			result.Skipped++
			continue
		}
		if err := s.store.UpsertWorkout(&w); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("storing activity %d: %w", a.ID, err))
			continue
		}
		result.WorkoutsImported++
	}
	report(ctx, progress, SyncProgress{Phase: PhaseImport, Total: len(activities), Completed: len(activities)})

	if len(result.Errors) == 0 {
		if err := s.store.SetLastSync(started); err != nil {
			return result, fmt.Errorf("saving last sync: %w", err)
		}
		metrics.RecordSync(result.WorkoutsImported, started)
	} else {
		metrics.RecordSync(result.WorkoutsImported, time.Time{})
	}
	if n, err := s.store.CountWorkouts(); err == nil {
		metrics.SetWorkoutCount(n)
	}

	log.WithFields(logrus.Fields{
		"fetched":  result.ActivitiesFetched,
		"imported": result.WorkoutsImported,
		"skipped":  result.Skipped,
		"errors":   len(result.Errors),
	}).Info("sync finished")
	return result, nil
}

// RateLimitStatus returns the current rate limit status from the source
func (s *SyncService) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return s.source.RateLimitStatus()
}

func report(ctx context.Context, progress chan<- SyncProgress, p SyncProgress) {
	if progress == nil {
		return
	}
	select {
	case progress <- p:
	case <-ctx.Done():
	}
}
