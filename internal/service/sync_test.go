package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"trainer/internal/strava"
)

type fakeSource struct {
	activities []strava.Activity
	err        error
	gotAfter   time.Time
}

func (f *fakeSource) AllActivities(ctx context.Context, after time.Time, onProgress func(int)) ([]strava.Activity, error) {
	f.gotAfter = after
	if f.err != nil {
		return nil, f.err
	}
	if onProgress != nil {
		onProgress(len(f.activities))
	}
	return f.activities, nil
}

func (f *fakeSource) RateLimitStatus() (int, int) {
	return 99, 999
}

func testActivities() []strava.Activity {
	start := time.Date(2024, 4, 1, 7, 30, 0, 0, time.UTC)
	return []strava.Activity{
		{ID: 1, Name: "Morning Run", Type: "Run", StartDate: start, StartDateLocal: start, Distance: 10000, MovingTime: 3000, AverageHeartrate: 148},
		{ID: 2, Name: "Commute", Type: "Ride", SportType: "GravelRide", StartDate: start, Distance: 25000, MovingTime: 3600, AverageHeartrate: 125},
		{ID: 3, Name: "Laps", Type: "Swim", StartDate: start, Distance: 1500, MovingTime: 1800},
	}
}

func drain(ch <-chan SyncProgress) <-chan []SyncProgress {
	done := make(chan []SyncProgress, 1)
	go func() {
		var seen []SyncProgress
		for p := range ch {
			seen = append(seen, p)
		}
		done <- seen
	}()
	return done
}

func TestSyncAll(t *testing.T) {
	db := setupTestDB(t)
	source := &fakeSource{activities: testActivities()}
	svc := NewSyncService(source, db, testLog)
	clock := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	progress := make(chan SyncProgress)
	seen := drain(progress)

	result, err := svc.SyncAll(context.Background(), progress)
	if err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}
	updates := <-seen

	if result.ActivitiesFetched != 3 || result.WorkoutsImported != 2 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 3 fetched, 2 imported, 1 skipped", result)
	}
	if len(updates) == 0 || updates[len(updates)-1].Phase != PhaseImport || updates[len(updates)-1].Completed != 3 {
		t.Errorf("last progress = %+v, want import 3/3", updates)
	}
	if !source.gotAfter.IsZero() {
		t.Errorf("first sync after = %v, want zero", source.gotAfter)
	}

	last, err := db.LastSync()
	if err != nil || !last.Equal(clock) {
		t.Errorf("LastSync() = %v, %v, want %v", last, err, clock)
	}

	run, err := db.GetWorkout(strava.IDPrefix + "1")
	if err != nil {
		t.Fatalf("GetWorkout() error = %v", err)
	}
	if run.DistanceKm != 10 || run.DurationMin != 50 {
		t.Errorf("run = %v km / %v min, want 10 / 50", run.DistanceKm, run.DurationMin)
	}

	// A second sync starts from the watermark and upserts the same rows
	if _, err := svc.SyncAll(context.Background(), nil); err != nil {
		t.Fatalf("second SyncAll() error = %v", err)
	}
	if !source.gotAfter.Equal(clock) {
		t.Errorf("second sync after = %v, want %v", source.gotAfter, clock)
	}
	if n, _ := db.CountWorkouts(); n != 2 {
		t.Errorf("CountWorkouts() = %d, want 2", n)
	}
}

func TestSyncAll_SourceError(t *testing.T) {
	db := setupTestDB(t)
	wantErr := errors.New("rate limited")
	svc := NewSyncService(&fakeSource{err: wantErr}, db, testLog)

	if _, err := svc.SyncAll(context.Background(), nil); !errors.Is(err, wantErr) {
		t.Errorf("SyncAll() error = %v, want %v", err, wantErr)
	}
	if last, _ := db.LastSync(); !last.IsZero() {
		t.Errorf("LastSync() = %v, want zero after a failed sync", last)
	}
}

func TestSyncAll_Cancelled(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSyncService(&fakeSource{activities: testActivities()}, db, testLog)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.SyncAll(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("SyncAll() error = %v, want context.Canceled", err)
	}
}

func TestRateLimitStatus(t *testing.T) {
	svc := NewSyncService(&fakeSource{}, setupTestDB(t), testLog)
	short, daily := svc.RateLimitStatus()
	if short != 99 || daily != 999 {
		t.Errorf("RateLimitStatus() = %d, %d", short, daily)
	}
}
