package store

import (
	"errors"
	"testing"
	"time"
)

func TestAuth(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetAuth(); !errors.Is(err, ErrNoAuth) {
		t.Fatalf("GetAuth() error = %v, want ErrNoAuth", err)
	}
	if err := db.UpdateTokens("a", "r", time.Now()); !errors.Is(err, ErrNoAuth) {
		t.Errorf("UpdateTokens() without login error = %v, want ErrNoAuth", err)
	}

	expires := time.Unix(1710000000, 0)
	if err := db.SaveAuth(&Auth{AthleteID: 7, AccessToken: "access", RefreshToken: "refresh", ExpiresAt: expires}); err != nil {
		t.Fatalf("SaveAuth() error = %v", err)
	}

	got, err := db.GetAuth()
	if err != nil {
		t.Fatalf("GetAuth() error = %v", err)
	}
	if got.AthleteID != 7 || got.AccessToken != "access" || !got.ExpiresAt.Equal(expires) {
		t.Errorf("GetAuth() = %+v", got)
	}
	if !got.Expired(expires) || got.Expired(expires.Add(-time.Second)) {
		t.Error("Expired() boundary is wrong")
	}

	newExpiry := expires.Add(6 * time.Hour)
	if err := db.UpdateTokens("access2", "refresh2", newExpiry); err != nil {
		t.Fatalf("UpdateTokens() error = %v", err)
	}
	got, _ = db.GetAuth()
	if got.AccessToken != "access2" || got.RefreshToken != "refresh2" || !got.ExpiresAt.Equal(newExpiry) {
		t.Errorf("after UpdateTokens() = %+v", got)
	}

	if err := db.DeleteAuth(); err != nil {
		t.Fatalf("DeleteAuth() error = %v", err)
	}
	if _, err := db.GetAuth(); !errors.Is(err, ErrNoAuth) {
		t.Errorf("GetAuth() after delete error = %v, want ErrNoAuth", err)
	}
}

func TestSyncState(t *testing.T) {
	db := setupTestDB(t)

	v, err := db.GetSyncState("missing")
	if err != nil || v != "" {
		t.Errorf("GetSyncState(missing) = %q, %v, want empty", v, err)
	}

	last, err := db.LastSync()
	if err != nil || !last.IsZero() {
		t.Errorf("LastSync() = %v, %v, want zero", last, err)
	}

	ts := time.Date(2024, 4, 1, 8, 30, 0, 0, time.UTC)
	if err := db.SetLastSync(ts); err != nil {
		t.Fatalf("SetLastSync() error = %v", err)
	}
	last, err = db.LastSync()
	if err != nil || !last.Equal(ts) {
		t.Errorf("LastSync() = %v, %v, want %v", last, err, ts)
	}

	if err := db.SetSyncState(SyncKeyLastSync, "garbage"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.LastSync(); err == nil {
		t.Error("LastSync() with garbage value should fail")
	}
}
