package store

import "time"

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	AthleteID    int64
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UpdatedAt    time.Time
}

// Expired reports whether the access token has expired at now
func (a Auth) Expired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

// Sync state keys
const (
	SyncKeyLastSync = "last_sync"
)
