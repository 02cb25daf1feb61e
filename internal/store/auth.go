package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNoAuth is returned when no Strava login is stored
var ErrNoAuth = errors.New("no authentication stored")

// GetAuth retrieves the stored Strava tokens
func (db *DB) GetAuth() (*Auth, error) {
	var auth Auth
	var expiresAt int64
	var updatedAt string
	err := db.QueryRow(`
		SELECT athlete_id, access_token, refresh_token, expires_at, updated_at
		FROM auth
		WHERE id = 1
	`).Scan(&auth.AthleteID, &auth.AccessToken, &auth.RefreshToken, &expiresAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAuth
	}
	if err != nil {
		return nil, err
	}

	auth.ExpiresAt = time.Unix(expiresAt, 0)
	auth.UpdatedAt, _ = time.Parse(sqliteTimestamp, updatedAt)
	return &auth, nil
}

// SaveAuth replaces the stored login, e.g. after the OAuth flow completes
func (db *DB) SaveAuth(auth *Auth) error {
	_, err := db.Exec(`
		INSERT INTO auth (id, athlete_id, access_token, refresh_token, expires_at, updated_at)
		VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = CURRENT_TIMESTAMP
	`, auth.AthleteID, auth.AccessToken, auth.RefreshToken, auth.ExpiresAt.Unix())
	return err
}

// UpdateTokens stores refreshed tokens for the existing login
func (db *DB) UpdateTokens(accessToken, refreshToken string, expiresAt time.Time) error {
	result, err := db.Exec(`
		UPDATE auth
		SET access_token = ?, refresh_token = ?, expires_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, accessToken, refreshToken, expiresAt.Unix())
	if err != nil {
		return err
	}
	return expectOneRow(result, ErrNoAuth)
}

// DeleteAuth forgets the Strava login
func (db *DB) DeleteAuth() error {
	result, err := db.Exec(`DELETE FROM auth WHERE id = 1`)
	if err != nil {
		return err
	}
	return expectOneRow(result, ErrNoAuth)
}

// expectOneRow maps "no rows changed" to notFound
func expectOneRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
