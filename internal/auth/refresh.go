package auth

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// refreshBuffer renews tokens this long before they expire
const refreshBuffer = 60 * time.Second

// TokenStore persists refreshed tokens. *store.DB satisfies it.
type TokenStore interface {
	UpdateTokens(accessToken, refreshToken string, expiresAt time.Time) error
}

// TokenSource refreshes Strava tokens as needed and writes every new token
// back to the store, since Strava rotates refresh tokens
type TokenSource struct {
	config *oauth2.Config
	store  TokenStore
	log    logrus.FieldLogger

	mu    sync.Mutex
	token *oauth2.Token
}

// NewTokenSource creates a persisting token source
func NewTokenSource(cfg *oauth2.Config, token *oauth2.Token, store TokenStore, log logrus.FieldLogger) *TokenSource {
	return &TokenSource{
		config: cfg,
		token:  token,
		store:  store,
		log:    log,
	}
}

// Token returns a valid token, refreshing it when close to expiry
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if time.Until(ts.token.Expiry) > refreshBuffer {
		return ts.token, nil
	}

	// A past expiry forces the oauth2 source to refresh
	stale := *ts.token
	stale.Expiry = time.Unix(1, 0)
	newToken, err := ts.config.TokenSource(context.Background(), &stale).Token()
	if err != nil {
		return nil, err
	}

	if err := ts.store.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry); err != nil {
		return nil, err
	}
	ts.log.WithField("expires", newToken.Expiry.Format(time.RFC3339)).Debug("refreshed strava token")

	ts.token = newToken
	return newToken, nil
}
