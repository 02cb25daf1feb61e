package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const (
	// CallbackPort is the port for the OAuth callback server
	CallbackPort = 8089
	// CallbackPath receives the redirect from Strava
	CallbackPath = "/callback"
	// AuthTimeout is how long to wait for the user to complete auth
	AuthTimeout = 5 * time.Minute
)

// ErrStateMismatch is returned when the callback state does not match
var ErrStateMismatch = errors.New("state mismatch - possible CSRF attack")

// Result contains the token and athlete from a successful login
type Result struct {
	Token     *oauth2.Token
	AthleteID int64
}

const successPage = `<!DOCTYPE html>
<html>
<head><title>Connected to Strava</title></head>
<body style="font-family: system-ui; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0;">
<div style="text-align: center;">
<h1 style="color: #10B981;">Connected!</h1>
<p>You can close this window and return to the terminal.</p>
</div>
</body>
</html>`

// callbackHandler builds the router that receives Strava's redirect and
// forwards the code or error
func callbackHandler(state string, codes chan<- string, errs chan<- error) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET(CallbackPath, func(c *gin.Context) {
		if c.Query("state") != state {
			errs <- ErrStateMismatch
			c.String(http.StatusBadRequest, "State mismatch")
			return
		}
		if msg := c.Query("error"); msg != "" {
			errs <- fmt.Errorf("auth error: %s", msg)
			c.String(http.StatusBadRequest, "Authentication failed")
			return
		}
		code := c.Query("code")
		if code == "" {
			errs <- errors.New("no code in callback")
			c.String(http.StatusBadRequest, "No authorization code")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(successPage))
		codes <- code
	})
	return r
}

// Authenticate runs the OAuth flow with a local callback server. prompt
// receives the URL the user must open.
func Authenticate(ctx context.Context, cfg *oauth2.Config, prompt func(authURL string)) (*Result, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	codes := make(chan string, 1)
	errs := make(chan error, 2)

	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", CallbackPort))
	if err != nil {
		return nil, fmt.Errorf("starting callback server: %w", err)
	}

	server := &http.Server{
		Handler:           callbackHandler(state, codes, errs),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("server error: %w", err)
		}
	}()
	defer shutdownServer(server)

	prompt(cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("approval_prompt", "auto")))

	var code string
	select {
	case code = <-codes:
	case err := <-errs:
		return nil, err
	case <-time.After(AuthTimeout):
		return nil, fmt.Errorf("authentication timeout after %v", AuthTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging code for token: %w", err)
	}

	return &Result{
		Token:     token,
		AthleteID: ExtractAthleteID(token),
	}, nil
}

// generateState creates a random state string for CSRF protection
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownServer(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}
