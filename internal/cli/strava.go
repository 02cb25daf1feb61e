package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"trainer/internal/auth"
	"trainer/internal/service"
	"trainer/internal/store"
	"trainer/internal/strava"
)

// errNotLoggedIn asks the user to authorize Strava first
var errNotLoggedIn = errors.New("not logged in to Strava, run 'trainer login'")

// syncService builds a sync service from the stored Strava tokens
func (e *env) syncService() (*service.SyncService, error) {
	if err := e.cfg.ValidateStrava(); err != nil {
		return nil, err
	}
	db, err := e.openDB()
	if err != nil {
		return nil, err
	}

	stored, err := db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		return nil, errNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("checking auth: %w", err)
	}

	if stored.Expired(time.Now()) {
		e.log.WithFields(logrus.Fields{"expired_at": stored.ExpiresAt}).Debug("access token expired, refreshing on first request")
	}
	tokenSource := auth.NewTokenSource(auth.NewOAuthConfig(e.cfg.Strava), auth.TokenFromAuth(stored), db, e.log)
	client := strava.NewClient(tokenSource)
	return service.NewSyncService(client, db, e.log), nil
}

func syncCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Import new runs and rides from Strava",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.syncService()
			if err != nil {
				return err
			}

			progress := make(chan service.SyncProgress)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for p := range progress {
					if p.Phase == service.PhaseImport {
						fmt.Fprintf(cmd.ErrOrStderr(), "\rImporting %d/%d", p.Completed, p.Total)
					} else {
						fmt.Fprintf(cmd.ErrOrStderr(), "\rFetched %d activities", p.Completed)
					}
				}
				fmt.Fprintln(cmd.ErrOrStderr())
			}()

			result, err := svc.SyncAll(cmd.Context(), progress)
			<-done
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d workouts from %d activities (%d skipped)\n",
				result.WorkoutsImported, result.ActivitiesFetched, result.Skipped)
			for _, syncErr := range result.Errors {
				e.log.WithError(syncErr).Warn("activity not imported")
			}
			return nil
		},
	}
}

func loginCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize access to your Strava activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.cfg.ValidateStrava(); err != nil {
				return err
			}
			db, err := e.openDB()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result, err := auth.Authenticate(cmd.Context(), auth.NewOAuthConfig(e.cfg.Strava), func(authURL string) {
				fmt.Fprintln(out, "Open this URL in your browser to authorize:")
				fmt.Fprintf(out, "\n  %s\n\n", authURL)
				fmt.Fprintln(out, "Waiting for authorization...")
			})
			if err != nil {
				return fmt.Errorf("authentication: %w", err)
			}

			if err := db.SaveAuth(auth.AuthFromToken(result.Token, result.AthleteID)); err != nil {
				return fmt.Errorf("saving auth: %w", err)
			}
			e.log.WithFields(logrus.Fields{"athlete_id": result.AthleteID}).Info("strava authorized")
			fmt.Fprintf(out, "Successfully authenticated as athlete %d!\n", result.AthleteID)
			return nil
		},
	}
}

func logoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored Strava tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := e.openDB()
			if err != nil {
				return err
			}
			if err := db.DeleteAuth(); err != nil {
				if errors.Is(err, store.ErrNoAuth) {
					return errNotLoggedIn
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out of Strava.")
			return nil
		},
	}
}
