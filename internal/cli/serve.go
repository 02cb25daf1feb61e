package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"trainer/internal/server"
	"trainer/internal/tui"
)

func serveCmd(e *env) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workouts, analyses, err := e.services()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = e.cfg.Server.Address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			e.log.WithFields(logrus.Fields{"addr": addr}).Info("starting API server")
			return server.New(workouts, analyses, e.log).Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, default from config")
	return cmd
}

func tuiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal dashboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, e)
		},
	}
}

func runTUI(cmd *cobra.Command, e *env) error {
	if err := e.useLogFile(); err != nil {
		return err
	}
	workouts, analyses, err := e.services()
	if err != nil {
		return err
	}

	// Sync is only offered once Strava is configured and authorized
	syncSvc, err := e.syncService()
	if err != nil {
		e.log.WithError(err).Info("strava sync unavailable")
		syncSvc = nil
	}

	app := tui.NewApp(workouts, analyses, syncSvc, tui.NewUnits(e.cfg.Display))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
