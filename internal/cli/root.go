package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"trainer/internal/config"
	"trainer/internal/logging"
	"trainer/internal/service"
	"trainer/internal/store"
)

// env carries what every command needs once the config is loaded
type env struct {
	cfg *config.Config
	log *logrus.Logger
	db  *store.DB

	closers []io.Closer
}

// New returns the root trainer command
func New() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:   "trainer",
		Short: "Endurance training analytics",
		Long: `Track runs and rides, follow fitness and fatigue, and predict race times.
Workouts can be logged by hand or imported from Strava.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, e)
		},
	}

	cmd.AddCommand(
		tuiCmd(e),
		serveCmd(e),
		analyzeCmd(e),
		addCmd(e),
		listCmd(e),
		deleteCmd(e),
		exportCmd(e),
		syncCmd(e),
		loginCmd(e),
		logoutCmd(e),
		initCmd(),
	)
	return cmd
}

func (e *env) load(cmd *cobra.Command) error {
	if cmd.Name() == "init" {
		return nil
	}

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		return fmt.Errorf("invalid config in %s: %w", configDir, err)
	}
	e.cfg = cfg

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	e.log = logger
	return nil
}

// useLogFile redirects logging to the log file while the terminal UI runs
func (e *env) useLogFile() error {
	logger, closer, err := logging.NewFile(e.cfg.Log)
	if err != nil {
		return err
	}
	e.log = logger
	e.closers = append(e.closers, closer)
	return nil
}

func (e *env) openDB() (*store.DB, error) {
	if e.db != nil {
		return e.db, nil
	}
	db, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	e.db = db
	e.closers = append(e.closers, db)
	return db, nil
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
	e.closers = nil
	e.db = nil
}

// services opens the database and builds the workout and analysis services
func (e *env) services() (*service.WorkoutService, *service.AnalysisService, error) {
	db, err := e.openDB()
	if err != nil {
		return nil, nil, err
	}
	workouts := service.NewWorkoutService(db, e.log)
	analyses := service.NewAnalysisService(db, e.cfg.Athlete, e.log)
	return workouts, analyses, nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an example config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(); err == nil {
				return errors.New("config file already exists")
			} else if !errors.Is(err, config.ErrNoConfig) {
				return err
			}
			if err := config.CreateExample(); err != nil {
				return fmt.Errorf("creating example config: %w", err)
			}
			configDir, _ := config.GetConfigDir()
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s/config.json\n", configDir)
			fmt.Fprintln(cmd.OutOrStdout(), "Add your Strava API credentials from https://www.strava.com/settings/api to enable sync.")
			return nil
		},
	}
}
