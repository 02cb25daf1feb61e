package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trainer/internal/service"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenPredictions
	ScreenWorkouts
	ScreenCoach
	ScreenSync
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard   DashboardModel
	predictions PredictionsModel
	workoutList WorkoutsModel
	coach       CoachModel
	syncScreen  SyncModel
	help        HelpModel

	// Services
	workouts *service.WorkoutService
	analyses *service.AnalysisService
	units    Units

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates a new App with all dependencies. sync may be nil when
// Strava is not configured.
func NewApp(workouts *service.WorkoutService, analyses *service.AnalysisService, sync *service.SyncService, units Units) *App {
	var syncer Syncer
	if sync != nil {
		syncer = sync
	}
	return &App{
		screen:      ScreenDashboard,
		workouts:    workouts,
		analyses:    analyses,
		units:       units,
		dashboard:   NewDashboardModel(analyses, units),
		predictions: NewPredictionsModel(analyses, units, 0, 0),
		workoutList: NewWorkoutsModel(workouts, units),
		coach:       NewCoachModel(analyses, 0, 0),
		syncScreen:  NewSyncModel(syncer),
		help:        NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings (unless a sync or delete prompt owns the keyboard)
		if !a.syncScreen.syncing && !a.workoutList.confirm {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenDashboard
				a.dashboard = NewDashboardModel(a.analyses, a.units)
				return a, a.dashboard.Init()
			case "2":
				a.screen = ScreenPredictions
				return a, a.predictions.Init()
			case "3":
				a.screen = ScreenWorkouts
				return a, a.workoutList.Init()
			case "4":
				a.screen = ScreenCoach
				return a, a.coach.Init()
			case "5", "s":
				if a.screen != ScreenSync {
					a.screen = ScreenSync
					return a, a.syncScreen.Init()
				}
				// Let 's' fall through to sync screen when already there
			case "?":
				if a.screen != ScreenHelp {
					a.prevScreen = a.screen
				}
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Viewport screens size themselves even while hidden
		var m tea.Model
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m, cmd = a.predictions.Update(msg)
		a.predictions = m.(PredictionsModel)
		cmds = append(cmds, cmd)
		m, cmd = a.coach.Update(msg)
		a.coach = m.(CoachModel)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case SyncCompleteMsg:
		a.status = "Sync finished"
		a.dashboard = NewDashboardModel(a.analyses, a.units)
		return a, a.dashboard.Init()

	case WorkoutDeletedMsg:
		if msg.Err != nil {
			a.status = "Delete failed: " + msg.Err.Error()
		} else {
			a.status = "Deleted workout " + msg.ID
		}
		m, cmd := a.workoutList.Update(msg)
		a.workoutList = m.(WorkoutsModel)
		a.dashboard = NewDashboardModel(a.analyses, a.units)
		return a, tea.Batch(cmd, a.dashboard.Init())

	case dashboardDataMsg:
		m, cmd := a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
		return a, cmd

	case syncProgressMsg, SyncDoneMsg:
		// Sync keeps running when the user switches screens
		m, cmd := a.syncScreen.Update(msg)
		a.syncScreen = m.(SyncModel)
		return a, cmd
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenPredictions:
		var m tea.Model
		m, cmd = a.predictions.Update(msg)
		a.predictions = m.(PredictionsModel)
	case ScreenWorkouts:
		var m tea.Model
		m, cmd = a.workoutList.Update(msg)
		a.workoutList = m.(WorkoutsModel)
	case ScreenCoach:
		var m tea.Model
		m, cmd = a.coach.Update(msg)
		a.coach = m.(CoachModel)
	case ScreenSync:
		var m tea.Model
		m, cmd = a.syncScreen.Update(msg)
		a.syncScreen = m.(SyncModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenPredictions:
		content = a.predictions.View()
	case ScreenWorkouts:
		content = a.workoutList.View()
	case ScreenCoach:
		content = a.coach.View()
	case ScreenSync:
		content = a.syncScreen.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Endurance Training Analyzer")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Predictions", ScreenPredictions},
		{"3", "Workouts", ScreenWorkouts},
		{"4", "Coach", ScreenCoach},
		{"5", "Sync", ScreenSync},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}

// SyncCompleteMsg is sent when sync finishes
type SyncCompleteMsg struct{}
