package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	sections := []string{cardTitleStyle.Render("Keyboard Shortcuts")}

	sections = append(sections, m.renderSection("Navigation", []keyHelp{
		{"1", "Dashboard"},
		{"2", "Race predictions"},
		{"3", "Workouts list"},
		{"4", "Coach"},
		{"5", "Strava sync"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	}))
	sections = append(sections, m.renderSection("Screens", []keyHelp{
		{"r", "Refresh data"},
		{"j / k", "Scroll or move cursor"},
		{"pgup / pgdn", "Page through workouts"},
		{"d", "Delete selected workout"},
		{"s / enter", "Start sync"},
	}))
	sections = append(sections, m.renderMetricsHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	lines := []string{"", sectionStyle.Render(title)}
	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}
	return strings.Join(lines, "\n")
}

func (m HelpModel) renderMetricsHelp() string {
	lines := []string{"", sectionStyle.Render("Metrics Explained"), ""}

	metrics := []struct {
		name string
		desc string
	}{
		{"TRIMP", "Training impulse: duration weighted by heart rate reserve."},
		{"CTL (Fitness)", "Chronic training load, a 42 day exponential average of TRIMP."},
		{"ATL (Fatigue)", "Acute training load, a 7 day exponential average of TRIMP."},
		{"TSB (Form)", "Training stress balance = CTL - ATL. Between +5 and +25 is race ready."},
		{"VDOT", "Aerobic capacity estimate from your best runs, used to predict race times."},
		{"Efficiency", "Pace x heart rate. A falling value means more speed per beat."},
	}

	for _, metric := range metrics {
		lines = append(lines, "  "+helpKeyStyle.Render(metric.name), "  "+helpDescStyle.Render(metric.desc), "")
	}
	return strings.Join(lines, "\n")
}
