package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"trainer/internal/analysis"
	"trainer/internal/coach"
	"trainer/internal/service"
)

// chartDays is how much of the load series the TSB chart shows
const chartDays = 60

// DashboardLoader builds the overview for a date, today when zero
type DashboardLoader interface {
	Dashboard(asOf time.Time) (*service.Dashboard, error)
}

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	loader  DashboardLoader
	units   Units
	data    *service.Dashboard
	loading bool
	err     error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(loader DashboardLoader, units Units) DashboardModel {
	return DashboardModel{
		loader:  loader,
		units:   units,
		loading: true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.loader.Dashboard(time.Time{})
	return dashboardDataMsg{data: data, err: err}
}

type dashboardDataMsg struct {
	data *service.Dashboard
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if m.data == nil || m.data.Report == nil {
		return "\n  No workouts yet. Log one with 'trainer add' or sync with Strava."
	}

	var sections []string

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderFormCard(), "  ", m.renderTrendsCard(), "  ", m.renderWeekCard())
	sections = append(sections, topRow)

	if tl := m.data.Report.TrainingLoad; tl != nil && len(tl.Series) > 2 {
		sections = append(sections, m.renderTSBChart(tl.Series))
	}
	if len(m.data.Weeks) > 1 {
		sections = append(sections, m.renderVolumeChart())
	}

	sections = append(sections, m.renderRecentWorkouts())
	sections = append(sections, statusStyle.Render("Press 'r' to refresh, '2' for predictions, '4' for coaching"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderFormCard() string {
	title := cardTitleStyle.Render("Form")
	tl := m.data.Report.TrainingLoad
	if tl == nil {
		return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, "Not enough data"))
	}

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.1f", tl.CurrentFitness), ""),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.1f", tl.CurrentFatigue), ""),
		RenderMetric("Form (TSB)", fmt.Sprintf("%+.1f", tl.CurrentTSB), ""),
		"",
		levelStyle(formLevel(tl.CurrentTSB)).Render(analysis.FormDescription(tl.Status)),
	}
	if m.data.DaysToRace > 0 {
		lines = append(lines, helpDescStyle.Render(fmt.Sprintf("%d days to race day", m.data.DaysToRace)))
	}
	if tl.RaceReady {
		lines = append(lines, successStyle.Render("Race ready"))
	}

	return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m DashboardModel) renderTrendsCard() string {
	title := cardTitleStyle.Render("Trends")
	r := m.data.Report

	var lines []string
	if pt := r.PaceTrend; pt != nil {
		lines = append(lines, RenderMetric("Pace", fmt.Sprintf("%s/wk", signedSeconds(pt.WeeklyChange)), trendArrow(pt)))
	} else {
		lines = append(lines, RenderMetric("Pace", "-", ""))
	}
	if ht := r.HeartRateTrend; ht != nil {
		lines = append(lines, RenderMetric("Heart rate", fmt.Sprintf("%+.1f bpm/wk", ht.WeeklyChange), trendArrow(ht)))
	} else {
		lines = append(lines, RenderMetric("Heart rate", "-", ""))
	}
	if ei := r.EfficiencyIndex; ei != nil {
		lines = append(lines, RenderMetric("Efficiency", string(ei.Change), fmt.Sprintf("%+.1f%%", -ei.PctChange)))
	}
	if rp := r.RacePrediction; rp != nil {
		lines = append(lines, RenderMetric("VDOT", fmt.Sprintf("%.1f", rp.VDOT), ""))
		if t, ok := rp.Time("10K"); ok {
			lines = append(lines, RenderMetric("10K", analysis.FormatDuration(t), ""))
		}
	}
	if n := len(r.Anomalies); n > 0 {
		lines = append(lines, "", warningStyle.Render(fmt.Sprintf("%d anomalies, see coach", n)))
	}

	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("This Week")

	var week analysis.WeekStats
	if n := len(m.data.Weeks); n > 0 && m.data.Weeks[n-1].WeekStart.Equal(analysis.WeekStart(m.data.AsOf)) {
		week = m.data.Weeks[n-1]
	}

	lines := []string{
		RenderMetric("Runs", fmt.Sprintf("%d", week.Run.Count), ""),
		RenderMetric("Run distance", m.units.FormatDistance(week.Run.Km), ""),
		RenderMetric("Rides", fmt.Sprintf("%d", week.Bike.Count), ""),
		RenderMetric("Ride distance", m.units.FormatDistance(week.Bike.Km), ""),
		RenderMetric("Time", analysis.FormatDuration(week.Total.Minutes), ""),
	}

	return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m DashboardModel) renderTSBChart(series []analysis.FitnessMetrics) string {
	if len(series) > chartDays {
		series = series[len(series)-chartDays:]
	}
	tsb := make([]float64, len(series))
	ctl := make([]float64, len(series))
	for i, p := range series {
		tsb[i] = p.TSB
		ctl[i] = p.CTL
	}

	title := cardTitleStyle.Render(fmt.Sprintf("Form (TSB) and Fitness (CTL), last %d days", len(series)))
	graph := asciigraph.PlotMany([][]float64{tsb, ctl},
		asciigraph.Height(8),
		asciigraph.Width(70),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Goldenrod, asciigraph.MediumPurple),
	)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderVolumeChart() string {
	km := make([]float64, len(m.data.Weeks))
	for i, w := range m.data.Weeks {
		km[i] = m.units.Distance(w.Total.Km)
	}

	title := cardTitleStyle.Render(fmt.Sprintf("Weekly Volume (%s)", m.units.DistanceLabel()))
	graph := asciigraph.Plot(km,
		asciigraph.Height(6),
		asciigraph.Width(70),
		asciigraph.Precision(0),
	)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderRecentWorkouts() string {
	title := cardTitleStyle.Render("Recent Workouts")

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-5s  %-10s  %9s  %8s  %10s  %4s",
		"Date", "Sport", "Type", "Distance", "Time", "Pace", "HR"))
	rows := []string{header}
	for i, w := range m.data.Recent {
		if i >= 5 {
			break
		}
		rows = append(rows, tableRowStyle.Render(workoutLine(w, m.units)))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

// workoutLine renders one workout for the dashboard and list tables
func workoutLine(w analysis.WorkoutRecord, units Units) string {
	pace := "-"
	if p, ok := w.Pace(); ok {
		pace = units.FormatPace(p)
	} else if s, ok := w.Speed(); ok {
		pace = fmt.Sprintf("%.1f km/h", s)
	}
	hr := "-"
	if w.HasHeartRate() {
		hr = fmt.Sprintf("%.0f", w.AvgHeartRate)
	}
	return fmt.Sprintf("%-10s  %-5s  %-10s  %9s  %8s  %10s  %4s",
		w.Day().Format("2006-01-02"),
		w.Sport,
		truncateName(w.Type, 10),
		units.FormatDistance(w.DistanceKm),
		analysis.FormatDuration(w.DurationMin),
		pace,
		hr,
	)
}

func trendArrow(t *analysis.TrendAnalysis) string {
	switch {
	case t.Trend == analysis.TrendStable:
		return "→"
	case t.Improving:
		return "↑"
	default:
		return "↓"
	}
}

// signedSeconds formats a min/km change as signed seconds, e.g. "-12s"
func signedSeconds(minutes float64) string {
	return fmt.Sprintf("%+.0fs", minutes*60)
}

func formLevel(tsb float64) coach.Level {
	switch {
	case tsb > 5:
		return coach.LevelSuccess
	case tsb > -10:
		return coach.LevelInfo
	case tsb > -20:
		return coach.LevelWarning
	default:
		return coach.LevelDanger
	}
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
