package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trainer/internal/analysis"
)

// PredictionsModel is the race predictions screen model
type PredictionsModel struct {
	loader   DashboardLoader
	units    Units
	report   *analysis.Report
	viewport viewport.Model
	loading  bool
	err      error
	ready    bool
}

// NewPredictionsModel creates a new predictions model
func NewPredictionsModel(loader DashboardLoader, units Units, width, height int) PredictionsModel {
	m := PredictionsModel{
		loader:  loader,
		units:   units,
		loading: true,
	}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}
	return m
}

// Init initializes the predictions screen
func (m PredictionsModel) Init() tea.Cmd {
	return m.loadPredictions
}

type predictionsLoadedMsg struct {
	report *analysis.Report
	err    error
}

func (m PredictionsModel) loadPredictions() tea.Msg {
	d, err := m.loader.Dashboard(time.Time{})
	if err != nil {
		return predictionsLoadedMsg{err: err}
	}
	return predictionsLoadedMsg{report: d.Report}
}

// Update handles messages
func (m PredictionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case predictionsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.renderContent())

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadPredictions
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the predictions screen
func (m PredictionsModel) View() string {
	if m.loading {
		return "\n  Loading race predictions..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: refresh")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m PredictionsModel) renderContent() string {
	sections := []string{"", cardTitleStyle.Render("Race Time Predictions"), ""}

	if m.report == nil || m.report.RacePrediction == nil {
		sections = append(sections, m.renderEmptyState())
	} else {
		rp := m.report.RacePrediction
		sections = append(sections, m.renderVDOTInfo(rp), m.renderPredictionsTable(rp))
	}
	if m.report != nil && m.report.EfficiencyIndex != nil {
		sections = append(sections, m.renderEfficiency(m.report.EfficiencyIndex))
	}
	sections = append(sections, m.renderAboutSection())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PredictionsModel) renderEmptyState() string {
	lines := []string{
		helpDescStyle.Render("  No race predictions available yet."),
		"",
		helpDescStyle.Render(fmt.Sprintf("  Predictions need at least %d runs of %.0f km or more lasting %.0f minutes or more.",
			analysis.MinVDOTCandidates, analysis.MinVDOTDistanceKm, analysis.MinVDOTDurationMin)),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m PredictionsModel) renderVDOTInfo(rp *analysis.RacePrediction) string {
	lines := []string{
		fmt.Sprintf("  VDOT: %s (%s)", accentStyle.Render(fmt.Sprintf("%.1f", rp.VDOT)), successStyle.Render(rp.Label)),
		helpDescStyle.Render("  Based on:"),
	}
	for _, est := range rp.BasedOn {
		r := est.Record
		pace, _ := r.Pace()
		lines = append(lines, helpDescStyle.Render(fmt.Sprintf("    %s  %s in %s (%s)  VDOT %.1f",
			r.Day().Format("2006-01-02"),
			m.units.FormatDistance(r.DistanceKm),
			analysis.FormatDuration(r.DurationMin),
			m.units.FormatPace(pace),
			est.VDOT,
		)))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m PredictionsModel) renderPredictionsTable(rp *analysis.RacePrediction) string {
	lines := []string{
		sectionStyle.Render("── Predicted Times " + strings.Repeat("─", 36)),
		tableHeaderStyle.Render(fmt.Sprintf("  %-12s  %10s  %10s  %12s", "Race", "Distance", "Time", "Pace")),
	}

	for _, t := range rp.Times {
		row := fmt.Sprintf("  %-12s  %10s  %10s  %12s",
			t.Name,
			m.units.FormatDistance(t.DistanceKm),
			analysis.FormatDuration(t.DurationMin),
			m.units.FormatPace(t.DurationMin/t.DistanceKm),
		)
		if t.Name == rp.Target.Name {
			row = metricValueStyle.Render(row)
		}
		lines = append(lines, row)
	}

	lines = append(lines, "", fmt.Sprintf("  Target pace for the %s: %s", rp.Target.Name, successStyle.Render(m.units.FormatPace(rp.TargetPace))), "")
	return strings.Join(lines, "\n")
}

func (m PredictionsModel) renderEfficiency(ei *analysis.EfficiencyIndex) string {
	lines := []string{
		sectionStyle.Render("── Running Efficiency " + strings.Repeat("─", 33)),
		RenderMetric("  First half", fmt.Sprintf("%.0f", ei.FirstHalfMean), ""),
		RenderMetric("  Second half", fmt.Sprintf("%.0f", ei.SecondHalfMean), ""),
		RenderMetric("  Change", string(ei.Change), fmt.Sprintf("%+.1f%%", -ei.PctChange)),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m PredictionsModel) renderAboutSection() string {
	lines := []string{
		sectionStyle.Render("── About These Predictions " + strings.Repeat("─", 28)),
		helpDescStyle.Render("  Predictions use Jack Daniels' VDOT model on your three best qualifying runs."),
		helpDescStyle.Render("  Efficiency is pace x heart rate; lower means more speed per beat."),
		"",
	}
	return strings.Join(lines, "\n")
}
