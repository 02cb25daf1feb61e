package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trainer/internal/service"
)

// Syncer imports workouts from Strava
type Syncer interface {
	SyncAll(ctx context.Context, progress chan<- service.SyncProgress) (*service.SyncResult, error)
	RateLimitStatus() (shortRemaining, dailyRemaining int)
}

// SyncModel is the sync screen model
type SyncModel struct {
	syncer   Syncer
	syncing  bool
	progress service.SyncProgress
	result   *service.SyncResult
	err      error
	done     bool
}

// NewSyncModel creates a new sync model. syncer is nil when Strava is not
// configured.
func NewSyncModel(syncer Syncer) SyncModel {
	return SyncModel{syncer: syncer}
}

// Init initializes the sync screen
func (m SyncModel) Init() tea.Cmd {
	return nil
}

// SyncDoneMsg is sent when sync finishes
type SyncDoneMsg struct {
	Result *service.SyncResult
	Err    error
}

type syncProgressMsg struct {
	progress service.SyncProgress
	next     tea.Cmd
}

// Update handles messages
func (m SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncProgressMsg:
		m.progress = msg.progress
		return m, msg.next

	case SyncDoneMsg:
		m.syncing = false
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, func() tea.Msg { return SyncCompleteMsg{} }

	case tea.KeyMsg:
		if !m.syncing && m.syncer != nil {
			switch msg.String() {
			case "enter", "s":
				m.syncing = true
				m.done = false
				m.err = nil
				m.result = nil
				m.progress = service.SyncProgress{}
				return m, m.runSync()
			}
		}
	}
	return m, nil
}

// runSync starts the sync and streams its progress back as messages
func (m SyncModel) runSync() tea.Cmd {
	syncer := m.syncer
	return func() tea.Msg {
		progress := make(chan service.SyncProgress)
		done := make(chan SyncDoneMsg, 1)
		go func() {
			result, err := syncer.SyncAll(context.Background(), progress)
			done <- SyncDoneMsg{Result: result, Err: err}
		}()
		return waitForSync(progress, done)()
	}
}

func waitForSync(progress <-chan service.SyncProgress, done <-chan SyncDoneMsg) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-progress
		if !ok {
			return <-done
		}
		return syncProgressMsg{progress: p, next: waitForSync(progress, done)}
	}
}

// View renders the sync screen
func (m SyncModel) View() string {
	sections := []string{cardTitleStyle.Render("Strava Sync")}

	switch {
	case m.syncer == nil:
		sections = append(sections, helpDescStyle.Render("\n  Strava is not configured. Add your client ID and secret to the config file\n  and run 'trainer login'."))
	case m.err != nil:
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
		sections = append(sections, "\n"+statusStyle.Render("  Press 's' or Enter to retry"))
	case m.done:
		sections = append(sections, successStyle.Render("\n  Sync complete!"))
		sections = append(sections, m.renderSummary())
		sections = append(sections, "\n"+statusStyle.Render("  Press '1' to go to dashboard"))
	case m.syncing:
		sections = append(sections, m.renderProgress())
	default:
		sections = append(sections, m.renderStartPrompt())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m SyncModel) renderStartPrompt() string {
	short, daily := m.syncer.RateLimitStatus()
	lines := []string{
		"",
		"  This will import your runs and rides from Strava.",
		"  Activities already imported are updated in place.",
		"",
		statusStyle.Render(fmt.Sprintf("  API limits: %d/100 (15min), %d/1000 (daily)", short, daily)),
		"",
		statusStyle.Render("  Press 's' or Enter to start sync"),
	}
	return strings.Join(lines, "\n")
}

func (m SyncModel) renderProgress() string {
	lines := []string{"", "  Syncing with Strava...", ""}

	p := m.progress
	switch p.Phase {
	case service.PhaseImport:
		pct := 0.0
		if p.Total > 0 {
			pct = float64(p.Completed) / float64(p.Total)
		}
		lines = append(lines, fmt.Sprintf("  Importing %d/%d  %s", p.Completed, p.Total, RenderProgressBar(pct, 30)))
		if p.Current != "" {
			lines = append(lines, helpDescStyle.Render("  "+truncateName(p.Current, 40)))
		}
	default:
		lines = append(lines, fmt.Sprintf("  Fetching activities... %d so far", p.Completed))
	}

	lines = append(lines, "", statusStyle.Render("  This may take a moment..."))
	return strings.Join(lines, "\n")
}

func (m SyncModel) renderSummary() string {
	if m.result == nil {
		return ""
	}
	r := m.result
	lines := []string{""}

	if r.WorkoutsImported > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d workouts imported", r.WorkoutsImported)))
	} else {
		lines = append(lines, statusStyle.Render("  No new activities"))
	}
	if r.Skipped > 0 {
		lines = append(lines, statusStyle.Render(fmt.Sprintf("  %d activities skipped (not a run or ride)", r.Skipped)))
	}
	if len(r.Errors) > 0 {
		lines = append(lines, "", warningStyle.Render(fmt.Sprintf("  %d errors occurred", len(r.Errors))))
	}
	return strings.Join(lines, "\n")
}
