package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trainer/internal/coach"
	"trainer/internal/service"
)

// CoachModel shows advice and training log warnings
type CoachModel struct {
	loader   DashboardLoader
	data     *service.Dashboard
	viewport viewport.Model
	loading  bool
	err      error
	ready    bool
}

// NewCoachModel creates a new coach model
func NewCoachModel(loader DashboardLoader, width, height int) CoachModel {
	m := CoachModel{loader: loader, loading: true}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}
	return m
}

// Init initializes the coach screen
func (m CoachModel) Init() tea.Cmd {
	return m.load
}

type coachLoadedMsg struct {
	data *service.Dashboard
	err  error
}

func (m CoachModel) load() tea.Msg {
	d, err := m.loader.Dashboard(time.Time{})
	return coachLoadedMsg{data: d, err: err}
}

// Update handles messages
func (m CoachModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case coachLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
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
			return m, m.load
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the coach screen
func (m CoachModel) View() string {
	if m.loading {
		return "\n  Loading advice..."
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

func (m CoachModel) renderContent() string {
	if m.data == nil {
		return ""
	}
	sections := []string{"", cardTitleStyle.Render("Coach")}
	sections = append(sections, renderAdvice(m.data.Advice)...)

	if len(m.data.Warnings) > 0 {
		sections = append(sections, "", cardTitleStyle.Render("Training Log"))
		sections = append(sections, renderAdvice(m.data.Warnings)...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

var levelIcons = map[coach.Level]string{
	coach.LevelSuccess: "✓",
	coach.LevelInfo:    "i",
	coach.LevelWarning: "!",
	coach.LevelDanger:  "✗",
}

func renderAdvice(advice []coach.Advice) []string {
	out := make([]string, 0, len(advice))
	for _, a := range advice {
		style := levelStyle(a.Level)
		title := style.Bold(true).Render(fmt.Sprintf("%s %s", levelIcons[a.Level], a.Title))
		body := helpDescStyle.Render("  " + strings.ReplaceAll(wrap(a.Message, 76), "\n", "\n  "))
		out = append(out, "  "+title, "  "+body, "")
	}
	return out
}

// wrap breaks text on spaces so no line exceeds width
func wrap(text string, width int) string {
	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
