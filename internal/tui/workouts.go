package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trainer/internal/analysis"
)

// WorkoutManager lists and deletes workouts
type WorkoutManager interface {
	List() ([]analysis.WorkoutRecord, error)
	Delete(id string) error
}

// WorkoutsModel is the workouts list screen model
type WorkoutsModel struct {
	manager  WorkoutManager
	units    Units
	workouts []analysis.WorkoutRecord // newest first
	cursor   int
	offset   int
	pageSize int
	confirm  bool
	loading  bool
	err      error
}

// NewWorkoutsModel creates a new workouts model
func NewWorkoutsModel(manager WorkoutManager, units Units) WorkoutsModel {
	return WorkoutsModel{
		manager:  manager,
		units:    units,
		pageSize: 15,
		loading:  true,
	}
}

// Init initializes the workouts screen
func (m WorkoutsModel) Init() tea.Cmd {
	return m.load
}

type workoutsLoadedMsg struct {
	workouts []analysis.WorkoutRecord
	err      error
}

// WorkoutDeletedMsg is sent after a workout is removed
type WorkoutDeletedMsg struct {
	ID  string
	Err error
}

func (m WorkoutsModel) load() tea.Msg {
	all, err := m.manager.List()
	if err != nil {
		return workoutsLoadedMsg{err: err}
	}
	newest := make([]analysis.WorkoutRecord, len(all))
	for i, w := range all {
		newest[len(all)-1-i] = w
	}
	return workoutsLoadedMsg{workouts: newest}
}

func (m WorkoutsModel) selected() (analysis.WorkoutRecord, bool) {
	i := m.offset + m.cursor
	if i < 0 || i >= len(m.workouts) {
		return analysis.WorkoutRecord{}, false
	}
	return m.workouts[i], true
}

// Update handles messages
func (m WorkoutsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workoutsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.workouts = msg.workouts
		if m.offset >= len(m.workouts) {
			m.offset, m.cursor = 0, 0
		}
		if m.cursor >= m.pageLen() {
			m.cursor = max(0, m.pageLen()-1)
		}

	case WorkoutDeletedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.loading = true
		return m, m.load

	case tea.KeyMsg:
		if m.confirm {
			m.confirm = false
			if msg.String() == "y" {
				if w, ok := m.selected(); ok {
					return m, m.delete(w.ID)
				}
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.offset > 0 {
				m.offset -= m.pageSize
				m.cursor = m.pageSize - 1
			}
		case "down", "j":
			if m.cursor < m.pageLen()-1 {
				m.cursor++
			} else if m.offset+m.pageSize < len(m.workouts) {
				m.offset += m.pageSize
				m.cursor = 0
			}
		case "pgup":
			if m.offset > 0 {
				m.offset = max(0, m.offset-m.pageSize)
				m.cursor = 0
			}
		case "pgdown":
			if m.offset+m.pageSize < len(m.workouts) {
				m.offset += m.pageSize
				m.cursor = 0
			}
		case "d":
			if _, ok := m.selected(); ok {
				m.confirm = true
			}
		case "r":
			m.loading = true
			return m, m.load
		}
	}
	return m, nil
}

func (m WorkoutsModel) delete(id string) tea.Cmd {
	return func() tea.Msg {
		return WorkoutDeletedMsg{ID: id, Err: m.manager.Delete(id)}
	}
}

func (m WorkoutsModel) pageLen() int {
	return min(m.pageSize, len(m.workouts)-m.offset)
}

// View renders the workouts list
func (m WorkoutsModel) View() string {
	if m.loading {
		return "\n  Loading workouts..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if len(m.workouts) == 0 {
		return "\n  No workouts found. Log one with 'trainer add' or sync with Strava."
	}

	end := m.offset + m.pageLen()
	sections := []string{
		cardTitleStyle.Render(fmt.Sprintf("Workouts (%d-%d of %d)", m.offset+1, end, len(m.workouts))),
		tableHeaderStyle.Render(fmt.Sprintf("  %-10s  %-5s  %-10s  %9s  %8s  %10s  %4s",
			"Date", "Sport", "Type", "Distance", "Time", "Pace", "HR")),
	}

	for i, w := range m.workouts[m.offset:end] {
		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render("> "+workoutLine(w, m.units)))
		} else {
			sections = append(sections, tableRowStyle.Render("  "+workoutLine(w, m.units)))
		}
	}

	if w, ok := m.selected(); ok && w.Notes != "" {
		sections = append(sections, "", helpDescStyle.Render("  "+w.Notes))
	}

	if m.confirm {
		sections = append(sections, warningStyle.Render("\n  Delete this workout? (y/n)"))
	} else {
		sections = append(sections, statusStyle.Render("\n  j/k: navigate  pgup/pgdn: page  d: delete  r: refresh"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
