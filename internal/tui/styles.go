package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trainer/internal/coach"
)

// Palette follows the heart rate zone colours: blue recovery, green
// aerobic, amber threshold, red anaerobic
var (
	accentColor  = lipgloss.Color("#0EA5E9")
	goodColor    = lipgloss.Color("#22C55E")
	cautionColor = lipgloss.Color("#F59E0B")
	badColor     = lipgloss.Color("#DC2626")
	calmColor    = lipgloss.Color("#60A5FA")
	dimColor     = lipgloss.Color("#71717A")
	brightColor  = lipgloss.Color("#FAFAFA")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(brightColor).Background(accentColor).Padding(0, 1).MarginBottom(1)

	navStyle         = lipgloss.NewStyle().Foreground(dimColor).MarginBottom(1)
	navActiveStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accentColor)
	navInactiveStyle = lipgloss.NewStyle().Foreground(dimColor)

	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(dimColor).Padding(0, 2)
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(goodColor)
	accentStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	metricLabelStyle = lipgloss.NewStyle().Foreground(dimColor).Width(16)
	metricValueStyle = lipgloss.NewStyle().Bold(true).Foreground(brightColor)

	tableHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1)
	tableRowStyle      = lipgloss.NewStyle().Padding(0, 1)
	tableSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(brightColor).Background(accentColor).Padding(0, 1)

	statusStyle  = lipgloss.NewStyle().Foreground(dimColor).MarginTop(1)
	errorStyle   = lipgloss.NewStyle().Foreground(badColor)
	successStyle = lipgloss.NewStyle().Foreground(goodColor)
	warningStyle = lipgloss.NewStyle().Foreground(cautionColor)
	infoStyle    = lipgloss.NewStyle().Foreground(calmColor)

	helpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	helpDescStyle = lipgloss.NewStyle().Foreground(dimColor)
)

// RenderMetric renders "label value trend". Arrows pointing up are
// improvements; a leading '+' or '-' is coloured the same way.
func RenderMetric(label, value, trend string) string {
	trendStyle := helpDescStyle
	switch {
	case strings.HasPrefix(trend, "↑"), strings.HasPrefix(trend, "+"):
		trendStyle = successStyle
	case strings.HasPrefix(trend, "↓"), strings.HasPrefix(trend, "-"):
		trendStyle = errorStyle
	}
	return metricLabelStyle.Render(label) + metricValueStyle.Render(value) + trendStyle.Render(" "+trend)
}

// RenderProgressBar renders a bar of width cells filled to percent (0-1)
func RenderProgressBar(percent float64, width int) string {
	filled := max(0, min(width, int(percent*float64(width))))
	return successStyle.Render(strings.Repeat("█", filled)) +
		helpDescStyle.Render(strings.Repeat("░", width-filled))
}

// levelStyle colours advice by severity
func levelStyle(level coach.Level) lipgloss.Style {
	switch level {
	case coach.LevelSuccess:
		return successStyle
	case coach.LevelWarning:
		return warningStyle
	case coach.LevelDanger:
		return errorStyle
	default:
		return infoStyle
	}
}

// RenderKeyHelp renders a key binding help item
func RenderKeyHelp(key, desc string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(desc)
}
