package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	rowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Faint(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusStyles = map[string]lipgloss.Style{
		"success":   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"failed":    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		"unstable":  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"aborted":   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		"disabled":  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		"not built": lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		"folder":    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
)

// statusStyle picks the color for a job status, tolerating the "(building)"
// suffix.
func statusStyle(status string) lipgloss.Style {
	base := strings.TrimSuffix(status, " (building)")
	if style, ok := statusStyles[base]; ok {
		return style
	}
	return rowStyle
}
