package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const statusWidth = 20

// jobDelegate renders jobs as single-line table rows with a colored status
// column.
type jobDelegate struct{}

func newJobDelegate() jobDelegate {
	return jobDelegate{}
}

// Height returns the height of a list item.
func (d jobDelegate) Height() int {
	return 1
}

// Spacing returns spacing between items.
func (d jobDelegate) Spacing() int {
	return 0
}

// Update handles item updates.
func (d jobDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders one job row.
func (d jobDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(Item)
	if !ok {
		return
	}

	status := entry.Status()
	statusCol := statusStyle(status).Render(TruncateAndPad(status, statusWidth))

	nameWidth := m.Width() - statusWidth - 6
	if nameWidth < 20 {
		nameWidth = 20
	}
	nameCol := TruncateAndPad(entry.Title(), nameWidth)

	cursor := "  "
	if index == m.Index() {
		cursor = cursorStyle.Render("► ")
	}

	fmt.Fprintf(w, "%s%s │ %s", cursor, nameCol, statusCol)
}
