// Package tui provides a terminal dashboard over the Jenkins job catalog.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jenkins-agent/src/facade"
)

const fetchTimeout = 30 * time.Second

type jobsMsg []Item

type errMsg struct{ err error }

// Model is the Bubble Tea model for the job dashboard. It lists jobs with
// their last build status and refreshes on demand.
type Model struct {
	facade  *facade.Facade
	list    list.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

// NewModel creates a dashboard model over a Jenkins facade.
func NewModel(f *facade.Facade) Model {
	delegate := newJobDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cursorStyle

	return Model{
		facade:  f,
		list:    l,
		spinner: sp,
		loading: true,
	}
}

// Init starts the spinner and the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchJobs(m.facade))
}

// fetchJobs loads the top-level job list off the UI loop.
func fetchJobs(f *facade.Facade) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		jobs, err := f.ListJobs(ctx, "")
		if err != nil {
			return errMsg{err}
		}

		items := make([]Item, len(jobs))
		for i, job := range jobs {
			items[i] = Item{Job: job}
		}
		return jobsMsg(items)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, tea.Batch(m.spinner.Tick, fetchJobs(m.facade))
			}
		}

	case jobsMsg:
		m.loading = false
		items := make([]list.Item, len(msg))
		for i, item := range msg {
			items[i] = item
		}
		m.list.SetItems(items)

	case errMsg:
		m.loading = false
		m.err = msg.err

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the dashboard.
func (m Model) View() string {
	if m.height == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render("Jenkins Jobs")

	var body string
	switch {
	case m.loading:
		body = fmt.Sprintf("%s loading jobs...", m.spinner.View())
	case m.err != nil:
		body = errorStyle.Render(fmt.Sprintf("error: %v", m.err))
	default:
		body = m.list.View()
	}

	help := helpStyle.Render("↑/↓ navigate • / filter • r refresh • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}
