// Package tui provides the interactive terminal dashboard for Punchcard.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/punchcard-cli/punchcard/internal/apply"
	"github.com/punchcard-cli/punchcard/internal/clockify"
	"github.com/punchcard-cli/punchcard/internal/output"
	"github.com/punchcard-cli/punchcard/internal/session"
)

// tickMsg is sent when the clock ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refetched.
type refreshMsg struct{}

// fetchedMsg is sent when a background refetch completes. The fetched list
// rides on the message so the UI goroutine never reads session caches that a
// background fetch may be writing.
type fetchedMsg struct {
	entries []clockify.TimeEntry
	ok      bool
}

// DashboardModel is the main bubbletea model for the dashboard. It is
// read-only over the session: it refetches and renders, never mutates.
type DashboardModel struct {
	sess *session.Session

	// entries is the model's own copy of the last fetched list, updated
	// only on the UI goroutine via fetchedMsg.
	entries []clockify.TimeEntry

	// UI state
	width      int
	height     int
	message    string
	messageExp time.Time

	maxEntries int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Session    *session.Session
	MaxEntries int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.MaxEntries == 0 {
		config.MaxEntries = 8
	}

	m := &DashboardModel{
		sess:       config.Session,
		maxEntries: config.MaxEntries,
	}

	// Initial size before the first WindowSizeMsg arrives.
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.width, m.height = w, h
	}
	return m
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.refreshCmd())
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case refreshMsg:
		return m, m.fetchCmd()

	case fetchedMsg:
		// A failed refresh keeps the last good list; the tracker error is
		// rendered separately.
		if msg.ok {
			m.entries = msg.entries
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.setMessage("Refreshing...", 2*time.Second)
		return m, m.fetchCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if !m.sess.Configured() {
		sections = append(sections, StyleWarning.Render("Not signed in. Run 'punchcard login' first."))
		sections = append(sections, HelpBar())
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}
	if err := m.sess.Tracker.LastError(session.KeyTimeEntries); err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", err)))
	}

	sections = append(sections, m.renderEntries())
	sections = append(sections, m.renderTemplates())
	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Punchcard Dashboard")
	now := time.Now().Format("Mon Jan 2, 15:04:05")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", StyleSubtitle.Render(now)) + "\n"
}

// renderEntries renders the recent time-entry list.
func (m *DashboardModel) renderEntries() string {
	header := StyleSection.Render("Recent entries")
	if m.sess.Tracker.IsLoading(session.KeyTimeEntries) {
		return StyleBox.Render(header + "\n" + StyleMuted.Render("loading..."))
	}
	if len(m.entries) == 0 {
		return StyleBox.Render(header + "\n" + StyleMuted.Render("no entries"))
	}

	lines := []string{header}
	count := min(len(m.entries), m.maxEntries)
	for _, e := range m.entries[:count] {
		project := ""
		if e.Project != nil {
			project = e.Project.Name
		}
		interval := fmt.Sprintf("%s  %s-%s",
			output.FormatDate(e.TimeInterval.Start),
			output.FormatTimeOnly(e.TimeInterval.Start),
			output.FormatTimeOnly(e.TimeInterval.End))
		lines = append(lines, fmt.Sprintf("%s  %-20.20s  %s",
			StyleMuted.Render(interval), project, e.Description))
	}
	return StyleBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderTemplates renders the template list with per-template apply state.
func (m *DashboardModel) renderTemplates() string {
	header := StyleSection.Render("Templates")
	if len(m.sess.Templates.Templates) == 0 {
		return StyleBox.Render(header + "\n" + StyleMuted.Render("no templates"))
	}

	lines := []string{header}
	for _, t := range m.sess.Templates.Templates {
		state := ""
		if m.sess.Tracker.IsLoading(apply.Key(t.ID)) {
			state = StyleWarning.Render("  applying...")
		}
		lines = append(lines, fmt.Sprintf("%-24.24s  %s%s",
			t.Name, StyleMuted.Render(fmt.Sprintf("%d entries", len(t.Entries))), state))
	}
	return StyleBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// fetchCmd refetches the entry list off the UI loop.
func (m *DashboardModel) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		entries, ok := m.sess.FetchTimeEntries(context.Background(), recentWindow())
		return fetchedMsg{entries: entries, ok: ok}
	}
}

// recentWindow bounds the dashboard's entry list to the last seven days.
func recentWindow() clockify.TimeWindow {
	start := time.Now().AddDate(0, 0, -7)
	return clockify.TimeWindow{Start: &start}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	model := NewDashboardModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
