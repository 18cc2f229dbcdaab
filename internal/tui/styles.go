package tui

import "github.com/charmbracelet/lipgloss"

// Shared styles for the dashboard.
var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2563EB"))

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	StyleSection = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	StyleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	StyleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	StyleMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(0, 1)
)

// HelpBar renders the keyboard hint line.
func HelpBar() string {
	return StyleMuted.Render("r refresh · q quit")
}
