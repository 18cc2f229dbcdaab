package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#2563EB") // Blue
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "! "+text))
}

// Muted prints de-emphasized text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Bold prints bold text.
func (c *CLIFormatter) Bold(text string) {
	c.Println(c.render(styleBold, text))
}

// KeyValue prints an aligned "key  value" line.
func (c *CLIFormatter) KeyValue(key, value string, keyWidth int) {
	padded := key + strings.Repeat(" ", max(keyWidth-len(key), 0))
	c.Printf("%s  %s\n", c.render(styleMuted, padded), value)
}

// Row prints columns padded to the given widths.
func (c *CLIFormatter) Row(widths []int, cols ...string) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		parts[i] = fmt.Sprintf("%-*s", w, col)
	}
	c.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
}

// Header prints a muted column header row.
func (c *CLIFormatter) Header(widths []int, cols ...string) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		parts[i] = fmt.Sprintf("%-*s", w, col)
	}
	c.Println(c.render(styleMuted, strings.TrimRight(strings.Join(parts, "  "), " ")))
}
