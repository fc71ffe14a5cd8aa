package commands

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var moodStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("212")).
	Bold(true)

var dateStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("243"))

var replyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("86"))

// truncateString shortens s to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen-1]) + "…"
}

// renderMarkdown pretty-prints assistant markdown when stdout is a
// terminal; piped output stays plain.
func renderMarkdown(md string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return md
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// moodBadge formats an optional mood label.
func moodBadge(mood string) string {
	if mood == "" {
		return ""
	}
	return moodStyle.Render("[" + mood + "]")
}
