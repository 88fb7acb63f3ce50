package components

import (
	"strings"

	"kaylife/kaydash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders a status message line between the content and footer,
// with optional right-aligned context.
func StatusBar(width int, message string, isError bool, right string) string {
	if message == "" && right == "" {
		return ""
	}

	style := styles.MutedText
	if isError {
		style = styles.ErrorText
	}

	left := style.Render(message)
	r := styles.MutedText.Render(right)
	gap := max(width-4-lipgloss.Width(left)-lipgloss.Width(r), 1)

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(left + strings.Repeat(" ", gap) + r)
}
