package components

import (
	"strings"

	"kaylife/kaydash/internal/tui/styles"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Footer renders the help bar for the enabled bindings.
func Footer(width int, bindings []key.Binding) string {
	if width < 10 {
		return ""
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, styles.FormatKeyBinding(h.Key, h.Desc))
	}
	if len(parts) == 0 {
		return ""
	}

	content := strings.Join(parts, styles.KeySepStyle.Render("  "))

	bar := lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(styles.DimGray).
		Render(content)

	return bar
}
