// Package components provides reusable Bubbletea UI building blocks for
// the kaydash TUI. These are render-only helpers (not tea.Model) used by
// the main TUI models to compose views.
package components

import (
	"strings"
	"time"

	"kaylife/kaydash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the application header bar.
//
//	┌──────────────────────────────────────────────────────┐
//	│  Kaylife > Water Quality      LIVE DATA  12:04:09    │
//	└──────────────────────────────────────────────────────┘
func Header(width int, breadcrumb string, right string) string {
	if width < 10 {
		return ""
	}

	leftStyle := styles.Title.Foreground(styles.Blue)
	left := leftStyle.Render("Kaylife")
	if breadcrumb != "" {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(breadcrumb)
	}

	// Calculate spacing between left and right.
	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	innerWidth := width - 4 // account for padding
	gap := max(innerWidth-leftLen-rightLen, 1)

	content := left + strings.Repeat(" ", gap) + right

	bar := lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(content)

	return bar
}

// LiveIndicator renders the "Live Data" badge and last-updated clock. A zero
// updated time renders a waiting hint instead.
func LiveIndicator(updated time.Time) string {
	if updated.IsZero() {
		return styles.MutedText.Render("waiting for data…")
	}
	return styles.LiveBadge.Render("LIVE DATA") + "  " +
		styles.Subtitle.Render("updated "+updated.Local().Format("15:04:05"))
}
