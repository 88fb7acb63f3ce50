package components

import (
	"strings"

	"kaylife/kaydash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// SidebarWidth is the width of the expanded sidebar, border included.
const SidebarWidth = 20

// Sidebar renders the navigation column. Collapsed, it shows only the
// entry numbers.
func Sidebar(height int, items []string, selected int, collapsed bool) string {
	rows := make([]string, 0, len(items))
	for i, item := range items {
		label := string(rune('1'+i)) + " " + item
		if collapsed {
			label = string(rune('1' + i))
		}
		style := styles.SidebarItem
		if i == selected {
			style = styles.SidebarSelected
		}
		if !collapsed {
			style = style.Width(SidebarWidth - 1)
		}
		rows = append(rows, style.Render(label))
	}

	body := strings.Join(rows, "\n")
	return styles.Sidebar.Height(max(height, len(rows))).Render(body)
}

// SidebarRenderedWidth reports how many columns Sidebar occupies.
func SidebarRenderedWidth(items []string, collapsed bool) int {
	return lipgloss.Width(Sidebar(len(items), items, 0, collapsed))
}
