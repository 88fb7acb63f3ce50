package tui

import "github.com/charmbracelet/bubbles/key"

// dashboardKeys are the bindings of the dashboard program.
type dashboardKeys struct {
	NextView key.Binding
	PrevView key.Binding
	Jump     key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Range    key.Binding
	Scroll   key.Binding
	Sidebar  key.Binding
	Quit     key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		NextView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevView: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "jump")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "parameter")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "parameter")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "sensor")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "sensor")),
		Range:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "range")),
		Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		Sidebar:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sidebar")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// footer returns the bindings relevant to view v.
func (k dashboardKeys) footer(v view) []key.Binding {
	out := []key.Binding{k.NextView, k.Jump}
	switch v {
	case viewDashboard:
		out = append(out, k.Left, k.Range)
	case viewWater:
		out = append(out, k.Left, k.Up, k.Range)
	case viewAlarms:
		out = append(out, k.Scroll)
	}
	return append(out, k.Sidebar, k.Quit)
}
