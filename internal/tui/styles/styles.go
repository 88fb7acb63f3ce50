package styles

import (
	"kaylife/kaydash/internal/telemetry/domain"

	"github.com/charmbracelet/lipgloss"
)

// --- Typography ---

var (
	// Title is the main header text style.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// Subtitle is used for secondary headings.
	Subtitle = lipgloss.NewStyle().
			Foreground(Gray)

	// Label is used for field names in detail views.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	// Value is used for field values in detail views.
	Value = lipgloss.NewStyle().
		Foreground(White)

	// MutedText is for help text, hints, and less important info.
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// AccentText is for highlighted interactive elements.
	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	// ErrorText is for error messages.
	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// SuccessText is for success messages.
	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// WarningText is for warning messages.
	WarningText = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// --- Status badges ---

// statusColors maps every telemetry status to its color. Unknown statuses
// render gray.
var statusColors = map[domain.Status]lipgloss.Color{
	domain.StatusOK:       Green,
	domain.StatusAlert:    Yellow,
	domain.StatusCritical: Red,
}

// statusNames are the labels shown next to status dots.
var statusNames = map[domain.Status]string{
	domain.StatusOK:       "Normal",
	domain.StatusAlert:    "Alerta",
	domain.StatusCritical: "Falla",
}

// StatusStyle returns the foreground style for a status.
func StatusStyle(s domain.Status) lipgloss.Style {
	c, ok := statusColors[s]
	if !ok {
		return lipgloss.NewStyle().Foreground(Gray)
	}
	style := lipgloss.NewStyle().Foreground(c)
	if s == domain.StatusCritical {
		style = style.Bold(true)
	}
	return style
}

// StatusName returns the display label for a status.
func StatusName(s domain.Status) string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return string(s)
}

// StatusDot renders a colored dot for a status.
func StatusDot(s domain.Status) string {
	return StatusStyle(s).Render("●")
}

// StatusIndicator returns a small dot + status label with appropriate color.
func StatusIndicator(s domain.Status) string {
	style := StatusStyle(s)
	return style.Render("●") + " " + style.Render(StatusName(s))
}

// LiveBadge is the pill shown in the header while data is streaming.
var LiveBadge = lipgloss.NewStyle().
	Foreground(DarkBlue).
	Background(Green).
	Bold(true).
	Padding(0, 1)

// --- Layout components ---

var (
	// Border is the default subtle border style.
	Border = lipgloss.RoundedBorder()

	// Card is a rounded-border panel for content sections.
	Card = lipgloss.NewStyle().
		Border(Border).
		BorderForeground(DimGray).
		Padding(1, 2)

	// CardActive is a card with an accent border for focused elements.
	CardActive = lipgloss.NewStyle().
			Border(Border).
			BorderForeground(Blue).
			Padding(1, 2)
)

// --- Key binding hint styles ---

var (
	// KeyStyle is used for key labels in the footer (e.g. "q").
	KeyStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	// KeyDescStyle is used for key descriptions in the footer (e.g. "quit").
	KeyDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// KeySepStyle is used for separators between key bindings.
	KeySepStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// FormatKeyBinding formats a single key binding for the footer.
func FormatKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + KeyDescStyle.Render(desc)
}

// --- Table styles ---

var (
	// TableHeader is the style for table header cells.
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Gray).
			Padding(0, 1)

	// TableCell is the style for table data cells.
	TableCell = lipgloss.NewStyle().
			Foreground(White).
			Padding(0, 1)

	// TableSelectedRow is the style for the currently selected table row.
	TableSelectedRow = lipgloss.NewStyle().
				Foreground(White).
				Background(DarkBlue).
				Bold(true).
				Padding(0, 1)
)

// --- Sidebar styles ---

var (
	// SidebarItem is an unselected navigation entry.
	SidebarItem = lipgloss.NewStyle().
			Foreground(Gray).
			Padding(0, 1)

	// SidebarSelected is the active navigation entry.
	SidebarSelected = lipgloss.NewStyle().
			Foreground(White).
			Background(DarkBlue).
			Bold(true).
			Padding(0, 1)

	// Sidebar frames the navigation column.
	Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Right: "│"}).
		BorderRight(true).
		BorderForeground(DimGray)
)

// --- Layout helpers ---

// CenterText centers text horizontally within the given width.
func CenterText(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
