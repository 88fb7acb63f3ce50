package components

import (
	"fmt"
	"strings"

	"kaylife/kaydash/internal/alarms"
	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/classify"
	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/electrical"
	"kaylife/kaydash/internal/telemetry/store"
	"kaylife/kaydash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	rowLabelWidth    = 12
	binaryCellWidth  = 7
	detailCellWidth  = 13
	circuitCellWidth = 8
)

// Cursor addresses one matrix cell. Negative values select nothing.
type Cursor struct {
	Row, Col int
}

// NoCursor selects no cell.
var NoCursor = Cursor{Row: -1, Col: -1}

func cell(text string, width int, selected bool) string {
	text = ansi.Truncate(text, width-1, "…")
	style := lipgloss.NewStyle().Width(width)
	if selected {
		style = style.Background(styles.DarkBlue).Bold(true)
	}
	return style.Render(text)
}

func headerCell(text string, width int) string {
	return styles.TableHeader.Padding(0).Width(width).Render(ansi.Truncate(text, width-1, "…"))
}

// SensorMatrix renders sensors × parameters. The binary form shows ok and
// critical dots only; the detailed form shows each latest value with its
// full status.
func SensorMatrix(c *catalog.Catalog, snap *store.Snapshot, detailed bool, cur Cursor) string {
	width := binaryCellWidth
	if detailed {
		width = detailCellWidth
	}

	var b strings.Builder
	b.WriteString(headerCell("", rowLabelWidth))
	for _, p := range c.Parameters {
		b.WriteString(headerCell(p.Label, width))
	}

	for r, sensor := range c.Sensors {
		b.WriteString("\n")
		b.WriteString(cell(styles.Label.Render(sensor.Label), rowLabelWidth, false))
		for col, p := range c.Parameters {
			sample, ok := snap.Latest(domain.SensorSeries(sensor.ID, p.Key))
			selected := r == cur.Row && col == cur.Col
			if !ok {
				b.WriteString(cell(styles.MutedText.Render("–"), width, selected))
				continue
			}
			status := classify.Classify(p, sample.Value)
			text := styles.StatusDot(classify.Binary(status))
			if detailed {
				text = styles.StatusDot(status) + " " + styles.StatusStyle(status).Render(p.FormatWithUnit(sample.Value))
			}
			b.WriteString(cell(text, width, selected))
		}
	}
	return b.String()
}

// ElectricalMatrix renders farms × circuits grouped under their generators,
// followed by the legend.
func ElectricalMatrix(c *catalog.Catalog, m *electrical.Matrix) string {
	if m == nil {
		return styles.MutedText.Render("Waiting for the first electrical reading…")
	}

	header := headerCell("", rowLabelWidth)
	for _, circuit := range c.Circuits {
		header += headerCell(circuit.Label, circuitCellWidth)
	}

	sections := []string{header}
	for _, g := range c.Generators {
		faults := 0
		var rows []string
		for _, farmID := range g.Farms {
			farm, _ := c.Farm(farmID)
			row := cell(styles.Label.Render(farm.Label), rowLabelWidth, false)
			for _, circuit := range c.Circuits {
				status, _ := m.Status(farmID, circuit.ID)
				if status == domain.StatusCritical {
					faults++
				}
				row += cell(styles.StatusDot(status), circuitCellWidth, false)
			}
			rows = append(rows, row)
		}

		title := styles.Subtitle.Render(g.Label)
		if faults > 0 {
			title += "  " + styles.StatusStyle(domain.StatusCritical).Render(fmt.Sprintf("%d fallas", faults))
		}
		sections = append(sections, "", title)
		sections = append(sections, rows...)
	}

	legend := styles.StatusIndicator(domain.StatusOK) + "   " + styles.StatusIndicator(domain.StatusCritical)
	sections = append(sections, "", legend)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// GeneratorSummary renders one line per generator with its fault count.
func GeneratorSummary(c *catalog.Catalog, m *electrical.Matrix) string {
	if m == nil {
		return styles.MutedText.Render("no data")
	}
	lines := make([]string, 0, len(c.Generators))
	for _, g := range c.Generators {
		faults := 0
		for _, farm := range g.Farms {
			for _, circuit := range c.Circuits {
				if s, _ := m.Status(farm, circuit.ID); s == domain.StatusCritical {
					faults++
				}
			}
		}
		status := domain.StatusOK
		if faults > 0 {
			status = domain.StatusCritical
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			styles.StatusDot(status),
			styles.Label.Width(14).Render(g.Label),
			styles.MutedText.Render(fmt.Sprintf("%d/%d fallas", faults, len(g.Farms)*len(c.Circuits))),
		))
	}
	return strings.Join(lines, "\n")
}

// AlarmRow renders one journal event as a single line no wider than width.
func AlarmRow(e alarms.Event, width int) string {
	sev := styles.StatusStyle(e.Current)
	line := fmt.Sprintf("%s  %s  %s  %s → %s",
		styles.MutedText.Render(e.Timestamp.Local().Format("15:04:05")),
		sev.Width(8).Render(strings.ToUpper(e.Severity)),
		styles.Value.Render(e.Label),
		styles.StatusStyle(e.Previous).Render(styles.StatusName(e.Previous)),
		sev.Render(styles.StatusName(e.Current)),
	)
	if e.Source == alarms.SourceTelemetry {
		line += styles.MutedText.Render(fmt.Sprintf("  (%.2f %s)", e.Value, e.Unit))
	}
	return ansi.Truncate(line, width, "…")
}
