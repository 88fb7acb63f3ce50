package tui

import (
	"fmt"
	"strings"

	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/weather"
	"kaylife/kaydash/internal/tui/components"
	"kaylife/kaydash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// minCardWidth is the narrowest metric card before the row wraps.
const minCardWidth = 24

func (m dashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, viewTitles[m.view], components.LiveIndicator(m.frame.At))
	footer := components.Footer(m.width, m.keys.footer(m.view))
	statusBar := m.statusBar()

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := lipgloss.Height(statusBar)
	contentH := max(m.height-headerH-footerH-statusH, 1)

	sidebar := components.Sidebar(contentH, viewTitles, int(m.view), m.collapsed)
	content := lipgloss.NewStyle().
		Width(m.contentWidth()).
		MaxHeight(contentH).
		Padding(0, 1).
		Render(m.renderContent(contentH))
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar, footer)
}

func (m dashboardModel) statusBar() string {
	right := "range " + m.rng.Name
	if m.alarmsErr != nil {
		return components.StatusBar(m.width, "Error: "+m.alarmsErr.Error(), true, right)
	}
	active := m.src.ActiveAlarms()
	msg := "all readings normal"
	if active > 0 {
		msg = fmt.Sprintf("%d active alarms", active)
	}
	return components.StatusBar(m.width, msg, false, right)
}

func (m dashboardModel) renderContent(height int) string {
	if m.frame.Telemetry == nil {
		return lipgloss.Place(m.contentWidth()-2, height,
			lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Connecting to the plant…")
	}

	switch m.view {
	case viewWater:
		return m.renderWater(height)
	case viewElectrical:
		return components.ElectricalMatrix(m.cat, m.frame.Electrical)
	case viewAlarms:
		return m.renderAlarms()
	default:
		return m.renderOverview(height)
	}
}

func (m dashboardModel) selectedParam() domain.Parameter {
	return m.cat.Parameters[m.param]
}

// renderOverview shows the plant-wide cards, the sensor status matrix next
// to the generator summary and weather, and the selected trend.
func (m dashboardModel) renderOverview(height int) string {
	width := m.contentWidth() - 2
	snap := m.frame.Telemetry

	perRow := max(min(width/minCardWidth, len(m.cat.Parameters)), 1)
	cardWidth := width / perRow
	var rows, row []string
	for i, p := range m.cat.Parameters {
		row = append(row, components.MetricCard(p, snap.Series(domain.ParamSeries(p.Key)), cardWidth, i == m.param))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	cards := lipgloss.JoinVertical(lipgloss.Left, rows...)

	matrix := styles.Card.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.Subtitle.Render("Sensores"),
		components.SensorMatrix(m.cat, snap, false, components.NoCursor),
	))
	generators := styles.Card.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.Subtitle.Render("Generadores"),
		components.GeneratorSummary(m.cat, m.frame.Electrical),
	))
	side := generators
	if w, ok := m.weather(); ok {
		side = lipgloss.JoinVertical(lipgloss.Left, generators, components.WeatherCard(w, lipgloss.Width(generators)))
	}
	middle := lipgloss.JoinHorizontal(lipgloss.Top, matrix, side)

	sections := []string{cards, middle}
	if left := height - lipgloss.Height(cards) - lipgloss.Height(middle); left >= 8 {
		p := m.selectedParam()
		sections = append(sections, components.TrendChart(p.Label, p,
			snap.Window(domain.ParamSeries(p.Key), m.rng.Duration), m.rng.Duration, width, left))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// weather returns the conditions of the latest frame, if any were derived.
func (m dashboardModel) weather() (weather.Conditions, bool) {
	w := m.frame.Weather
	return w, !w.At.IsZero()
}

// renderWater shows every sensor reading with its status and the trend of
// the selected cell.
func (m dashboardModel) renderWater(height int) string {
	snap := m.frame.Telemetry
	matrix := components.SensorMatrix(m.cat, snap, true, components.Cursor{Row: m.sensor, Col: m.param})

	sensor := m.cat.Sensors[m.sensor]
	p := m.selectedParam()
	chartH := max(height-lipgloss.Height(matrix)-1, 8)
	chart := components.TrendChart(sensor.Label+" · "+p.Label, p,
		snap.Window(domain.SensorSeries(sensor.ID, p.Key), m.rng.Duration), m.rng.Duration,
		m.contentWidth()-2, chartH)

	return lipgloss.JoinVertical(lipgloss.Left, matrix, "", chart)
}

func (m dashboardModel) renderAlarms() string {
	title := styles.Subtitle.Render(fmt.Sprintf("Alarm journal  %s",
		styles.MutedText.Render(fmt.Sprintf("(%d events, %d active)", len(m.events), m.src.ActiveAlarms()))))
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Repeat("─", max(m.alarmsVP.Width, 1)), m.alarmsVP.View())
}
