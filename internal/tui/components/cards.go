package components

import (
	"fmt"

	"kaylife/kaydash/internal/telemetry/classify"
	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/walk"
	"kaylife/kaydash/internal/telemetry/weather"
	"kaylife/kaydash/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
)

// sparkHeight is the fixed height of metric card sparklines.
const sparkHeight = 3

// MetricCard renders the latest value, its status and a sparkline of the
// most recent samples that fit the card.
func MetricCard(p domain.Parameter, s domain.Series, width int, selected bool) string {
	inner := max(width-6, 8)

	card := styles.Card.Padding(0, 1)
	if selected {
		card = styles.CardActive.Padding(0, 1)
	}

	title := styles.Label.Render(p.Label)
	latest, ok := s.Latest()
	if !ok {
		return card.Width(width - 2).Render(title + "\n" + styles.MutedText.Render("no data"))
	}

	status := classify.Classify(p, latest.Value)
	value := styles.StatusStyle(status).Render(p.FormatWithUnit(latest.Value))

	// Sparklines scale from zero, so shift by the lower clamp bound to keep
	// the band's variation visible.
	lo, _ := walk.Bounds(p)
	values := s.Values()
	if len(values) > inner {
		values = values[len(values)-inner:]
	}
	shifted := make([]float64, len(values))
	for i, v := range values {
		shifted[i] = v - lo
	}

	sl := sparkline.New(inner, sparkHeight, sparkline.WithStyle(lipgloss.NewStyle().Foreground(styles.Teal)))
	sl.PushAll(shifted)
	sl.Draw()

	band := styles.MutedText.Render(fmt.Sprintf("%s–%s", p.Format(p.Min), p.FormatWithUnit(p.Max)))
	body := lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+styles.StatusDot(status),
		value,
		sl.View(),
		band,
	)
	return card.Width(width - 2).Render(body)
}

// WeatherCard renders the derived ambient conditions.
func WeatherCard(w weather.Conditions, width int) string {
	labelWidth := 22
	row := func(label, value string) string {
		return styles.Label.Width(labelWidth).Render(label) + styles.Value.Render(value)
	}

	rows := []string{
		styles.Subtitle.Render("Clima"),
		"",
		row("Temperatura ambiente", fmt.Sprintf("%.0f °C", w.AmbientTemp)),
		row("Viento", fmt.Sprintf("%.0f km/h", w.Wind)),
		row("Lluvia (24h)", fmt.Sprintf("%.2f mm", w.Rain)),
		row("Humedad", fmt.Sprintf("%.0f %%", w.Humidity)),
		row("Presión", fmt.Sprintf("%.0f hPa", w.Pressure)),
	}
	return styles.Card.Padding(0, 1).Width(max(width-2, labelWidth+12)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
