package components

import (
	"fmt"
	"time"

	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/walk"
	"kaylife/kaydash/internal/tui/styles"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// TrendChart renders a braille time-series chart of s over the window
// ending at its last sample. The Y axis spans the parameter's clamp bounds
// so charts of the same parameter are comparable.
func TrendChart(title string, p domain.Parameter, s domain.Series, window time.Duration, width, height int) string {
	header := styles.Label.Render(title) + "  " + styles.MutedText.Render(p.DisplayLabel())
	if len(s) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, styles.MutedText.Render("no data"))
	}

	width = max(width, 20)
	height = max(height-2, 4)

	end := s[len(s)-1].Timestamp
	start := end.Add(-window)
	if first := s[0].Timestamp; first.After(start) {
		start = first
	}
	if !end.After(start) {
		start = end.Add(-time.Minute)
	}
	lo, hi := walk.Bounds(p)

	chart := tslc.New(width, height,
		tslc.WithTimeRange(start, end),
		tslc.WithYRange(lo, hi),
		tslc.WithXLabelFormatter(tslc.HourTimeLabelFormatter()),
	)
	for _, sample := range s.Since(start) {
		chart.Push(tslc.TimePoint{Time: sample.Timestamp, Value: sample.Value})
	}
	chart.DrawBraille()

	latest, _ := s.Latest()
	lowest, highest := minMax(s.Since(start).Values())
	summary := styles.MutedText.Render(fmt.Sprintf("  cur: %s  min: %s  max: %s",
		p.FormatWithUnit(latest.Value), p.FormatWithUnit(lowest), p.FormatWithUnit(highest)))

	return lipgloss.JoinVertical(lipgloss.Left, header, chart.View(), summary)
}

// PlotHeight is the default height of ASCII plots.
const PlotHeight = 8

// Plot renders values as an ASCII line plot with a current/min/max summary,
// for non-interactive output.
func Plot(label string, p domain.Parameter, values []float64, width, height int) string {
	if len(values) == 0 {
		return label + ": no data"
	}

	// Reserve space for Y-axis labels.
	plotWidth := max(width-10, 10)

	chart := asciigraph.Plot(values,
		asciigraph.Height(max(height, 2)),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(uint(p.Precision)),
		asciigraph.Caption(p.DisplayLabel()),
	)

	lowest, highest := minMax(values)
	summary := fmt.Sprintf("  cur: %s  min: %s  max: %s",
		p.FormatWithUnit(values[len(values)-1]), p.FormatWithUnit(lowest), p.FormatWithUnit(highest))

	return label + "\n" + chart + "\n" + summary
}

// minMax returns the minimum and maximum values from a slice.
func minMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
