// Package metrics holds the engine's Prometheus collectors. They live on a
// private registry and are read back in-process; nothing is served.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"kaylife/kaydash/internal/telemetry/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// Loop names used as the "loop" label.
const (
	LoopTelemetry  = "telemetry"
	LoopElectrical = "electrical"
)

// Recorder wraps the engine collectors. A nil Recorder discards everything.
type Recorder struct {
	reg *prometheus.Registry

	ticks        *prometheus.CounterVec
	tickDuration *prometheus.HistogramVec
	series       *prometheus.GaugeVec
	cells        *prometheus.GaugeVec
	alarms       *prometheus.CounterVec
	subscribers  prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kaydash_ticks_total",
			Help: "Completed ticks per loop.",
		}, []string{"loop"}),
		tickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kaydash_tick_duration_seconds",
			Help:    "Time spent producing one tick.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
		}, []string{"loop"}),
		series: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kaydash_series_status",
			Help: "Series whose latest sample is in each status.",
		}, []string{"status"}),
		cells: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kaydash_electrical_cells",
			Help: "Electrical matrix cells in each status.",
		}, []string{"status"}),
		alarms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kaydash_alarm_transitions_total",
			Help: "Status transitions journaled, by severity.",
		}, []string{"severity"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kaydash_subscribers",
			Help: "Active frame subscribers.",
		}),
	}
	r.reg.MustRegister(r.ticks, r.tickDuration, r.series, r.cells, r.alarms, r.subscribers)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// ObserveTick counts one completed tick and its duration.
func (r *Recorder) ObserveTick(loop string, d time.Duration) {
	if r == nil {
		return
	}
	r.ticks.WithLabelValues(loop).Inc()
	r.tickDuration.WithLabelValues(loop).Observe(d.Seconds())
}

// SetSeriesStatus replaces the per-status series gauges.
func (r *Recorder) SetSeriesStatus(counts map[domain.Status]int) {
	if r == nil {
		return
	}
	for _, s := range domain.Statuses() {
		r.series.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
}

// SetCells replaces the per-status electrical cell gauges.
func (r *Recorder) SetCells(counts map[domain.Status]int) {
	if r == nil {
		return
	}
	for _, s := range []domain.Status{domain.StatusOK, domain.StatusCritical} {
		r.cells.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
}

// IncAlarm counts one journaled transition.
func (r *Recorder) IncAlarm(severity string) {
	if r == nil {
		return
	}
	r.alarms.WithLabelValues(severity).Inc()
}

// SetSubscribers records the number of active subscribers.
func (r *Recorder) SetSubscribers(n int) {
	if r == nil {
		return
	}
	r.subscribers.Set(float64(n))
}

// Sample is one gathered metric value, flattened for display.
type Sample struct {
	Name   string  `json:"name"`
	Labels string  `json:"labels,omitempty"`
	Value  float64 `json:"value"`
}

// Gather flattens the registry into display samples sorted by name and
// labels. Histograms report their sample count.
func (r *Recorder) Gather() ([]Sample, error) {
	if r == nil {
		return nil, nil
	}
	families, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("metrics: gather failed: %w", err)
	}

	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			pairs := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
			}

			s := Sample{Name: mf.GetName(), Labels: strings.Join(pairs, ",")}
			switch {
			case m.GetCounter() != nil:
				s.Value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				s.Value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				s.Name += "_count"
				s.Value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}
