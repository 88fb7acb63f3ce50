package engine

import (
	"time"

	"kaylife/kaydash/internal/alarms"
	"kaylife/kaydash/internal/metrics"
	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/electrical"
	"kaylife/kaydash/internal/telemetry/scheduler"
	"kaylife/kaydash/internal/telemetry/store"

	"go.uber.org/zap"
)

// Default tick periods.
const (
	DefaultTickInterval       = 3 * time.Second
	DefaultElectricalInterval = 8 * time.Second
)

// Options configures the engine. Start from DefaultOptions; zero values are
// rejected rather than defaulted.
type Options struct {
	// Catalog defines parameters and topology. Nil means catalog.Default().
	Catalog *catalog.Catalog
	// History is the capacity of every series.
	History int
	// TickInterval drives AdvanceAll.
	TickInterval time.Duration
	// ElectricalInterval drives matrix regeneration.
	ElectricalInterval time.Duration
	// FaultProbability is the chance each electrical cell is critical.
	FaultProbability float64
	// Seed makes every random draw reproducible. Zero picks a random seed.
	Seed uint64
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		History:            store.DayCapacity,
		TickInterval:       DefaultTickInterval,
		ElectricalInterval: DefaultElectricalInterval,
		FaultProbability:   electrical.DefaultFaultProbability,
	}
}

// Validate reports the first invalid option as a *domain.ConfigError.
func (o Options) Validate() error {
	if o.History <= 0 {
		return domain.NewConfigError("history", "must be positive, got %d", o.History)
	}
	if o.TickInterval <= 0 {
		return domain.NewConfigError("tick_interval", "must be positive, got %s", o.TickInterval)
	}
	if o.ElectricalInterval <= 0 {
		return domain.NewConfigError("electrical_interval", "must be positive, got %s", o.ElectricalInterval)
	}
	if o.FaultProbability < 0 || o.FaultProbability > 1 {
		return domain.NewConfigError("fault_probability", "must be within [0, 1], got %g", o.FaultProbability)
	}
	if o.Catalog != nil {
		return o.Catalog.Validate()
	}
	return nil
}

// Deps are the engine's collaborators. Every field is optional.
type Deps struct {
	Logger  *zap.Logger
	Metrics *metrics.Recorder
	// Alarms receives status transitions. When nil the engine opens a
	// private in-memory journal and closes it in Close.
	Alarms alarms.Repository
	// Clock stamps Prime. Defaults to time.Now.
	Clock func() time.Time
	// Ticker replaces the real tickers, for tests.
	Ticker scheduler.TickerFunc
}
