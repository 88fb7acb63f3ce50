package config

import (
	"fmt"

	"kaylife/kaydash/internal/telemetry/engine"
	"kaylife/kaydash/internal/util"
)

// ApplyEngine overlays the configured engine settings onto opts. Keys left
// empty keep the values already in opts.
func (c *Config) ApplyEngine(opts *engine.Options) error {
	if c.HistoryPoints != 0 {
		if c.HistoryPoints < 0 {
			return fmt.Errorf("config: history-points must be positive, got %d", c.HistoryPoints)
		}
		opts.History = c.HistoryPoints
	}
	if c.TickInterval != "" {
		d, err := util.ParseDuration("tick-interval", c.TickInterval, MinInterval)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		opts.TickInterval = d
	}
	if c.ElectricalInterval != "" {
		d, err := util.ParseDuration("electrical-interval", c.ElectricalInterval, MinInterval)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		opts.ElectricalInterval = d
	}
	return nil
}

// View returns the configured default view, or "dashboard".
func (c *Config) View() string {
	if c.DefaultView == "" {
		return Views[0]
	}
	return c.DefaultView
}

// Range returns the configured trend range, or the shortest one.
func (c *Config) Range() util.Range {
	if r, err := util.ParseRange(c.DefaultRange); err == nil {
		return r
	}
	return util.Ranges[0]
}
