package config

import (
	"testing"
	"time"

	"kaylife/kaydash/internal/telemetry/engine"
)

func TestApplyEngine_OverridesSetKeys(t *testing.T) {
	opts := engine.DefaultOptions()
	cfg := &Config{HistoryPoints: 60, TickInterval: "1s"}

	if err := cfg.ApplyEngine(&opts); err != nil {
		t.Fatalf("ApplyEngine error: %v", err)
	}
	if opts.History != 60 {
		t.Errorf("History = %d, want 60", opts.History)
	}
	if opts.TickInterval != time.Second {
		t.Errorf("TickInterval = %v, want 1s", opts.TickInterval)
	}
	if opts.ElectricalInterval != engine.DefaultElectricalInterval {
		t.Errorf("ElectricalInterval = %v, want default", opts.ElectricalInterval)
	}
}

func TestApplyEngine_RejectsHandEditedValues(t *testing.T) {
	opts := engine.DefaultOptions()
	if err := (&Config{TickInterval: "fast"}).ApplyEngine(&opts); err == nil {
		t.Error("expected error for unparseable interval")
	}
	if err := (&Config{HistoryPoints: -1}).ApplyEngine(&opts); err == nil {
		t.Error("expected error for negative history")
	}
}

func TestViewAndRangeDefaults(t *testing.T) {
	cfg := &Config{}
	if cfg.View() != "dashboard" {
		t.Errorf("View() = %q, want dashboard", cfg.View())
	}
	if cfg.Range().Name != "2h" {
		t.Errorf("Range() = %q, want 2h", cfg.Range().Name)
	}

	cfg = &Config{DefaultView: "alarms", DefaultRange: "24h"}
	if cfg.View() != "alarms" || cfg.Range().Duration != 24*time.Hour {
		t.Errorf("unexpected View/Range: %q %v", cfg.View(), cfg.Range())
	}
}
