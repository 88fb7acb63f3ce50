package config

import (
	"strings"
	"testing"
)

func TestLookup_Exists(t *testing.T) {
	spec := Lookup("default-view")
	if spec == nil {
		t.Fatal("expected to find key 'default-view', got nil")
	}
	if spec.Name != "default-view" {
		t.Errorf("expected Name %q, got %q", "default-view", spec.Name)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	spec := Lookup("  TICK-INTERVAL ")
	if spec == nil {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if spec.Name != "tick-interval" {
		t.Errorf("expected Name %q, got %q", "tick-interval", spec.Name)
	}
}

func TestLookup_NotFound(t *testing.T) {
	spec := Lookup("nonexistent-key")
	if spec != nil {
		t.Errorf("expected nil for unknown key, got %+v", spec)
	}
}

func TestKeys_AllHaveAccessors(t *testing.T) {
	for _, k := range Keys {
		if k.Get == nil || k.Set == nil || k.Validate == nil {
			t.Errorf("key %q has a nil accessor", k.Name)
		}
		if k.Description == "" {
			t.Errorf("key %q has empty Description", k.Name)
		}
	}
}

func TestKeys_ApplyRoundtrip(t *testing.T) {
	valid := map[string]string{
		"default-view":        "electrical",
		"default-range":       "12h",
		"history-points":      "60",
		"tick-interval":       "1500ms",
		"electrical-interval": "8s",
		"log-level":           "warn",
		"profile":             "/etc/kaydash/plant.yaml",
	}
	for _, k := range Keys {
		v, ok := valid[k.Name]
		if !ok {
			t.Fatalf("no sample value for key %q", k.Name)
		}
		cfg := &Config{}
		if err := k.Apply(cfg, v); err != nil {
			t.Fatalf("key %q: Apply(%q) error: %v", k.Name, v, err)
		}
		if got := k.Get(cfg); got != v {
			t.Errorf("key %q: Apply then Get = %q, want %q", k.Name, got, v)
		}
	}
}

func TestKeys_ApplyRejectsInvalid(t *testing.T) {
	invalid := map[string]string{
		"default-view":        "pumps",
		"default-range":       "3h",
		"history-points":      "0",
		"tick-interval":       "10ms",
		"electrical-interval": "often",
		"log-level":           "loud",
	}
	for name, v := range invalid {
		k := Lookup(name)
		cfg := &Config{}
		if err := k.Apply(cfg, v); err == nil {
			t.Errorf("key %q: expected error for %q", name, v)
		}
		if got := k.Get(cfg); got != "" {
			t.Errorf("key %q: rejected value was stored as %q", name, got)
		}
	}
}

func TestKeys_ApplyEmptyClears(t *testing.T) {
	cfg := &Config{DefaultView: "water", HistoryPoints: 60}
	if err := Lookup("default-view").Apply(cfg, ""); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if err := Lookup("history-points").Apply(cfg, ""); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if cfg.DefaultView != "" || cfg.HistoryPoints != 0 {
		t.Errorf("expected cleared config, got %+v", cfg)
	}
}

func TestKeyNames(t *testing.T) {
	names := KeyNames()
	if len(names) != len(Keys) {
		t.Fatalf("expected %d names, got %d", len(Keys), len(names))
	}
	for i, name := range names {
		if name != Keys[i].Name {
			t.Errorf("index %d: expected %q, got %q", i, Keys[i].Name, name)
		}
	}
}

func TestKeysHelp_ContainsAllKeys(t *testing.T) {
	help := KeysHelp()
	if !strings.Contains(help, "Available keys:") {
		t.Error("expected 'Available keys:' header in help output")
	}
	for _, k := range Keys {
		if !strings.Contains(help, k.Name) {
			t.Errorf("expected key %q in help output", k.Name)
		}
		if !strings.Contains(help, k.Description) {
			t.Errorf("expected description %q in help output", k.Description)
		}
	}
}
