package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"kaylife/kaydash/internal/logging"
	"kaylife/kaydash/internal/util"
)

// Views lists the dashboard views, in sidebar order.
var Views = []string{"dashboard", "water", "electrical", "alarms"}

// MinInterval is the shortest accepted tick interval.
const MinInterval = 100 * time.Millisecond

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "default-view").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save). Call Validate first.
	Set func(cfg *Config, value string)

	// Validate rejects values Set would store but the engine cannot use.
	// An empty value always validates and clears the key.
	Validate func(value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "default-view",
		Description: "View shown when the dashboard opens (" + strings.Join(Views, ", ") + ")",
		Get:         func(cfg *Config) string { return cfg.DefaultView },
		Set:         func(cfg *Config, v string) { cfg.DefaultView = util.NormalizeKey(v) },
		Validate:    func(v string) error { return util.ValidateOneOf("default-view", v, Views) },
	},
	{
		Name:        "default-range",
		Description: "Trend chart window (" + strings.Join(util.RangeNames(), ", ") + ")",
		Get:         func(cfg *Config) string { return cfg.DefaultRange },
		Set:         func(cfg *Config, v string) { cfg.DefaultRange = util.NormalizeKey(v) },
		Validate: func(v string) error {
			_, err := util.ParseRange(v)
			return err
		},
	},
	{
		Name:        "history-points",
		Description: "Samples kept per series (60 = one hour, 1440 = one day)",
		Get: func(cfg *Config) string {
			if cfg.HistoryPoints == 0 {
				return ""
			}
			return strconv.Itoa(cfg.HistoryPoints)
		},
		Set: func(cfg *Config, v string) {
			n, _ := strconv.Atoi(strings.TrimSpace(v))
			cfg.HistoryPoints = n
		},
		Validate: func(v string) error {
			_, err := util.ParsePositiveInt("history-points", v)
			return err
		},
	},
	{
		Name:        "tick-interval",
		Description: "Period of the telemetry loop (e.g. 3s)",
		Get:         func(cfg *Config) string { return cfg.TickInterval },
		Set:         func(cfg *Config, v string) { cfg.TickInterval = strings.TrimSpace(v) },
		Validate: func(v string) error {
			_, err := util.ParseDuration("tick-interval", v, MinInterval)
			return err
		},
	},
	{
		Name:        "electrical-interval",
		Description: "Period of the electrical matrix loop (e.g. 8s)",
		Get:         func(cfg *Config) string { return cfg.ElectricalInterval },
		Set:         func(cfg *Config, v string) { cfg.ElectricalInterval = strings.TrimSpace(v) },
		Validate: func(v string) error {
			_, err := util.ParseDuration("electrical-interval", v, MinInterval)
			return err
		},
	},
	{
		Name:        "log-level",
		Description: "Log level (" + strings.Join(logging.Levels, ", ") + ")",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = util.NormalizeKey(v) },
		Validate: func(v string) error {
			_, err := logging.ParseLevel(v)
			return err
		},
	},
	{
		Name:        "profile",
		Description: "YAML plant profile overriding parameters and topology",
		Get:         func(cfg *Config) string { return cfg.Profile },
		Set:         func(cfg *Config, v string) { cfg.Profile = strings.TrimSpace(v) },
		Validate:    func(string) error { return nil },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// Apply validates value for the key and stores it in cfg. An empty value
// clears the key.
func (k *KeySpec) Apply(cfg *Config, value string) error {
	if strings.TrimSpace(value) != "" {
		if err := k.Validate(value); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	k.Set(cfg, value)
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
