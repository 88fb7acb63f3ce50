// Package plant resolves engine settings from flags, the user config and
// the optional YAML profile, and builds engines for CLI commands.
package plant

import (
	"fmt"
	"io"
	"time"

	"kaylife/kaydash/internal/config"
	"kaylife/kaydash/internal/logging"
	"kaylife/kaydash/internal/metrics"
	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/engine"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Flag names shared by every engine-backed command.
const (
	FlagProfile  = "profile"
	FlagHistory  = "history"
	FlagSeed     = "seed"
	FlagLogLevel = "log-level"

	// Only bound by commands that run the loops in real time.
	FlagTickInterval       = "tick-interval"
	FlagElectricalInterval = "electrical-interval"
)

// defaultCLILevel keeps one-shot commands quiet unless asked otherwise.
const defaultCLILevel = "error"

// Settings are the per-invocation overrides. Zero values defer to the
// config file, then to the engine defaults.
type Settings struct {
	Profile  string
	History  int
	Seed     uint64
	LogLevel string

	TickInterval       time.Duration
	ElectricalInterval time.Duration
}

// BindFlags registers the engine flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagProfile, "", "YAML plant profile (overrides the profile config key)")
	fs.Int(FlagHistory, 0, "Samples kept per series (overrides history-points)")
	fs.Uint64(FlagSeed, 0, "Random seed for reproducible runs (0 picks one)")
	fs.String(FlagLogLevel, "", "Log level: "+fmt.Sprint(logging.Levels))
}

// BindIntervalFlags registers the loop period overrides on fs.
func BindIntervalFlags(fs *pflag.FlagSet) {
	fs.Duration(FlagTickInterval, 0, "Telemetry loop period (overrides tick-interval)")
	fs.Duration(FlagElectricalInterval, 0, "Electrical loop period (overrides electrical-interval)")
}

// SettingsFromFlags reads the engine flags from cmd. Flags that were never
// registered read as zero.
func SettingsFromFlags(cmd *cobra.Command) Settings {
	fs := cmd.Flags()
	var s Settings
	s.Profile, _ = fs.GetString(FlagProfile)
	s.History, _ = fs.GetInt(FlagHistory)
	s.Seed, _ = fs.GetUint64(FlagSeed)
	s.LogLevel, _ = fs.GetString(FlagLogLevel)
	s.TickInterval, _ = fs.GetDuration(FlagTickInterval)
	s.ElectricalInterval, _ = fs.GetDuration(FlagElectricalInterval)
	return s
}

// Options resolves engine options: flags override cfg, cfg overrides the
// defaults.
func Options(cfg *config.Config, s Settings) (engine.Options, error) {
	opts := engine.DefaultOptions()
	if err := cfg.ApplyEngine(&opts); err != nil {
		return engine.Options{}, err
	}

	profile := s.Profile
	if profile == "" {
		profile = cfg.Profile
	}
	if profile != "" {
		cat, err := catalog.LoadProfile(profile)
		if err != nil {
			return engine.Options{}, err
		}
		opts.Catalog = cat
	}

	if s.History < 0 {
		return engine.Options{}, fmt.Errorf("--%s must be positive, got %d", FlagHistory, s.History)
	}
	if s.History > 0 {
		opts.History = s.History
	}
	if s.TickInterval != 0 {
		opts.TickInterval = s.TickInterval
	}
	if s.ElectricalInterval != 0 {
		opts.ElectricalInterval = s.ElectricalInterval
	}
	opts.Seed = s.Seed

	if err := opts.Validate(); err != nil {
		return engine.Options{}, err
	}
	return opts, nil
}

// Level picks the log level from s, then cfg, then fallback.
func Level(cfg *config.Config, s Settings, fallback string) string {
	switch {
	case s.LogLevel != "":
		return s.LogLevel
	case cfg.LogLevel != "":
		return cfg.LogLevel
	default:
		return fallback
	}
}

// Open loads the user config and builds an engine for cmd. Unset deps get a
// console logger on logOut and a fresh metrics recorder. The caller must
// Close the engine.
func Open(cmd *cobra.Command, logOut io.Writer, deps engine.Deps) (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	s := SettingsFromFlags(cmd)

	opts, err := Options(cfg, s)
	if err != nil {
		return nil, err
	}

	if deps.Logger == nil {
		log, err := logging.New(Level(cfg, s, defaultCLILevel), logging.FormatConsole, logOut)
		if err != nil {
			return nil, err
		}
		deps.Logger = log.With(zap.String("command", cmd.CommandPath()))
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	eng, err := engine.New(opts, deps)
	if err != nil {
		return nil, err
	}
	return eng, nil
}

// Replay primes eng and applies ticks telemetry ticks one tick interval
// apart from start, interleaving an electrical tick whenever a full
// electrical interval has elapsed. It runs synchronously on the caller's
// goroutine.
func Replay(eng *engine.Engine, start time.Time, ticks int) {
	eng.Prime()
	opts := eng.Options()
	every := max(int(opts.ElectricalInterval/opts.TickInterval), 1)
	for i := 1; i <= ticks; i++ {
		now := start.Add(time.Duration(i) * opts.TickInterval)
		eng.TickTelemetry(now)
		if i%every == 0 {
			eng.TickElectrical(now)
		}
	}
}
