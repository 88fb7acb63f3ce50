package plant

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kaylife/kaydash/internal/config"
	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/engine"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func TestOptions_Defaults(t *testing.T) {
	opts, err := Options(&config.Config{}, Settings{})
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	want := engine.DefaultOptions()
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_FlagsOverrideConfig(t *testing.T) {
	cfg := &config.Config{HistoryPoints: 120, TickInterval: "500ms"}

	opts, err := Options(cfg, Settings{History: 30, Seed: 9})
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.History != 30 {
		t.Errorf("History = %d, want flag value 30", opts.History)
	}
	if opts.TickInterval != 500*time.Millisecond {
		t.Errorf("TickInterval = %s, want config value 500ms", opts.TickInterval)
	}
	if opts.Seed != 9 {
		t.Errorf("Seed = %d, want 9", opts.Seed)
	}
}

func TestOptions_IntervalOverrides(t *testing.T) {
	opts, err := Options(&config.Config{TickInterval: "2s"}, Settings{TickInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.TickInterval != 10*time.Millisecond {
		t.Errorf("TickInterval = %s, want 10ms", opts.TickInterval)
	}
	if opts.ElectricalInterval != engine.DefaultElectricalInterval {
		t.Errorf("ElectricalInterval = %s, want default", opts.ElectricalInterval)
	}

	if _, err := Options(&config.Config{}, Settings{TickInterval: -time.Second}); err == nil {
		t.Error("expected error for a negative interval")
	}
}

func TestOptions_NegativeHistory(t *testing.T) {
	if _, err := Options(&config.Config{}, Settings{History: -1}); err == nil {
		t.Fatal("expected error for negative history")
	}
}

func TestOptions_Profile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant.yaml")
	profile := "sensors: 3\nfarms: 2\ngenerators: 1\n"
	if err := os.WriteFile(path, []byte(profile), 0o600); err != nil {
		t.Fatal(err)
	}

	opts, err := Options(&config.Config{Profile: path}, Settings{})
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.Catalog == nil || len(opts.Catalog.Sensors) != 3 || len(opts.Catalog.Farms) != 2 {
		t.Fatalf("profile not applied: %+v", opts.Catalog)
	}
}

func TestOptions_InvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant.yaml")
	profile := "parameters:\n  - key: ph\n    min: 9\n    max: 1\n"
	if err := os.WriteFile(path, []byte(profile), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Options(&config.Config{}, Settings{Profile: path})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLevel(t *testing.T) {
	cfg := &config.Config{LogLevel: "info"}
	if got := Level(cfg, Settings{LogLevel: "debug"}, "warn"); got != "debug" {
		t.Errorf("flag: got %q", got)
	}
	if got := Level(cfg, Settings{}, "warn"); got != "info" {
		t.Errorf("config: got %q", got)
	}
	if got := Level(&config.Config{}, Settings{}, "warn"); got != "warn" {
		t.Errorf("fallback: got %q", got)
	}
}

func TestSettingsFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	BindFlags(cmd.PersistentFlags())
	child := &cobra.Command{Use: "child", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.AddCommand(child)

	var got Settings
	child.RunE = func(c *cobra.Command, _ []string) error {
		got = SettingsFromFlags(c)
		return nil
	}
	cmd.SetArgs([]string{"child", "--seed", "5", "--history", "60", "--log-level", "debug"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	want := Settings{Seed: 5, History: 60, LogLevel: "debug"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}
