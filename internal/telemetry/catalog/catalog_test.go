package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"kaylife/kaydash/internal/telemetry/domain"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_Topology(t *testing.T) {
	c := Default()

	if len(c.Parameters) != 5 {
		t.Errorf("expected 5 parameters, got %d", len(c.Parameters))
	}
	if len(c.Sensors) != 10 {
		t.Errorf("expected 10 sensors, got %d", len(c.Sensors))
	}
	if len(c.Farms) != 10 {
		t.Errorf("expected 10 farms, got %d", len(c.Farms))
	}
	if len(c.Circuits) != 10 {
		t.Errorf("expected 10 circuits, got %d", len(c.Circuits))
	}

	var sizes []int
	for _, g := range c.Generators {
		sizes = append(sizes, len(g.Farms))
	}
	if diff := cmp.Diff([]int{3, 3, 2, 2}, sizes); diff != "" {
		t.Errorf("generator sizes mismatch (-want +got):\n%s", diff)
	}

	g, ok := c.GeneratorOf("farm-7")
	if !ok || g.ID != "gen-3" {
		t.Errorf("GeneratorOf(farm-7) = %q, %v; want gen-3", g.ID, ok)
	}
}

func TestDefault_SeriesIDs(t *testing.T) {
	c := Default()
	ids := c.SeriesIDs()

	if len(ids) != 5+10*5 {
		t.Fatalf("expected 55 series ids, got %d", len(ids))
	}
	if ids[0] != domain.ParamSeries("temp") {
		t.Errorf("first id = %v, want plant-wide temp", ids[0])
	}
	if ids[5] != domain.SensorSeries("sensor-1", "temp") {
		t.Errorf("ids[5] = %v, want sensor-1/temp", ids[5])
	}
}

func TestBuild_RejectsInvertedBand(t *testing.T) {
	params := []domain.Parameter{{Key: "bad", Min: 10, Max: 10}}
	_, err := Build(params, 1, 1, 1, DefaultCircuits())
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestBuild_RejectsDuplicateParameter(t *testing.T) {
	params := []domain.Parameter{
		{Key: "ph", Min: 6.5, Max: 8.5},
		{Key: "ph", Min: 1, Max: 2},
	}
	_, err := Build(params, 1, 1, 1, DefaultCircuits())
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestBuild_TooManyGenerators(t *testing.T) {
	_, err := Build(DefaultParameters(), 1, 2, 3, DefaultCircuits())
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_RejectsEmptyEntitySets(t *testing.T) {
	for _, field := range []string{"sensors", "farms", "generators"} {
		c := Default()
		switch field {
		case "sensors":
			c.Sensors = nil
		case "farms":
			c.Farms = nil
		case "generators":
			c.Generators = nil
		}
		err := c.Validate()
		var cfgErr *domain.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("%s: expected ConfigError, got %v", field, err)
		}
	}
}

func TestValidate_RejectsUnknownGeneratorFarm(t *testing.T) {
	c := Default()
	c.Generators[0].Farms = append(c.Generators[0].Farms, "farm-42")
	if err := c.Validate(); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestParseProfile(t *testing.T) {
	raw := []byte(`
parameters:
  - key: ph
    label: pH
    min: 6.5
    max: 8.5
    precision: 2
  - key: nh3
    label: Amonio
    unit: mg/L
    min: 0
    max: 0.5
sensors: 3
farms: 5
generators: 2
`)

	c, err := ParseProfile(raw)
	if err != nil {
		t.Fatalf("ParseProfile error: %v", err)
	}

	want := []domain.Parameter{
		{Key: "ph", Label: "pH", Min: 6.5, Max: 8.5, Precision: 2},
		{Key: "nh3", Label: "Amonio", Unit: "mg/L", Min: 0, Max: 0.5, Precision: 1},
	}
	if diff := cmp.Diff(want, c.Parameters); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}
	if len(c.Sensors) != 3 || len(c.Farms) != 5 || len(c.Generators) != 2 {
		t.Errorf("unexpected topology: %d sensors, %d farms, %d generators",
			len(c.Sensors), len(c.Farms), len(c.Generators))
	}
	if len(c.Circuits) != len(DefaultCircuits()) {
		t.Errorf("expected default circuits, got %d", len(c.Circuits))
	}
}

func TestParseProfile_EmptyUsesDefaults(t *testing.T) {
	c, err := ParseProfile([]byte("{}"))
	if err != nil {
		t.Fatalf("ParseProfile error: %v", err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("empty profile differs from default (-want +got):\n%s", diff)
	}
}

func TestParseProfile_InvalidBand(t *testing.T) {
	_, err := ParseProfile([]byte("parameters:\n  - key: x\n    min: 5\n    max: 1\n"))
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
}

func TestLoadProfile_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant.yaml")
	if err := os.WriteFile(path, []byte("sensors: 2\nfarms: 4\n"), 0o644); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}

	c, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile error: %v", err)
	}
	if len(c.Sensors) != 2 || len(c.Farms) != 4 || len(c.Generators) != 4 {
		t.Errorf("unexpected topology: %d sensors, %d farms, %d generators",
			len(c.Sensors), len(c.Farms), len(c.Generators))
	}
}
