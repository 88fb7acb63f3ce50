package weather

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

var at = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestDerive_Deterministic(t *testing.T) {
	got := Derive(24.6, 7.3, constSource(0.5), at)
	want := Conditions{
		At:          at,
		AmbientTemp: 28,
		Wind:        8,
		Rain:        1,
		Humidity:    73,
		Pressure:    1014,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Derive mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_Ranges(t *testing.T) {
	src := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 500; i++ {
		c := Derive(20, 5.5, src, at)
		if c.Rain < 0 || c.Rain > 2 {
			t.Fatalf("rain %v out of range", c.Rain)
		}
		if c.Humidity < 60 || c.Humidity > 85 {
			t.Fatalf("humidity %v out of range", c.Humidity)
		}
		if c.Pressure < 1010 || c.Pressure > 1018 {
			t.Fatalf("pressure %v out of range", c.Pressure)
		}
	}
}

func TestDerive_WindWrapsOxygen(t *testing.T) {
	tests := []struct {
		o2   float64
		want float64
	}{
		{o2: 4, want: 5},
		{o2: 5.9, want: 6},
		{o2: 7.99, want: 8},
		{o2: 10, want: 7},
	}
	for _, tt := range tests {
		if got := Derive(20, tt.o2, constSource(0), at).Wind; got != tt.want {
			t.Errorf("wind(o2=%v) = %v, want %v", tt.o2, got, tt.want)
		}
	}
}

func TestDeriveLatest_Fallbacks(t *testing.T) {
	got := DeriveLatest(0, false, 0, false, constSource(0), at)
	if got.AmbientTemp != 27 || got.Wind != 7 {
		t.Errorf("fallbacks not applied: %+v", got)
	}
}
