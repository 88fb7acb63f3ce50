package classify

import (
	"testing"

	"kaylife/kaydash/internal/telemetry/domain"
)

var ph = domain.Parameter{Key: "ph", Label: "pH", Min: 6.5, Max: 8.5, Precision: 2}

func TestClassify_PHScenarios(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  domain.Status
	}{
		{"far above band", 9.5, domain.StatusCritical},
		{"just above band", 8.6, domain.StatusAlert},
		{"at max", 8.5, domain.StatusOK},
		{"at min", 6.5, domain.StatusOK},
		{"midpoint", 7.5, domain.StatusOK},
		{"just below band", 6.4, domain.StatusAlert},
		{"far below band", 5.0, domain.StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(ph, tt.value); got != tt.want {
				t.Errorf("Classify(ph, %v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestClassify_Bands(t *testing.T) {
	params := []domain.Parameter{
		{Key: "temp", Min: 17, Max: 32},
		{Key: "o2", Min: 4, Max: 10},
		{Key: "turb", Min: 0, Max: 50},
		{Key: "cond", Min: 100, Max: 1200},
		{Key: "neg", Min: -40, Max: -10},
	}

	for _, p := range params {
		tol := Tolerance(p)
		r := p.Range()

		// Sweep the nominal band.
		for i := 0; i <= 100; i++ {
			v := p.Min + r*float64(i)/100
			if got := Classify(p, v); got != domain.StatusOK {
				t.Errorf("%s: Classify(%v) = %q, want ok", p.Key, v, got)
			}
		}

		// Inside the tolerance margin on both sides.
		for _, v := range []float64{p.Max + tol/2, p.Max + tol, p.Min - tol/2, p.Min - tol} {
			if got := Classify(p, v); got != domain.StatusAlert {
				t.Errorf("%s: Classify(%v) = %q, want alert", p.Key, v, got)
			}
		}

		// Strictly beyond the margin.
		for _, v := range []float64{p.Max + tol*1.01, p.Max + r, p.Min - tol*1.01, p.Min - r} {
			if got := Classify(p, v); got != domain.StatusCritical {
				t.Errorf("%s: Classify(%v) = %q, want critical", p.Key, v, got)
			}
		}
	}
}

func TestTolerance(t *testing.T) {
	got := Tolerance(ph)
	if diff := got - 0.2; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("Tolerance(ph) = %v, want 0.2", got)
	}
}

func TestBinary(t *testing.T) {
	cases := map[domain.Status]domain.Status{
		domain.StatusOK:       domain.StatusOK,
		domain.StatusAlert:    domain.StatusCritical,
		domain.StatusCritical: domain.StatusCritical,
	}
	for in, want := range cases {
		if got := Binary(in); got != want {
			t.Errorf("Binary(%q) = %q, want %q", in, got, want)
		}
	}
}
