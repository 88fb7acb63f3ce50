// Package walk produces synthetic telemetry with a bounded random walk.
//
// Seed builds an initial history that ends at a given instant; Step derives
// the next live sample from the previous one. Both draw from an injected
// Source so runs can be reproduced exactly.
package walk

import (
	"math"
	"time"

	"kaylife/kaydash/internal/telemetry/domain"
)

const (
	// InitialOffset is the spread of the starting value around the midpoint,
	// as a fraction of the band width (±10%).
	InitialOffset = 0.2

	// SeedJitter is the per-point perturbation while building history (±1.5%).
	SeedJitter = 0.03

	// StepJitter is the per-tick perturbation for live samples (±2%).
	StepJitter = 0.04

	// ClampMargin extends the band on both sides before values are clamped.
	ClampMargin = 0.25

	// SeedInterval is the spacing between seeded history points.
	SeedInterval = time.Minute

	// decimals is the rounding applied to every generated value.
	decimals = 2
)

// Source supplies uniformly distributed values in [0, 1).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Generator draws samples for parameters from a single Source.
// A Generator is not safe for concurrent use; give each goroutine its own.
type Generator struct {
	src Source
}

// New returns a Generator backed by src.
func New(src Source) *Generator {
	return &Generator{src: src}
}

// Seed returns length samples for p ending at now, one SeedInterval apart,
// oldest first. A non-positive length yields an empty series.
func (g *Generator) Seed(p domain.Parameter, length int, now time.Time) domain.Series {
	if length <= 0 {
		return domain.Series{}
	}

	r := p.Range()
	v := p.Midpoint() + g.centered()*r*InitialOffset

	out := make(domain.Series, 0, length)
	for i := length - 1; i >= 0; i-- {
		v += g.centered() * r * SeedJitter
		v = Clamp(p, v)
		out = append(out, domain.Sample{
			Timestamp: now.Add(-time.Duration(i) * SeedInterval),
			Value:     roundWithin(p, v),
		})
	}
	return out
}

// Step returns the sample following prev at instant now.
func (g *Generator) Step(prev domain.Sample, p domain.Parameter, now time.Time) domain.Sample {
	v := prev.Value + g.centered()*p.Range()*StepJitter
	return domain.Sample{
		Timestamp: now,
		Value:     roundWithin(p, Clamp(p, v)),
	}
}

// centered returns a uniform draw in [-0.5, 0.5).
func (g *Generator) centered() float64 {
	return g.src.Float64() - 0.5
}

// Bounds returns the clamp range for p: the band widened by ClampMargin.
func Bounds(p domain.Parameter) (lo, hi float64) {
	margin := p.Range() * ClampMargin
	return p.Min - margin, p.Max + margin
}

// Clamp limits v to Bounds(p).
func Clamp(p domain.Parameter, v float64) float64 {
	lo, hi := Bounds(p)
	return math.Max(lo, math.Min(hi, v))
}

// roundWithin rounds v to the generator precision without letting rounding
// push it outside Bounds(p).
func roundWithin(p domain.Parameter, v float64) float64 {
	lo, hi := Bounds(p)
	scale := math.Pow(10, decimals)
	r := Round(v, decimals)
	if r > hi {
		r = math.Floor(hi*scale) / scale
	}
	if r < lo {
		r = math.Ceil(lo*scale) / scale
	}
	return r
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
