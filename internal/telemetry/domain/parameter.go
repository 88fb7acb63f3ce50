// Package domain holds the value types shared by every telemetry package:
// parameter descriptors, samples, series and derived statuses.
package domain

import (
	"math"
	"strconv"
)

// Parameter describes a measured quantity and its nominal operating band.
type Parameter struct {
	Key   string  `json:"key" yaml:"key"`
	Label string  `json:"label" yaml:"label"`
	Unit  string  `json:"unit,omitempty" yaml:"unit"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`

	// Precision is the number of decimals used when displaying values.
	Precision int `json:"precision" yaml:"precision"`
}

// Range returns the width of the nominal band.
func (p Parameter) Range() float64 {
	return p.Max - p.Min
}

// Midpoint returns the center of the nominal band.
func (p Parameter) Midpoint() float64 {
	return (p.Min + p.Max) / 2
}

// Validate reports a ConfigError when the band is empty, inverted or not finite.
func (p Parameter) Validate() error {
	field := "parameters[" + p.Key + "]"
	if p.Key == "" {
		return NewConfigError("parameters", "parameter key must not be empty")
	}
	if math.IsNaN(p.Min) || math.IsInf(p.Min, 0) || math.IsNaN(p.Max) || math.IsInf(p.Max, 0) {
		return NewConfigError(field, "min and max must be finite")
	}
	if p.Min >= p.Max {
		return NewConfigError(field, "min (%g) must be less than max (%g)", p.Min, p.Max)
	}
	if p.Precision < 0 {
		return NewConfigError(field, "precision must not be negative")
	}
	return nil
}

// DisplayLabel returns the label with its unit in parentheses, if any.
func (p Parameter) DisplayLabel() string {
	if p.Unit == "" {
		return p.Label
	}
	return p.Label + " (" + p.Unit + ")"
}

// Format renders v with the parameter's display precision.
func (p Parameter) Format(v float64) string {
	return strconv.FormatFloat(v, 'f', p.Precision, 64)
}

// FormatWithUnit renders v like Format, followed by the unit if any.
func (p Parameter) FormatWithUnit(v float64) string {
	if p.Unit == "" {
		return p.Format(v)
	}
	return p.Format(v) + " " + p.Unit
}
