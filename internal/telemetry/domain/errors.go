package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig classifies every configuration problem that prevents the
// engine from producing valid series. Callers match it with errors.Is.
//
//	if errors.Is(err, domain.ErrInvalidConfig) { ... }
var ErrInvalidConfig = errors.New("invalid telemetry configuration")

// ConfigError describes a single rejected configuration field.
type ConfigError struct {
	// Field names the offending setting, e.g. "parameters[ph]" or "capacity".
	Field string
	// Reason is a short human-readable explanation.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// NewConfigError returns a *ConfigError for field with a formatted reason.
func NewConfigError(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
