// Package alarms journals status transitions of water series and electrical
// cells.
package alarms

import (
	"time"

	"kaylife/kaydash/internal/telemetry/domain"
)

// Event sources.
const (
	SourceTelemetry  = "telemetry"
	SourceElectrical = "electrical"
)

// Severities, derived from the status an alarm transitions into.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Event is one journaled status transition.
type Event struct {
	ID        int64         `json:"id"`
	Session   string        `json:"session"`
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source"`
	Subject   string        `json:"subject"`
	Label     string        `json:"label,omitempty"`
	Previous  domain.Status `json:"previous"`
	Current   domain.Status `json:"current"`
	Severity  string        `json:"severity"`
	Value     float64       `json:"value"`
	Unit      string        `json:"unit,omitempty"`
}

// SeverityFor maps the status entered by a transition to a severity.
// Recoveries to ok are informational.
func SeverityFor(s domain.Status) string {
	switch s {
	case domain.StatusCritical:
		return SeverityCritical
	case domain.StatusAlert:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// ValidSeverity reports whether s names a known severity.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}
