// Package classify maps a parameter reading to a status using a fixed
// tolerance margin around the parameter's nominal band.
package classify

import "kaylife/kaydash/internal/telemetry/domain"

// ToleranceFraction is the share of the band width that separates alert
// from critical on either side of the band.
const ToleranceFraction = 0.1

// Tolerance returns the alert margin for p.
func Tolerance(p domain.Parameter) float64 {
	return p.Range() * ToleranceFraction
}

// Classify returns the status of value for parameter p.
//
//	critical | alert |      ok       | alert | critical
//	---------+-------+---------------+-------+---------
//	       min-tol  min             max   max+tol
func Classify(p domain.Parameter, value float64) domain.Status {
	tol := Tolerance(p)
	switch {
	case value < p.Min-tol || value > p.Max+tol:
		return domain.StatusCritical
	case value < p.Min || value > p.Max:
		return domain.StatusAlert
	default:
		return domain.StatusOK
	}
}

// Binary collapses alert into critical for views that only show two states.
func Binary(s domain.Status) domain.Status {
	if s == domain.StatusOK {
		return domain.StatusOK
	}
	return domain.StatusCritical
}
