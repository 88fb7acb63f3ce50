package domain

// Status is the classification of a value relative to a parameter's band.
type Status string

const (
	// StatusOK means the value lies inside the nominal band.
	StatusOK Status = "ok"
	// StatusAlert means the value left the band but stays within the tolerance margin.
	StatusAlert Status = "alert"
	// StatusCritical means the value is beyond the tolerance margin.
	StatusCritical Status = "critical"
)

// Severity orders statuses so transitions can be compared.
func (s Status) Severity() int {
	switch s {
	case StatusOK:
		return 0
	case StatusAlert:
		return 1
	case StatusCritical:
		return 2
	default:
		return -1
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s.Severity() >= 0
}

// Statuses lists every status in ascending severity.
func Statuses() []Status {
	return []Status{StatusOK, StatusAlert, StatusCritical}
}
