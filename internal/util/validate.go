package util

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ValidateOneOf checks that value (normalized) is in allowed.
func ValidateOneOf(name, value string, allowed []string) error {
	if slices.Contains(allowed, NormalizeKey(value)) {
		return nil
	}
	return fmt.Errorf("%s must be one of %s, got %q", name, strings.Join(allowed, ", "), value)
}

// ParsePositiveInt parses a strictly positive integer.
func ParsePositiveInt(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return n, nil
}

// ParseDuration parses a Go duration ("3s", "1500ms") no shorter than
// floor.
func ParseDuration(name, value string, floor time.Duration) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 3s or 1500ms, got %q", name, value)
	}
	if d < floor || d <= 0 {
		return 0, fmt.Errorf("%s must be at least %s, got %s", name, max(floor, time.Nanosecond), d)
	}
	return d, nil
}
