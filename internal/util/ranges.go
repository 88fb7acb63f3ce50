package util

import (
	"fmt"
	"strings"
	"time"
)

// Range is a selectable trend window.
type Range struct {
	Name     string
	Duration time.Duration
}

// Ranges lists the trend windows in cycling order.
var Ranges = []Range{
	{Name: "2h", Duration: 2 * time.Hour},
	{Name: "4h", Duration: 4 * time.Hour},
	{Name: "8h", Duration: 8 * time.Hour},
	{Name: "12h", Duration: 12 * time.Hour},
	{Name: "24h", Duration: 24 * time.Hour},
}

// RangeNames returns the names of Ranges.
func RangeNames() []string {
	names := make([]string, len(Ranges))
	for i, r := range Ranges {
		names[i] = r.Name
	}
	return names
}

// ParseRange resolves a range name such as "8h".
func ParseRange(name string) (Range, error) {
	key := NormalizeKey(name)
	for _, r := range Ranges {
		if r.Name == key {
			return r, nil
		}
	}
	return Range{}, fmt.Errorf("unknown range %q (valid: %s)", name, strings.Join(RangeNames(), ", "))
}

// NextRange returns the range after current, wrapping around.
func NextRange(current string) Range {
	for i, r := range Ranges {
		if r.Name == current {
			return Ranges[(i+1)%len(Ranges)]
		}
	}
	return Ranges[0]
}
