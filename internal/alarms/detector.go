package alarms

import (
	"sync"

	"kaylife/kaydash/internal/telemetry/domain"
)

// Detector remembers the last status per subject and reports changes.
// Unseen subjects start from ok, so a subject first observed out of range
// raises an alarm immediately.
type Detector struct {
	mu   sync.Mutex
	last map[string]domain.Status
}

// NewDetector returns an empty detector.
func NewDetector() *Detector {
	return &Detector{last: make(map[string]domain.Status)}
}

// Observe records status for subject and returns the previous status and
// whether it changed.
func (d *Detector) Observe(subject string, status domain.Status) (domain.Status, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev, ok := d.last[subject]
	if !ok {
		prev = domain.StatusOK
	}
	d.last[subject] = status
	return prev, prev != status
}

// Current returns the last observed status for subject.
func (d *Detector) Current(subject string) (domain.Status, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.last[subject]
	return s, ok
}

// Active counts subjects whose last status is not ok.
func (d *Detector) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, s := range d.last {
		if s != domain.StatusOK {
			n++
		}
	}
	return n
}
