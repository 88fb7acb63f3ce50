// Package retry re-runs operations that fail with transient errors, such
// as SQLite lock contention when several kaydash processes share one
// journal file.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"
)

// Predicate reports whether err is worth another attempt.
type Predicate func(error) bool

// Policy bounds the attempts and the exponential backoff between them.
type Policy struct {
	Attempts int
	Base     time.Duration
	Cap      time.Duration
}

// JournalPolicy suits short SQLite writes: a writer holding the lock
// finishes within milliseconds.
func JournalPolicy() Policy {
	return Policy{
		Attempts: 5,
		Base:     5 * time.Millisecond,
		Cap:      100 * time.Millisecond,
	}
}

// Do calls fn until it succeeds, retryable rejects its error, the attempts
// run out or ctx is done. It returns fn's last error.
func Do(ctx context.Context, p Policy, retryable Predicate, fn func() error) error {
	attempts := max(p.Attempts, 1)
	if retryable == nil {
		retryable = IsBusy
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts || !retryable(err) {
			return err
		}

		if !wait(ctx, jitter(p.Base, p.Cap, attempt)) {
			return ctx.Err()
		}
	}
	return err
}

// IsBusy reports whether err is SQLite refusing a statement because another
// connection holds the lock.
func IsBusy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "SQLITE_LOCKED") ||
		strings.Contains(msg, "database is locked")
}

// jitter returns a random delay in [0, min(base·2^(attempt-1), cap)].
func jitter(base, limit time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	d := base << (max(attempt, 1) - 1)
	if limit > 0 && d > limit {
		d = limit
	}
	return rand.N(d + 1)
}

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
