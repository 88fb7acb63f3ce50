// Package scheduler drives a task at a fixed period until stopped.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by Run when the scheduler was stopped explicitly.
var ErrStopped = errors.New("scheduler stopped")

// Task is invoked once per tick with the tick instant.
type Task func(now time.Time)

// Ticker abstracts time.Ticker so tests can drive ticks by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker for the given period.
type TickerFunc func(period time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker is the default TickerFunc backed by time.NewTicker.
func NewTicker(period time.Duration) Ticker {
	return realTicker{t: time.NewTicker(period)}
}

// Scheduler runs a Task every period on a single goroutine. Ticks never
// overlap: if a task runs long, missed ticks are dropped by the ticker.
type Scheduler struct {
	name      string
	period    time.Duration
	task      Task
	newTicker TickerFunc

	mu      sync.Mutex
	running bool
	quit    chan struct{}
	done    chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTicker replaces the ticker implementation.
func WithTicker(fn TickerFunc) Option {
	return func(s *Scheduler) { s.newTicker = fn }
}

// New returns a stopped scheduler. period must be positive.
func New(name string, period time.Duration, task Task, opts ...Option) (*Scheduler, error) {
	if period <= 0 {
		return nil, errors.New("scheduler: " + name + ": period must be positive")
	}
	if task == nil {
		return nil, errors.New("scheduler: " + name + ": task must not be nil")
	}
	s := &Scheduler{
		name:      name,
		period:    period,
		task:      task,
		newTicker: NewTicker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Name returns the label given at construction.
func (s *Scheduler) Name() string { return s.name }

// Period returns the tick period.
func (s *Scheduler) Period() time.Duration { return s.period }

// Run blocks, invoking the task on every tick, until ctx is cancelled or
// Stop is called. It returns ctx.Err() or ErrStopped respectively. Run
// returns an error immediately if the scheduler is already running.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("scheduler: " + s.name + ": already running")
	}
	s.running = true
	quit := make(chan struct{})
	done := make(chan struct{})
	s.quit, s.done = quit, done
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(done)
	}()

	ticker := s.newTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-quit:
			return ErrStopped
		case now := <-ticker.C():
			// Stop may have raced with this tick; honor it first.
			select {
			case <-quit:
				return ErrStopped
			default:
			}
			s.task(now)
		}
	}
}

// Stop ends a running Run loop and waits for it to exit. After Stop
// returns the task is never invoked again by that loop. Stop is a no-op
// on a scheduler that is not running and is safe to call repeatedly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	quit, done := s.quit, s.done
	select {
	case <-quit:
	default:
		close(quit)
	}
	s.mu.Unlock()

	<-done
}

// Running reports whether a Run loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
