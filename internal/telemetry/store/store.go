// Package store keeps the bounded time series of every tracked
// (sensor, parameter) pair and publishes them as immutable snapshots.
//
// Writers (Initialize, AdvanceAll) build a complete new Snapshot and swap it
// in with a single atomic pointer store, so readers never block and never
// observe a partially advanced store.
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/walk"
)

// Capacity presets.
const (
	// CompactCapacity keeps one hour of minute-spaced history.
	CompactCapacity = 60
	// DayCapacity keeps 24 hours of minute-spaced history.
	DayCapacity = 1440
)

// Snapshot is an immutable view of every series at one instant.
// Never modify the slices it returns.
type Snapshot struct {
	// Seq increments on every publication, starting at 1 after Initialize.
	Seq uint64
	// At is the instant the snapshot was produced.
	At time.Time

	series map[domain.SeriesID]domain.Series
}

// Series returns the full series for id, or nil when id is not tracked.
func (s *Snapshot) Series(id domain.SeriesID) domain.Series {
	if s == nil {
		return nil
	}
	return s.series[id]
}

// Latest returns the newest sample of id. The boolean is false when id is
// unknown or the store has not been initialized.
func (s *Snapshot) Latest(id domain.SeriesID) (domain.Sample, bool) {
	return s.Series(id).Latest()
}

// Window returns the samples of id whose timestamp is at or after
// At - d, oldest first. Unknown ids yield nil.
func (s *Snapshot) Window(id domain.SeriesID, d time.Duration) domain.Series {
	if s == nil {
		return nil
	}
	series, ok := s.series[id]
	if !ok {
		return nil
	}
	return series.Since(s.At.Add(-d))
}

// Len returns the number of tracked series.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.series)
}

// Store owns the series for a catalog.
type Store struct {
	catalog  *catalog.Catalog
	capacity int
	ids      []domain.SeriesID
	params   map[string]domain.Parameter

	// mu serializes writers; readers go through current only.
	mu      sync.Mutex
	gen     *walk.Generator
	current atomic.Pointer[Snapshot]
}

// New validates the catalog and capacity and returns an empty store.
// Call Initialize before the first AdvanceAll.
func New(c *catalog.Catalog, capacity int, src walk.Source) (*Store, error) {
	if capacity <= 0 {
		return nil, domain.NewConfigError("capacity", "must be positive, got %d", capacity)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	params := make(map[string]domain.Parameter, len(c.Parameters))
	for _, p := range c.Parameters {
		params[p.Key] = p
	}

	return &Store{
		catalog:  c,
		capacity: capacity,
		ids:      c.SeriesIDs(),
		params:   params,
		gen:      walk.New(src),
	}, nil
}

// Capacity returns the fixed length of every series.
func (s *Store) Capacity() int { return s.capacity }

// IDs returns every tracked series id in catalog order.
func (s *Store) IDs() []domain.SeriesID {
	return append([]domain.SeriesID(nil), s.ids...)
}

// Initialize seeds every series with capacity samples ending at now and
// publishes the result, replacing any previous state.
func (s *Store) Initialize(now time.Time) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seedLocked(now)
}

func (s *Store) seedLocked(now time.Time) *Snapshot {
	next := &Snapshot{
		Seq:    s.nextSeq(),
		At:     now,
		series: make(map[domain.SeriesID]domain.Series, len(s.ids)),
	}
	for _, id := range s.ids {
		next.series[id] = s.gen.Seed(s.params[id.Param], s.capacity, now)
	}

	s.current.Store(next)
	return next
}

// AdvanceAll drops the oldest sample of every series and appends one new
// sample stepped from that series' own latest value, then publishes the
// new snapshot. An uninitialized store is first seeded to end one
// SeedInterval before now, so timestamps stay strictly increasing.
func (s *Store) AdvanceAll(now time.Time) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	if prev == nil {
		prev = s.seedLocked(now.Add(-walk.SeedInterval))
	}

	next := &Snapshot{
		Seq:    prev.Seq + 1,
		At:     now,
		series: make(map[domain.SeriesID]domain.Series, len(s.ids)),
	}
	for _, id := range s.ids {
		old := prev.series[id]
		last, _ := old.Latest()

		series := make(domain.Series, len(old))
		copy(series, old[1:])
		series[len(series)-1] = s.gen.Step(last, s.params[id.Param], now)
		next.series[id] = series
	}

	s.current.Store(next)
	return next
}

func (s *Store) nextSeq() uint64 {
	if cur := s.current.Load(); cur != nil {
		return cur.Seq + 1
	}
	return 1
}

// Snapshot returns the latest published snapshot, or nil before Initialize.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Latest returns the newest sample of id from the current snapshot.
func (s *Store) Latest(id domain.SeriesID) (domain.Sample, bool) {
	return s.current.Load().Latest(id)
}

// Window returns the samples of id within d of the current snapshot time.
func (s *Store) Window(id domain.SeriesID, d time.Duration) domain.Series {
	return s.current.Load().Window(id, d)
}
