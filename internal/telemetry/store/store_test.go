package store

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/domain"

	"github.com/google/go-cmp/cmp"
)

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, capacity int, seed uint64) *Store {
	t.Helper()
	s, err := New(catalog.Default(), capacity, rand.New(rand.NewPCG(seed, 1)))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s
}

func TestNew_RejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := New(catalog.Default(), capacity, rand.New(rand.NewPCG(1, 1)))
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("capacity %d: expected ErrInvalidConfig, got %v", capacity, err)
		}
	}
}

func TestNew_RejectsInvalidCatalog(t *testing.T) {
	c := catalog.Default()
	c.Parameters[1].Max = c.Parameters[1].Min

	_, err := New(c, CompactCapacity, rand.New(rand.NewPCG(1, 1)))
	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *domain.ConfigError, got %v", err)
	}
	if cfgErr.Field != "parameters[ph]" {
		t.Errorf("Field = %q, want parameters[ph]", cfgErr.Field)
	}
}

func TestLookupMiss_BeforeInitialize(t *testing.T) {
	s := newTestStore(t, CompactCapacity, 1)

	if s.Snapshot() != nil {
		t.Fatal("expected nil snapshot before Initialize")
	}
	if _, ok := s.Latest(domain.ParamSeries("ph")); ok {
		t.Error("expected Latest miss before Initialize")
	}
	if got := s.Window(domain.ParamSeries("ph"), time.Hour); got != nil {
		t.Errorf("expected nil window before Initialize, got %d samples", len(got))
	}
}

func TestLookupMiss_UnknownSeries(t *testing.T) {
	s := newTestStore(t, CompactCapacity, 1)
	s.Initialize(t0)

	unknown := []domain.SeriesID{
		domain.ParamSeries("nh3"),
		domain.SensorSeries("sensor-99", "ph"),
		domain.SensorSeries("sensor-1", "nh3"),
	}
	for _, id := range unknown {
		if _, ok := s.Latest(id); ok {
			t.Errorf("Latest(%v): expected miss", id)
		}
		if got := s.Window(id, 24*time.Hour); got != nil {
			t.Errorf("Window(%v): expected nil, got %d samples", id, len(got))
		}
	}
}

func TestInitialize_SeedsEverySeries(t *testing.T) {
	s := newTestStore(t, CompactCapacity, 1)
	snap := s.Initialize(t0)

	if snap.Seq != 1 {
		t.Errorf("Seq = %d, want 1", snap.Seq)
	}
	if snap.Len() != 55 {
		t.Fatalf("expected 55 series, got %d", snap.Len())
	}
	for _, id := range s.IDs() {
		series := snap.Series(id)
		if len(series) != CompactCapacity {
			t.Fatalf("%v: length %d, want %d", id, len(series), CompactCapacity)
		}
		last, ok := snap.Latest(id)
		if !ok || !last.Timestamp.Equal(t0) {
			t.Errorf("%v: latest = %+v, %v; want timestamp %v", id, last, ok, t0)
		}
	}
}

func TestAdvanceAll_PreservesLengthAndOrder(t *testing.T) {
	s := newTestStore(t, CompactCapacity, 2)
	before := s.Initialize(t0)

	var after *Snapshot
	for i := 1; i <= 5; i++ {
		after = s.AdvanceAll(t0.Add(time.Duration(i) * 3 * time.Second))
	}

	if after.Seq != before.Seq+5 {
		t.Errorf("Seq = %d, want %d", after.Seq, before.Seq+5)
	}

	for _, id := range s.IDs() {
		old := before.Series(id)
		cur := after.Series(id)
		if len(cur) != CompactCapacity {
			t.Fatalf("%v: length %d after 5 ticks, want %d", id, len(cur), CompactCapacity)
		}
		for i := 1; i < len(cur); i++ {
			if !cur[i].Timestamp.After(cur[i-1].Timestamp) {
				t.Fatalf("%v: samples %d and %d out of order", id, i-1, i)
			}
		}

		// The 55 retained samples are the tail of the original series.
		if diff := cmp.Diff(old[5:], cur[:55]); diff != "" {
			t.Fatalf("%v: retained samples differ (-want +got):\n%s", id, diff)
		}
		// The 5 newest samples are newer than anything retained.
		tail := cur[54].Timestamp
		for _, sample := range cur[55:] {
			if !sample.Timestamp.After(tail) {
				t.Fatalf("%v: new sample %v not after retained tail %v", id, sample.Timestamp, tail)
			}
		}
	}
}

func TestAdvanceAll_DoesNotMutatePreviousSnapshot(t *testing.T) {
	s := newTestStore(t, 10, 3)
	before := s.Initialize(t0)

	id := domain.SensorSeries("sensor-4", "o2")
	saved := append(domain.Series(nil), before.Series(id)...)

	s.AdvanceAll(t0.Add(3 * time.Second))

	if diff := cmp.Diff(saved, before.Series(id)); diff != "" {
		t.Errorf("previous snapshot mutated (-want +got):\n%s", diff)
	}
}

func TestAdvanceAll_SeedsUninitializedStore(t *testing.T) {
	s := newTestStore(t, 5, 4)
	snap := s.AdvanceAll(t0)

	if snap.Seq != 2 {
		t.Errorf("Seq = %d, want 2 (seed + advance)", snap.Seq)
	}
	series := snap.Series(domain.ParamSeries("temp"))
	if got := len(series); got != 5 {
		t.Fatalf("length = %d, want 5", got)
	}
	for i := 1; i < len(series); i++ {
		if !series[i].Timestamp.After(series[i-1].Timestamp) {
			t.Fatalf("timestamps not strictly increasing at %d: %v then %v",
				i, series[i-1].Timestamp, series[i].Timestamp)
		}
	}
	if last, _ := series.Latest(); !last.Timestamp.Equal(t0) {
		t.Errorf("latest timestamp = %v, want %v", last.Timestamp, t0)
	}
}

func TestAdvanceAll_CapacityOne(t *testing.T) {
	s := newTestStore(t, 1, 5)
	s.Initialize(t0)
	snap := s.AdvanceAll(t0.Add(time.Second))

	series := snap.Series(domain.ParamSeries("ph"))
	if len(series) != 1 || !series[0].Timestamp.Equal(t0.Add(time.Second)) {
		t.Errorf("unexpected series %+v", series)
	}
}

func TestWindow_FiltersAndGrows(t *testing.T) {
	s := newTestStore(t, DayCapacity, 6)
	snap := s.Initialize(t0)
	id := domain.ParamSeries("cond")

	prev := 0
	for _, d := range []time.Duration{0, time.Minute, 2 * time.Hour, 4 * time.Hour, 8 * time.Hour, 12 * time.Hour, 24 * time.Hour, 48 * time.Hour} {
		window := snap.Window(id, d)
		cutoff := t0.Add(-d)
		for _, sample := range window {
			if sample.Timestamp.Before(cutoff) {
				t.Fatalf("Window(%v) contains %v before cutoff %v", d, sample.Timestamp, cutoff)
			}
		}
		if len(window) < prev {
			t.Fatalf("Window(%v) shrank: %d < %d", d, len(window), prev)
		}
		prev = len(window)
	}

	if got := len(snap.Window(id, 2*time.Hour)); got != 121 {
		t.Errorf("Window(2h) = %d samples, want 121", got)
	}
	if got := len(snap.Window(id, 48*time.Hour)); got != DayCapacity {
		t.Errorf("Window(48h) = %d samples, want %d", got, DayCapacity)
	}
}

func TestSnapshot_ConcurrentReaders(t *testing.T) {
	s := newTestStore(t, CompactCapacity, 8)
	s.Initialize(t0)
	ids := s.IDs()

	var wg sync.WaitGroup
	done := make(chan struct{})
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := s.Snapshot()
				for _, id := range ids {
					if n := len(snap.Series(id)); n != CompactCapacity {
						t.Errorf("reader observed length %d", n)
						return
					}
				}
			}
		}()
	}

	for i := 1; i <= 50; i++ {
		s.AdvanceAll(t0.Add(time.Duration(i) * time.Second))
	}
	close(done)
	wg.Wait()
}

func TestStore_Deterministic(t *testing.T) {
	a := newTestStore(t, CompactCapacity, 99)
	b := newTestStore(t, CompactCapacity, 99)

	a.Initialize(t0)
	b.Initialize(t0)
	for i := 1; i <= 3; i++ {
		at := t0.Add(time.Duration(i) * 3 * time.Second)
		a.AdvanceAll(at)
		b.AdvanceAll(at)
	}

	for _, id := range a.IDs() {
		if diff := cmp.Diff(a.Snapshot().Series(id), b.Snapshot().Series(id)); diff != "" {
			t.Fatalf("%v differs (-a +b):\n%s", id, diff)
		}
	}
}
