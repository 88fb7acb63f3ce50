// Package engine composes the synthetic telemetry engine: the series store,
// the electrical matrix, both tick schedulers, the alarm journal, metrics
// and frame subscriptions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"kaylife/kaydash/internal/alarms"
	"kaylife/kaydash/internal/metrics"
	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/classify"
	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/electrical"
	"kaylife/kaydash/internal/telemetry/scheduler"
	"kaylife/kaydash/internal/telemetry/store"
	"kaylife/kaydash/internal/telemetry/weather"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrRunning is returned by Run and Start when the engine is already running.
var ErrRunning = errors.New("engine: already running")

// Frame kinds.
const (
	FrameTelemetry  = "telemetry"
	FrameElectrical = "electrical"
)

// Frame is delivered to subscribers after every tick. Telemetry and
// Electrical always carry the latest published state of both loops.
type Frame struct {
	Seq        uint64
	Kind       string
	At         time.Time
	Telemetry  *store.Snapshot
	Electrical *electrical.Matrix
	Weather    weather.Conditions
}

// Engine drives the synthetic telemetry.
type Engine struct {
	opts    Options
	catalog *catalog.Catalog
	session string

	log        *zap.Logger
	metrics    *metrics.Recorder
	journal    alarms.Repository
	ownJournal bool
	detector   *alarms.Detector
	clock      func() time.Time

	store      *store.Store
	telMu      sync.Mutex
	weatherSrc *rand.Rand
	weather    atomic.Pointer[weather.Conditions]

	elecMu sync.Mutex
	elec   *electrical.Generator
	matrix atomic.Pointer[electrical.Matrix]

	telSched  *scheduler.Scheduler
	elecSched *scheduler.Scheduler

	primeOnce sync.Once
	frameSeq  atomic.Uint64

	subMu   sync.Mutex
	subs    map[uint64]func(Frame)
	nextSub uint64

	runMu   sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New validates opts and assembles an engine. Nothing ticks until Run or
// Start.
func New(opts Options, deps Deps) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	e := &Engine{
		opts:       opts,
		catalog:    cat,
		session:    uuid.NewString(),
		log:        deps.Logger,
		metrics:    deps.Metrics,
		journal:    deps.Alarms,
		detector:   alarms.NewDetector(),
		clock:      deps.Clock,
		weatherSrc: rand.New(rand.NewPCG(seed, 3)),
		subs:       make(map[uint64]func(Frame)),
	}
	e.opts.Seed = seed
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	e.log = e.log.With(zap.String("session", e.session))

	var err error
	e.store, err = store.New(cat, opts.History, rand.New(rand.NewPCG(seed, 1)))
	if err != nil {
		return nil, err
	}
	e.elec, err = electrical.NewGenerator(cat, opts.FaultProbability, rand.New(rand.NewPCG(seed, 2)))
	if err != nil {
		return nil, err
	}

	var schedOpts []scheduler.Option
	if deps.Ticker != nil {
		schedOpts = append(schedOpts, scheduler.WithTicker(deps.Ticker))
	}
	e.telSched, err = scheduler.New(FrameTelemetry, opts.TickInterval, func(now time.Time) { e.TickTelemetry(now) }, schedOpts...)
	if err != nil {
		return nil, err
	}
	e.elecSched, err = scheduler.New(FrameElectrical, opts.ElectricalInterval, func(now time.Time) { e.TickElectrical(now) }, schedOpts...)
	if err != nil {
		return nil, err
	}

	if e.journal == nil {
		repo, err := alarms.OpenMemory()
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		e.journal = repo
		e.ownJournal = true
	}
	return e, nil
}

// Session identifies this engine instance in logs and alarm events.
func (e *Engine) Session() string { return e.session }

// Seed returns the effective random seed.
func (e *Engine) Seed() uint64 { return e.opts.Seed }

// Options returns the validated options, with the effective seed.
func (e *Engine) Options() Options { return e.opts }

// Catalog returns the parameter catalog and topology.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Parameters returns the parameter catalog.
func (e *Engine) Parameters() []domain.Parameter {
	return append([]domain.Parameter(nil), e.catalog.Parameters...)
}

// Classify classifies value against the named parameter. The boolean is
// false for unknown parameters.
func (e *Engine) Classify(param string, value float64) (domain.Status, bool) {
	p, ok := e.catalog.Parameter(param)
	if !ok {
		return "", false
	}
	return classify.Classify(p, value), true
}

// Snapshot returns the latest published series snapshot, or nil before
// Prime.
func (e *Engine) Snapshot() *store.Snapshot { return e.store.Snapshot() }

// Electrical returns the latest electrical matrix, or nil before Prime.
func (e *Engine) Electrical() *electrical.Matrix { return e.matrix.Load() }

// Weather returns the latest weather reading.
func (e *Engine) Weather() (weather.Conditions, bool) {
	w := e.weather.Load()
	if w == nil {
		return weather.Conditions{}, false
	}
	return *w, true
}

// Alarms returns the alarm journal.
func (e *Engine) Alarms() alarms.Repository { return e.journal }

// ActiveAlarms counts series and cells currently out of ok.
func (e *Engine) ActiveAlarms() int { return e.detector.Active() }

// Metrics returns the metrics recorder, possibly nil.
func (e *Engine) Metrics() *metrics.Recorder { return e.metrics }

// Subscribe registers fn for every frame. fn runs on the ticking goroutine
// and must not block; it may call the returned unsubscribe func.
func (e *Engine) Subscribe(fn func(Frame)) (unsubscribe func()) {
	e.subMu.Lock()
	e.nextSub++
	id := e.nextSub
	e.subs[id] = fn
	n := len(e.subs)
	e.subMu.Unlock()
	e.metrics.SetSubscribers(n)

	var once sync.Once
	return func() {
		once.Do(func() {
			e.subMu.Lock()
			delete(e.subs, id)
			n := len(e.subs)
			e.subMu.Unlock()
			e.metrics.SetSubscribers(n)
		})
	}
}

func (e *Engine) publish(kind string, at time.Time) {
	f := Frame{
		Seq:        e.frameSeq.Add(1),
		Kind:       kind,
		At:         at,
		Telemetry:  e.store.Snapshot(),
		Electrical: e.matrix.Load(),
	}
	if w := e.weather.Load(); w != nil {
		f.Weather = *w
	}

	e.subMu.Lock()
	ids := make([]uint64, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(Frame), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, e.subs[id])
	}
	e.subMu.Unlock()

	for _, fn := range fns {
		fn(f)
	}
}

// Prime seeds the store and draws the first electrical matrix, once. Run
// calls it; tests and one-shot commands may call it directly.
func (e *Engine) Prime() {
	e.primeOnce.Do(func() {
		now := e.clock()
		e.telMu.Lock()
		snap := e.store.Initialize(now)
		e.afterTelemetry(snap, now)
		e.telMu.Unlock()
		e.log.Debug("store seeded", zap.Int("series", snap.Len()), zap.Int("history", e.opts.History))

		e.TickElectrical(now)
	})
}

// TickTelemetry advances every series once, journals status transitions and
// notifies subscribers.
func (e *Engine) TickTelemetry(now time.Time) {
	start := time.Now()
	e.telMu.Lock()
	snap := e.store.AdvanceAll(now)
	e.afterTelemetry(snap, now)
	e.telMu.Unlock()

	e.metrics.ObserveTick(metrics.LoopTelemetry, time.Since(start))
	e.log.Debug("telemetry tick", zap.Uint64("seq", snap.Seq), zap.Time("at", now))
	e.publish(FrameTelemetry, now)
}

func (e *Engine) afterTelemetry(snap *store.Snapshot, now time.Time) {
	counts := make(map[domain.Status]int, 3)
	for _, id := range e.store.IDs() {
		sample, ok := snap.Latest(id)
		if !ok {
			continue
		}
		p, _ := e.catalog.Parameter(id.Param)
		status := classify.Classify(p, sample.Value)
		counts[status]++

		prev, changed := e.detector.Observe(id.String(), status)
		if changed {
			e.record(&alarms.Event{
				Timestamp: now,
				Source:    alarms.SourceTelemetry,
				Subject:   id.String(),
				Label:     e.seriesLabel(id, p),
				Previous:  prev,
				Current:   status,
				Value:     sample.Value,
				Unit:      p.Unit,
			})
		}
	}
	e.metrics.SetSeriesStatus(counts)

	temp, haveTemp := snap.Latest(domain.ParamSeries("temp"))
	o2, haveO2 := snap.Latest(domain.ParamSeries("o2"))
	w := weather.DeriveLatest(temp.Value, haveTemp, o2.Value, haveO2, e.weatherSrc, now)
	e.weather.Store(&w)
}

func (e *Engine) seriesLabel(id domain.SeriesID, p domain.Parameter) string {
	if id.Sensor == "" {
		return p.Label
	}
	sensor, ok := e.catalog.Sensor(id.Sensor)
	if !ok {
		return id.String()
	}
	return sensor.Label + " · " + p.Label
}

// TickElectrical regenerates the electrical matrix, journals cell
// transitions and notifies subscribers.
func (e *Engine) TickElectrical(now time.Time) {
	start := time.Now()
	e.elecMu.Lock()
	m := e.elec.Generate(now)
	e.matrix.Store(m)
	for _, farm := range m.Farms() {
		for _, circuit := range m.Circuits() {
			status, _ := m.Status(farm, circuit)
			subject := farm + "/" + circuit
			prev, changed := e.detector.Observe(subject, status)
			if changed {
				e.record(&alarms.Event{
					Timestamp: now,
					Source:    alarms.SourceElectrical,
					Subject:   subject,
					Label:     e.cellLabel(farm, circuit),
					Previous:  prev,
					Current:   status,
				})
			}
		}
	}
	e.elecMu.Unlock()

	e.metrics.SetCells(m.Counts())
	e.metrics.ObserveTick(metrics.LoopElectrical, time.Since(start))
	e.log.Debug("electrical tick", zap.Uint64("seq", m.Seq), zap.Int("faults", len(m.Faults())))
	e.publish(FrameElectrical, now)
}

func (e *Engine) cellLabel(farm, circuit string) string {
	label := farm
	if f, ok := e.catalog.Farm(farm); ok {
		label = f.Label
	}
	for _, c := range e.catalog.Circuits {
		if c.ID == circuit {
			return label + " · " + c.Label
		}
	}
	return label + " · " + circuit
}

func (e *Engine) record(ev *alarms.Event) {
	ev.Session = e.session
	ev.Severity = alarms.SeverityFor(ev.Current)
	if err := e.journal.Save(ev); err != nil {
		e.log.Error("failed to journal alarm", zap.String("subject", ev.Subject), zap.Error(err))
		return
	}
	e.metrics.IncAlarm(ev.Severity)

	fields := []zap.Field{
		zap.String("subject", ev.Subject),
		zap.String("previous", string(ev.Previous)),
		zap.String("current", string(ev.Current)),
	}
	if ev.Source == alarms.SourceTelemetry {
		fields = append(fields, zap.Float64("value", ev.Value))
	}
	if ev.Current == domain.StatusCritical {
		e.log.Warn("alarm", fields...)
	} else {
		e.log.Info("alarm", fields...)
	}
}

// Run primes the engine and drives both loops until ctx is cancelled or
// Stop is called. A clean shutdown returns nil.
func (e *Engine) Run(ctx context.Context) error {
	ctx, done, err := e.begin(ctx)
	if err != nil {
		return err
	}
	return e.loop(ctx, done)
}

// Start runs the engine in the background. It returns ErrRunning when a
// loop is already active.
func (e *Engine) Start(ctx context.Context) error {
	ctx, done, err := e.begin(ctx)
	if err != nil {
		return err
	}
	go func() {
		if err := e.loop(ctx, done); err != nil {
			e.log.Error("engine run failed", zap.Error(err))
		}
	}()
	return nil
}

func (e *Engine) begin(parent context.Context) (context.Context, chan struct{}, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	if e.running {
		return nil, nil, ErrRunning
	}
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	e.running, e.cancel, e.done = true, cancel, done
	return ctx, done, nil
}

func (e *Engine) loop(ctx context.Context, done chan struct{}) error {
	defer func() {
		e.runMu.Lock()
		e.cancel()
		e.running, e.cancel, e.done = false, nil, nil
		e.runMu.Unlock()
		close(done)
	}()

	e.Prime()
	e.log.Info("engine started",
		zap.Duration("tick_interval", e.opts.TickInterval),
		zap.Duration("electrical_interval", e.opts.ElectricalInterval),
		zap.Uint64("seed", e.opts.Seed),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.telSched.Run(gctx) })
	g.Go(func() error { return e.elecSched.Run(gctx) })
	err := g.Wait()

	e.log.Info("engine stopped")
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, scheduler.ErrStopped) {
		return nil
	}
	return err
}

// Running reports whether a Run loop is active.
func (e *Engine) Running() bool {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	return e.running
}

// Stop ends the running loop and waits for it to exit. Once Stop returns
// no tick runs and no subscriber is called. Stop is idempotent and must
// not be called from a subscriber.
func (e *Engine) Stop() {
	e.runMu.Lock()
	cancel, done := e.cancel, e.done
	e.runMu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Close stops the engine and releases the journal it opened itself.
func (e *Engine) Close() error {
	e.Stop()
	if e.ownJournal {
		return e.journal.Close()
	}
	return nil
}
