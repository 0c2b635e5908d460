// Package engine drives the fixed-period logical tick over a game.State it
// owns exclusively. All mutation funnels through the engine's lock, so
// there is exactly one logical thread of control advancing the simulation.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"headliner/internal/game"
)

type Config struct {
	TickEvery    time.Duration
	MaxTickDelta time.Duration
	SaveEvery    time.Duration
}

func DefaultConfig() Config {
	return Config{
		TickEvery:    100 * time.Millisecond,
		MaxTickDelta: 5 * time.Second,
		SaveEvery:    10 * time.Second,
	}
}

type TickFunc func(st *game.State, dt time.Duration)

type SaveFunc func(st *game.State)

type Engine struct {
	cfg   Config
	clock Clock
	log   *slog.Logger

	mu       sync.Mutex
	st       *game.State
	running  bool
	stop     chan struct{}
	done     chan struct{}
	onTick   []TickFunc
	onSave   []SaveFunc
	lastSave time.Time
}

func New(st *game.State, clock Clock, logger *slog.Logger, cfg Config) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TickEvery <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg, clock: clock, log: logger, st: st, lastSave: clock.Now()}
}

// OnTick registers an observer invoked with the live state after each tick
// completes. Observers run under the engine lock and must not retain the
// state pointer; anything kept past the callback must be cloned.
func (e *Engine) OnTick(fn TickFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = append(e.onTick, fn)
}

// OnSave registers a persistence callback. It receives a deep clone, so the
// callback may hand the state off to asynchronous storage.
func (e *Engine) OnSave(fn SaveFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSave = append(e.onSave, fn)
}

func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		e.log.Warn("engine already running")
		return
	}
	e.running = true
	e.st.LastTick = e.clock.Now().UnixMilli()
	e.lastSave = e.clock.Now()
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	stop, done := e.stop, e.done
	e.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(e.cfg.TickEvery)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e.Tick()
			}
		}
	}()
}

// Stop halts the tick loop and fires the save callbacks synchronously; no
// tick is in flight when it returns.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		e.log.Warn("engine not running")
		return
	}
	e.running = false
	close(e.stop)
	done := e.done
	e.mu.Unlock()

	<-done

	e.mu.Lock()
	defer e.mu.Unlock()
	e.fireSaveLocked()
}

// Tick runs the full update pipeline exactly once. Exported so the headless
// simulator and tests can drive the pipeline without the ticker.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	nowMS := now.UnixMilli()
	dt := time.Duration(nowMS-e.st.LastTick) * time.Millisecond
	if dt <= 0 {
		// Clock anomaly: charge the nominal period.
		dt = e.cfg.TickEvery
	}
	if dt > e.cfg.MaxTickDelta {
		// A suspended process is not fully credited; one capped tick's
		// worth at most, the rest of the gap is dropped.
		dt = e.cfg.MaxTickDelta
	}
	// LastTick tracks observed wall time, not the clamped delta, so later
	// deltas stay synchronized to real time.
	e.st.LastTick = nowMS

	st := e.st
	intervalStart := nowMS - dt.Milliseconds()
	game.AdvanceQueue(st, nowMS, dt)
	game.PruneBoosts(st, intervalStart)
	game.ApplyIncome(st, dt)
	game.ApplyFanGrowth(st, dt)
	game.ApplyCrossPromo(st, dt)
	game.ProcessTours(st, nowMS)
	game.CheckAutoRelease(st, nowMS)
	game.EvaluateUnlocks(st)
	game.AdvancePhase(st)
	game.RecomputeControl(st)

	for _, fn := range e.onTick {
		e.invokeTick(fn, st, dt)
	}
	if now.Sub(e.lastSave) >= e.cfg.SaveEvery {
		e.lastSave = now
		e.fireSaveLocked()
	}
}

func (e *Engine) invokeTick(fn TickFunc, st *game.State, dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("tick observer panicked", "panic", r)
		}
	}()
	fn(st, dt)
}

func (e *Engine) fireSaveLocked() {
	if len(e.onSave) == 0 {
		return
	}
	snap := e.st.Clone()
	for _, fn := range e.onSave {
		fn(snap)
	}
}

// Snapshot returns a deep clone safe to read outside the tick lock.
func (e *Engine) Snapshot() *game.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.Clone()
}

func (e *Engine) nowMS() int64 { return e.clock.Now().UnixMilli() }

// Mutation entry points. Each locks, validates via the core, and mutates
// nothing on failure.

func (e *Engine) WriteSongs(count int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.WriteSongs(e.st, count)
}

func (e *Engine) ActivateBoost(typ string) (game.Boost, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, err := game.ActivateBoost(e.st, e.nowMS(), typ)
	if err != nil {
		return game.Boost{}, err
	}
	return *b, nil
}

func (e *Engine) BuyProperty(typ string) (game.Property, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := game.BuyProperty(e.st, e.nowMS(), typ)
	if err != nil {
		return game.Property{}, err
	}
	return *p, nil
}

func (e *Engine) BuyUpgrade() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.BuyUpgrade(e.st)
}

func (e *Engine) StartTour() (game.Tour, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, err := game.StartTour(e.st, e.nowMS())
	if err != nil {
		return game.Tour{}, err
	}
	return *t, nil
}

func (e *Engine) ReRelease(albumID string) (game.Album, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, err := game.ReRelease(e.st, e.nowMS(), albumID)
	if err != nil {
		return game.Album{}, err
	}
	return *a, nil
}

func (e *Engine) ScoutTrend() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.ScoutTrend(e.st, e.nowMS())
}

func (e *Engine) Prestige() (game.RetiredArtist, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, err := game.Prestige(e.st, e.nowMS())
	if err != nil {
		return game.RetiredArtist{}, err
	}
	return *a, nil
}
