package effect

import (
	"sync"

	"github.com/google/uuid"

	"github.com/go-ripple/ripple/pkg/observe"
	"github.com/go-ripple/ripple/pkg/value"
)

// Config configures an Engine. The zero value flushes effects
// synchronously on every trigger.
type Config struct {
	// Sentinel, when non-nil, excludes host-framework values from
	// observation entirely.
	Sentinel func(any) bool

	// OnNeedsFlush is called when an effect is invalidated, signalling
	// the host that Flush should be called. When set, the engine never
	// flushes on its own: the host owns the timing, typically aligning
	// re-runs with its own frame or event loop. When nil, triggers flush
	// synchronously unless inside a Batch.
	OnNeedsFlush func()
}

// Engine ties an observation context to dependency tracking. It installs
// handlers that record which (value, key) pairs each effect reads and
// re-runs effects when those keys change.
type Engine struct {
	ctx   *observe.Context
	sched *scheduler

	mu      sync.Mutex
	current []*Runner
	batch   int

	onNeedsFlush func()
}

// New creates an Engine with its own observation context.
func New(cfg Config) *Engine {
	e := &Engine{onNeedsFlush: cfg.OnNeedsFlush}
	e.sched = newScheduler(cfg.OnNeedsFlush)
	e.ctx = observe.NewContext(observe.Config{
		Sentinel: cfg.Sentinel,
		Handlers: observe.Handlers{
			Plain:              &trackingHandler{engine: e},
			Collection:         &trackingHandler{engine: e, collection: true},
			ReadonlyPlain:      &trackingHandler{engine: e, readonly: true},
			ReadonlyCollection: &trackingHandler{engine: e, readonly: true, collection: true},
		},
	})
	return e
}

// Context returns the engine's observation context.
func (e *Engine) Context() *observe.Context {
	return e.ctx
}

// Observe returns the canonical tracking wrapper for v. Reads through the
// wrapper are recorded against the running effect; writes trigger re-runs.
func (e *Engine) Observe(v any) any {
	return e.ctx.Observe(v)
}

// Readonly returns the canonical read-only tracking wrapper for v. Reads
// are recorded; writes are rejected.
func (e *Engine) Readonly(v any) any {
	return e.ctx.ObserveReadonly(v)
}

// ToRaw returns the raw value behind a wrapper.
func (e *Engine) ToRaw(v any) any {
	return e.ctx.ToRaw(v)
}

// IsObserved reports whether v is a wrapper created by this engine.
func (e *Engine) IsObserved(v any) bool {
	return e.ctx.IsObserved(v)
}

// IsReadonly reports whether v is a read-only wrapper.
func (e *Engine) IsReadonly(v any) bool {
	return e.ctx.IsReadonly(v)
}

// MarkRaw permanently excludes v from observation.
func (e *Engine) MarkRaw(v any) any {
	return e.ctx.MarkRaw(v)
}

// MarkReadonly forces v to be wrapped read-only even through Observe.
func (e *Engine) MarkReadonly(v any) any {
	return e.ctx.MarkReadonly(v)
}

// Effect registers fn as an effect and runs it once immediately to collect
// its dependencies. The returned Runner re-runs whenever a value fn read
// changes; call Stop to end the subscription.
func (e *Engine) Effect(fn func()) *Runner {
	r := &Runner{id: uuid.New(), engine: e, fn: fn, active: true}
	r.run()
	return r
}

// Batch runs fn with flushing suspended: writes inside fn invalidate
// effects but re-runs are deferred until fn returns, so an effect reading
// several written keys runs once instead of once per write. Batches nest.
func (e *Engine) Batch(fn func()) {
	e.mu.Lock()
	e.batch++
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.batch--
		idle := e.batch == 0
		e.mu.Unlock()
		if idle && e.onNeedsFlush == nil {
			e.sched.flush()
		}
	}()
	fn()
}

// Flush re-runs all invalidated effects now. Only needed with OnNeedsFlush;
// otherwise the engine flushes on its own.
func (e *Engine) Flush() {
	e.sched.flush()
}

// NeedsFlush reports whether any effect is waiting to re-run.
func (e *Engine) NeedsFlush() bool {
	return e.sched.needsWork()
}

// Track records that the running effect read key on target. Called by the
// tracking handlers on every read; a no-op when no effect is running.
func (e *Engine) Track(target value.Node, key any) {
	r := e.currentRunner()
	if r == nil {
		return
	}
	deps := e.ctx.DepsOf(target)
	if deps == nil {
		return
	}
	d := deps.Key(key)
	if d.Add(r) {
		r.addDep(d)
	}
}

// Trigger invalidates every effect subscribed to any of the given keys on
// target. The effect currently running is skipped, so an effect writing a
// key it also reads does not invalidate itself.
func (e *Engine) Trigger(target value.Node, keys ...any) {
	deps := e.ctx.DepsOf(target)
	if deps == nil {
		return
	}
	cur := e.currentRunner()
	for _, key := range keys {
		d := deps.Lookup(key)
		if d == nil {
			continue
		}
		for _, s := range d.Subscribers() {
			if r, ok := s.(*Runner); ok && r == cur {
				continue
			}
			s.Invalidate()
		}
	}
}

// schedule queues a runner for re-run and flushes immediately when the
// engine owns its own timing and no batch is open.
func (e *Engine) schedule(r *Runner) {
	if !e.sched.schedule(r) {
		return
	}
	if e.onNeedsFlush != nil {
		return
	}
	e.mu.Lock()
	idle := e.batch == 0
	e.mu.Unlock()
	if idle {
		e.sched.flush()
	}
}

func (e *Engine) pushRunner(r *Runner) {
	e.mu.Lock()
	e.current = append(e.current, r)
	e.mu.Unlock()
}

func (e *Engine) popRunner() {
	e.mu.Lock()
	e.current = e.current[:len(e.current)-1]
	e.mu.Unlock()
}

func (e *Engine) currentRunner() *Runner {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.current) == 0 {
		return nil
	}
	return e.current[len(e.current)-1]
}
