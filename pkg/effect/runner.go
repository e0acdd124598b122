package effect

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/go-ripple/ripple/pkg/errors"
	"github.com/go-ripple/ripple/pkg/observe"
)

// Runner is a running effect: a function re-executed whenever a value it
// read during its last run changes. Runners are created by Engine.Effect
// and implement observe.Subscriber.
type Runner struct {
	id     uuid.UUID
	engine *Engine
	fn     func()

	mu     sync.Mutex
	deps   []*observe.Dep
	active bool
}

// ID returns the runner's unique identifier, used in effect error reports.
func (r *Runner) ID() string {
	return r.id.String()
}

// Invalidate schedules the runner for a re-run. Part of the
// observe.Subscriber contract; triggers call it when a tracked key changes.
func (r *Runner) Invalidate() {
	r.mu.Lock()
	active := r.active
	r.mu.Unlock()
	if !active {
		return
	}
	r.engine.schedule(r)
}

// Stop deactivates the runner and unsubscribes it from every dependency.
// A stopped runner never re-runs, even if already scheduled.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return
	}
	r.active = false
	r.mu.Unlock()
	r.clearDeps()
}

// addDep records a dependency so it can be dropped on the next run.
func (r *Runner) addDep(d *observe.Dep) {
	r.mu.Lock()
	r.deps = append(r.deps, d)
	r.mu.Unlock()
}

// clearDeps unsubscribes the runner from every dependency recorded during
// its last run. Called before each run so stale keys stop triggering it.
func (r *Runner) clearDeps() {
	r.mu.Lock()
	deps := r.deps
	r.deps = nil
	r.mu.Unlock()
	for _, d := range deps {
		d.Remove(r)
	}
}

// run executes the effect function with dependency tracking enabled.
// Panics are recovered and reported; a panicking effect stays active and
// re-runs on its next invalidation.
func (r *Runner) run() {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.clearDeps()
	r.engine.pushRunner(r)
	defer r.engine.popRunner()
	defer func() {
		if rec := recover(); rec != nil {
			if err, ok := rec.(error); ok {
				errors.ReportEffectError(&errors.EffectError{
					Runner:     r.ID(),
					Err:        fmt.Errorf("effect panicked: %w", err),
					Recovered:  rec,
					StackTrace: errors.CaptureStack(),
				})
				return
			}
			errors.ReportEffectError(&errors.EffectError{
				Runner:     r.ID(),
				Recovered:  rec,
				StackTrace: errors.CaptureStack(),
			})
		}
	}()

	r.fn()
}
