package effect

import "sync"

// scheduler tracks invalidated runners that need re-running.
type scheduler struct {
	mu       sync.Mutex
	dirty    []*Runner
	dirtySet map[*Runner]bool
	flushing bool

	// onNeedsFlush is called when a runner is scheduled, signalling the
	// host that a flush should happen. When set, the engine never flushes
	// on its own; the host decides when.
	onNeedsFlush func()
}

func newScheduler(onNeedsFlush func()) *scheduler {
	return &scheduler{
		dirtySet:     make(map[*Runner]bool),
		onNeedsFlush: onNeedsFlush,
	}
}

// schedule marks a runner as needing a re-run and reports whether it was
// newly added to the dirty set.
func (s *scheduler) schedule(r *Runner) bool {
	added := func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.dirtySet[r] {
			return false
		}
		s.dirtySet[r] = true
		s.dirty = append(s.dirty, r)
		return true
	}()

	if added && s.onNeedsFlush != nil {
		s.onNeedsFlush()
	}
	return added
}

// needsWork returns true if there are runners waiting to be flushed.
func (s *scheduler) needsWork() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty) > 0
}

// flush re-runs all dirty runners until the dirty set stays empty. Runners
// invalidated while the flush is in progress are picked up by the same
// pass. Reentrant calls are no-ops.
func (s *scheduler) flush() {
	s.mu.Lock()
	if s.flushing {
		s.mu.Unlock()
		return
	}
	s.flushing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.flushing = false
		s.mu.Unlock()
	}()

	for {
		s.mu.Lock()
		if len(s.dirty) == 0 {
			s.mu.Unlock()
			return
		}
		dirty := s.dirty
		s.dirty = nil
		clear(s.dirtySet)
		s.mu.Unlock()

		for _, r := range dirty {
			r.run()
		}
	}
}
