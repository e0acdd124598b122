// Package effect provides dependency tracking and automatic re-execution
// on top of the observation core.
//
// An Engine owns an observation context whose wrappers record, for every
// read, which (value, key) pair the running effect depended on. Writes
// through a wrapper trigger the effects subscribed to the written key.
//
// # Effects
//
// Effect registers a function and runs it once to collect dependencies:
//
//	engine := effect.New(effect.Config{})
//	state := engine.Observe(value.ObjectOf(map[string]any{"count": 0})).(value.Node)
//
//	runner := engine.Effect(func() {
//	    fmt.Println("count is", state.Get("count"))
//	})
//
//	state.Set("count", 1) // re-runs the effect
//	runner.Stop()          // ends the subscription
//
// Dependencies are re-collected on every run, so branches that stop
// reading a key stop being invalidated by it.
//
// # Batching and flush control
//
// Batch defers re-runs until the batch closes, collapsing several writes
// into one run per affected effect:
//
//	engine.Batch(func() {
//	    state.Set("a", 1)
//	    state.Set("b", 2)
//	})
//
// Hosts that align effect re-runs with their own loop set
// Config.OnNeedsFlush and call Flush when ready; the engine then never
// flushes on its own.
//
// # Structural reads
//
// Keys and Len depend on the whole key set and are tracked under a
// reserved iteration key, so additions and deletions invalidate them even
// when no individual key they saw has changed.
package effect
