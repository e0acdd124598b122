// Package ripple is the top-level entry point: a shared default engine
// with package-level observation and effect functions.
//
//	state := ripple.ObserveObject(map[string]any{"count": 0})
//
//	ripple.Effect(func() {
//	    fmt.Println("count is", state.Get("count"))
//	})
//
//	state.Set("count", 1) // the effect re-runs
//
// The package-level functions share one engine, so wrapper identity is
// canonical across a program. Libraries and tests that need isolation
// create their own engine with effect.New.
package ripple
