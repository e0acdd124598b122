package ripple

import (
	"github.com/go-ripple/ripple/pkg/effect"
	"github.com/go-ripple/ripple/pkg/value"
)

// defaultEngine backs the package-level functions. Programs that need
// isolation or host-driven flushing create their own effect.Engine.
var defaultEngine = effect.New(effect.Config{})

// Default returns the engine behind the package-level functions.
func Default() *effect.Engine {
	return defaultEngine
}

// Observe returns the canonical tracking wrapper for v. Composite values
// (Object, List, Map, WeakMap, Set, WeakSet) are wrapped; everything else
// passes through unchanged.
func Observe(v any) any {
	return defaultEngine.Observe(v)
}

// Readonly returns the canonical read-only wrapper for v. Reads are
// tracked; writes are rejected.
func Readonly(v any) any {
	return defaultEngine.Readonly(v)
}

// ToRaw returns the raw value behind a wrapper, or v itself when v is not
// a wrapper.
func ToRaw(v any) any {
	return defaultEngine.ToRaw(v)
}

// IsObserved reports whether v is a wrapper created by the default engine.
func IsObserved(v any) bool {
	return defaultEngine.IsObserved(v)
}

// IsReadonly reports whether v is a read-only wrapper.
func IsReadonly(v any) bool {
	return defaultEngine.IsReadonly(v)
}

// MarkRaw permanently excludes v from observation. Returns v.
func MarkRaw(v any) any {
	return defaultEngine.MarkRaw(v)
}

// MarkReadonly forces v to be wrapped read-only even through Observe.
// Returns v.
func MarkReadonly(v any) any {
	return defaultEngine.MarkReadonly(v)
}

// Effect registers fn as an effect on the default engine and runs it once.
func Effect(fn func()) *effect.Runner {
	return defaultEngine.Effect(fn)
}

// Batch defers effect re-runs until fn returns.
func Batch(fn func()) {
	defaultEngine.Batch(fn)
}

// ObserveObject wraps the given fields as an observed Object. Shorthand
// for Observe(value.ObjectOf(fields)).
func ObserveObject(fields map[string]any) value.Node {
	return defaultEngine.Observe(value.ObjectOf(fields)).(value.Node)
}

// ObserveList wraps the given items as an observed List.
func ObserveList(items ...any) value.Node {
	return defaultEngine.Observe(value.ListOf(items...)).(value.Node)
}
