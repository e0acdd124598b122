// Package observe provides the observation core: canonical observed
// wrappers over composite values, with identity stability per underlying
// value and per observation mode.
//
// A [Context] owns the canonical state for one observation domain. Its two
// entry points return an observed view of a composite value:
//
//	ctx := observe.NewContext(observe.Config{})
//	state := value.ObjectOf(map[string]any{"count": 0})
//
//	view := ctx.Observe(state)          // mutable wrapper
//	frozen := ctx.ObserveReadonly(state) // read-only wrapper
//
// Observing the same value twice in the same mode always yields the same
// wrapper instance, so wrapper identity is safe to use in equality
// comparisons. Wrapping a wrapper is a no-op, a read-only wrapper never
// escalates back to mutable, and read-only wrapping of a mutable wrapper
// operates on the shared underlying raw value.
//
// Values that cannot be observed (scalars, types outside the container
// whitelist, values excluded with [Context.MarkRaw]) pass through
// unchanged; no entry point fails or panics. When [DebugMode] is on,
// ineligible composite-looking inputs are reported through pkg/errors.
//
// # Handlers
//
// The per-operation interception behavior is pluggable: a [Handler] set is
// chosen at wrap time by structural family (plain object/list versus
// keyed/set collection) and mode. The defaults delegate operations
// unchanged (rejecting writes through read-only views); pkg/effect
// supplies handlers that record dependencies and trigger effect re-runs.
//
// # Memory
//
// All canonical state is weak-keyed: cache, marking and dependency entries
// disappear once the value they describe becomes unreachable elsewhere.
// There is no teardown API.
package observe
