package observe

import (
	"fmt"
	"sync"

	"github.com/go-ripple/ripple/internal/weakref"
	"github.com/go-ripple/ripple/pkg/errors"
	"github.com/go-ripple/ripple/pkg/value"
)

// Config configures a Context. The zero value selects the default
// pass-through handlers and no host sentinel.
type Config struct {
	// Handlers supplies the interception handler sets. Nil slots fall
	// back to the pass-through defaults.
	Handlers Handlers
	// Sentinel, when non-nil, excludes host-framework values from
	// observation: any value it reports true for is ineligible. The
	// predicate is treated as opaque.
	Sentinel func(any) bool
}

// Context owns the canonical observation state for one domain: the four
// weak-keyed cache mappings, the two marking sets, and the dependency
// registry. A fresh Context per test gives full isolation; most programs
// share a single instance (pkg/ripple's default engine does).
//
// All methods are safe for concurrent use; the check-then-insert sequence
// in canonicalization runs under one lock so a value observed from two
// goroutines still gets exactly one wrapper per mode.
type Context struct {
	mu sync.Mutex

	handlers Handlers
	sentinel func(any) bool

	toMutable    wrapperCache // raw -> mutable wrapper
	fromMutable  rawCache     // mutable wrapper -> raw
	toReadonly   wrapperCache // raw -> read-only wrapper
	fromReadonly rawCache     // read-only wrapper -> raw

	forcedReadonly markSet // values wrapped read-only even through Observe
	skipped        markSet // values permanently excluded from observation

	deps map[uintptr]*DepMap
}

// NewContext creates a Context with the given configuration.
func NewContext(cfg Config) *Context {
	return &Context{
		handlers:       cfg.Handlers.merged(),
		sentinel:       cfg.Sentinel,
		toMutable:      newWrapperCache(),
		fromMutable:    newRawCache(),
		toReadonly:     newWrapperCache(),
		fromReadonly:   newRawCache(),
		forcedReadonly: newMarkSet(),
		skipped:        newMarkSet(),
		deps:           make(map[uintptr]*DepMap),
	}
}

// Observe returns the canonical mutable wrapper for target. Ineligible
// values pass through unchanged; observing the same value again returns
// the same wrapper instance.
func (c *Context) Observe(target any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observeLocked(target)
}

func (c *Context) observeLocked(target any) any {
	// A read-only wrapper never escalates back to mutable.
	if _, ok := c.fromReadonly.get(target); ok {
		return target
	}
	if c.forcedReadonly.has(target) {
		return c.observeReadonlyLocked(target)
	}
	return c.canonicalize(target, &c.toMutable, &c.fromMutable,
		c.handlers.Plain, c.handlers.Collection)
}

// ObserveReadonly returns the canonical read-only wrapper for target.
// A mutable wrapper is resolved to its raw value first, so both modes
// share cache entries keyed by the same raw identity.
func (c *Context) ObserveReadonly(target any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observeReadonlyLocked(target)
}

func (c *Context) observeReadonlyLocked(target any) any {
	if raw, ok := c.fromMutable.get(target); ok {
		target = raw
	}
	return c.canonicalize(target, &c.toReadonly, &c.fromReadonly,
		c.handlers.ReadonlyPlain, c.handlers.ReadonlyCollection)
}

// canonicalize is the shared lookup-or-create routine behind both entry
// points, parameterized by the cache pair and handler pair of one mode.
// Must be called with c.mu held.
func (c *Context) canonicalize(target any, toWrapper *wrapperCache, toRaw *rawCache, plain, collection Handler) any {
	node, ok := target.(value.Node)
	if !ok {
		c.diagnose("observe.canonicalize", target)
		return target
	}
	if p, ok := toWrapper.get(target); ok {
		return p
	}
	// target already is a wrapper of this mode
	if _, ok := toRaw.get(target); ok {
		return target
	}
	if !c.eligibleLocked(target) {
		return target
	}

	handler := plain
	if value.KindOf(target).IsCollection() {
		handler = collection
	}
	p := &Proxy{target: node, handler: handler}
	toWrapper.set(target, p)
	toRaw.set(p, node)
	c.seedDepsLocked(target)
	c.installReleaseHooks(target, p, toWrapper, toRaw)
	return p
}

// eligibleLocked decides whether a value may be wrapped: it must be one of
// the whitelisted container kinds, not flagged by the host sentinel, and
// not marked raw.
func (c *Context) eligibleLocked(v any) bool {
	if c.sentinel != nil && c.sentinel(v) {
		return false
	}
	if value.KindOf(v) == value.KindInvalid {
		return false
	}
	if c.skipped.has(v) {
		return false
	}
	return true
}

// IsObserved reports whether v is an observed wrapper in either mode.
func (c *Context) IsObserved(v any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.fromMutable.get(v); ok {
		return true
	}
	_, ok := c.fromReadonly.get(v)
	return ok
}

// IsReadonly reports whether v is a read-only wrapper.
func (c *Context) IsReadonly(v any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.fromReadonly.get(v)
	return ok
}

// ToRaw returns the raw value behind a wrapper, or v itself when v is not
// a wrapper. Idempotent on raw values.
func (c *Context) ToRaw(v any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toRawLocked(v)
}

func (c *Context) toRawLocked(v any) any {
	if raw, ok := c.fromMutable.get(v); ok {
		return raw
	}
	if raw, ok := c.fromReadonly.get(v); ok {
		return raw
	}
	return v
}

// MarkReadonly forces v to be wrapped read-only even when passed to
// Observe. Returns v for fluent use.
func (c *Context) MarkReadonly(v any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mark(v, &c.forcedReadonly)
	return v
}

// MarkRaw permanently excludes v from observation: entry points return it
// unchanged from now on. Returns v for fluent use.
func (c *Context) MarkRaw(v any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mark(v, &c.skipped)
	return v
}

// mark records v in set, but only when an eviction hook can be attached:
// a mark that outlived its value would hold a stale identity token that a
// later allocation at the same address could alias. Values that cannot
// carry a hook are ignored; nothing outside the container whitelist
// observes anyway. Must be called with c.mu held.
func (c *Context) mark(v any, set *markSet) {
	if set.has(v) {
		return
	}
	id, ok := weakref.Token(v)
	if !ok {
		return
	}
	attached := weakref.OnRelease(v, func() {
		c.mu.Lock()
		set.evict(id)
		c.mu.Unlock()
	})
	if attached {
		set.add(v)
	}
}

// DepsOf returns the per-key subscriber map for an observed value, or nil
// if the value has never been observed. Wrappers are resolved to their raw
// value first.
func (c *Context) DepsOf(v any) *DepMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw := c.toRawLocked(v)
	id, ok := weakref.Token(raw)
	if !ok {
		return nil
	}
	return c.deps[id]
}

// seedDepsLocked guarantees a dependency registry entry exists for a value
// before its wrapper is ever returned.
func (c *Context) seedDepsLocked(raw any) {
	id, ok := weakref.Token(raw)
	if !ok {
		return
	}
	if _, present := c.deps[id]; !present {
		c.deps[id] = NewDepMap()
	}
}

// installReleaseHooks ties cache and registry entries to the lifetime of
// the values they describe. The hooks capture only identity tokens, never
// the values themselves.
func (c *Context) installReleaseHooks(raw any, p *Proxy, toWrapper *wrapperCache, toRaw *rawCache) {
	rawID, ok := weakref.Token(raw)
	if ok {
		weakref.OnRelease(raw, func() {
			c.mu.Lock()
			toWrapper.evict(rawID)
			delete(c.deps, rawID)
			c.mu.Unlock()
		})
	}
	proxyID, ok := weakref.Token(p)
	if ok {
		weakref.OnRelease(p, func() {
			c.mu.Lock()
			toRaw.evict(proxyID)
			c.mu.Unlock()
		})
	}
}

// diagnose reports a non-composite input. Non-fatal and debug-only; the
// caller still returns the value unchanged.
func (c *Context) diagnose(op string, target any) {
	if !DebugMode {
		return
	}
	errors.Report(&errors.RippleError{
		Op:     op,
		Kind:   errors.KindIneligible,
		Target: fmt.Sprintf("%T", target),
		Err:    fmt.Errorf("value of type %T cannot be observed", target),
	})
}
