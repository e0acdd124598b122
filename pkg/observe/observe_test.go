package observe

import (
	"runtime"
	"testing"
	"time"

	"github.com/go-ripple/ripple/pkg/errors"
	"github.com/go-ripple/ripple/pkg/value"
)

func TestObserveIdempotent(t *testing.T) {
	ctx := NewContext(Config{})
	o := value.NewObject()

	first := ctx.Observe(o)
	second := ctx.Observe(o)
	if first != second {
		t.Error("repeated observation must return the same wrapper instance")
	}
	if first == any(o) {
		t.Error("an eligible value should be wrapped, not passed through")
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := NewContext(Config{})
	o := value.NewObject()

	if got := ctx.ToRaw(ctx.Observe(o)); got != any(o) {
		t.Error("ToRaw(Observe(x)) must return x")
	}
	if got := ctx.ToRaw(ctx.ObserveReadonly(o)); got != any(o) {
		t.Error("ToRaw(ObserveReadonly(x)) must return x")
	}
	// ToRaw is idempotent on raw values.
	if got := ctx.ToRaw(o); got != any(o) {
		t.Error("ToRaw of a raw value must return it unchanged")
	}
}

func TestNoDoubleWrap(t *testing.T) {
	ctx := NewContext(Config{})
	o := value.NewObject()

	wrapped := ctx.Observe(o)
	if ctx.Observe(wrapped) != wrapped {
		t.Error("observing a mutable wrapper must be a no-op")
	}

	frozen := ctx.ObserveReadonly(o)
	if ctx.ObserveReadonly(frozen) != frozen {
		t.Error("read-only observing a read-only wrapper must be a no-op")
	}
}

func TestModePrecedence(t *testing.T) {
	ctx := NewContext(Config{})
	o := value.NewObject()

	frozen := ctx.ObserveReadonly(o)
	if ctx.Observe(frozen) != frozen {
		t.Error("a read-only wrapper must never escalate to mutable")
	}
}

func TestModeBridging(t *testing.T) {
	ctx := NewContext(Config{})
	o := value.NewObject()

	wrapped := ctx.Observe(o)
	frozen := ctx.ObserveReadonly(wrapped)
	if frozen == wrapped {
		t.Error("read-only of a mutable wrapper must produce a distinct read-only wrapper")
	}
	if !ctx.IsReadonly(frozen) {
		t.Error("the bridged wrapper must be read-only")
	}
	// Both modes share cache entries keyed by the same raw identity.
	if ctx.ToRaw(frozen) != any(o) {
		t.Error("the bridged wrapper must resolve to the original raw value")
	}
	if ctx.ObserveReadonly(o) != frozen {
		t.Error("bridging and direct read-only observation must agree")
	}
}

func TestPassThroughScalars(t *testing.T) {
	ctx := NewContext(Config{})

	if got := ctx.Observe(5); got != 5 {
		t.Errorf("Observe(5) = %v, want 5", got)
	}
	if got := ctx.ObserveReadonly("text"); got != "text" {
		t.Errorf("ObserveReadonly(text) = %v, want text", got)
	}
	if got := ctx.Observe(nil); got != nil {
		t.Errorf("Observe(nil) = %v, want nil", got)
	}
}

func TestMarkRaw(t *testing.T) {
	ctx := NewContext(Config{})
	o := value.NewObject()

	if ctx.MarkRaw(o) != any(o) {
		t.Error("MarkRaw must return its argument")
	}
	if got := ctx.Observe(o); got != any(o) {
		t.Error("a value marked raw must pass through unchanged")
	}
	if got := ctx.ObserveReadonly(o); got != any(o) {
		t.Error("marking raw applies to both modes")
	}
	if ctx.IsObserved(o) {
		t.Error("a marked-raw value is never observed")
	}
}

func TestMarkReadonly(t *testing.T) {
	ctx := NewContext(Config{})
	o := value.NewObject()

	if ctx.MarkReadonly(o) != any(o) {
		t.Error("MarkReadonly must return its argument")
	}
	wrapped := ctx.Observe(o)
	if !ctx.IsReadonly(wrapped) {
		t.Error("Observe of a forced-read-only value must produce a read-only wrapper")
	}
	if wrapped != ctx.ObserveReadonly(o) {
		t.Error("forced read-only must share the read-only wrapper")
	}
}

func TestMarksRequireReleaseHook(t *testing.T) {
	ctx := NewContext(Config{})

	// A map has an identity token but cannot carry a release hook, so
	// marking it must not record anything: the entry would never be
	// evicted and its token could alias a later allocation.
	m := map[string]int{"k": 1}
	if ctx.MarkRaw(m) == nil {
		t.Error("MarkRaw must return its argument")
	}
	ctx.MarkReadonly(m)

	ctx.mu.Lock()
	skipped := len(ctx.skipped.entries)
	forced := len(ctx.forcedReadonly.entries)
	ctx.mu.Unlock()
	if skipped != 0 || forced != 0 {
		t.Errorf("marks recorded for an unhookable value (skipped=%d forced=%d)", skipped, forced)
	}
}

func TestPredicates(t *testing.T) {
	ctx := NewContext(Config{})
	o := value.NewObject()

	if ctx.IsObserved(o) {
		t.Error("a raw value is not observed")
	}
	wrapped := ctx.Observe(o)
	frozen := ctx.ObserveReadonly(o)

	if !ctx.IsObserved(wrapped) || !ctx.IsObserved(frozen) {
		t.Error("wrappers of both modes are observed")
	}
	if ctx.IsReadonly(wrapped) {
		t.Error("a mutable wrapper is not read-only")
	}
	if !ctx.IsReadonly(frozen) {
		t.Error("a read-only wrapper is read-only")
	}
	if ctx.IsReadonly(o) {
		t.Error("a raw value is not read-only")
	}
}

func TestWhitelist(t *testing.T) {
	ctx := NewContext(Config{})

	eligible := []any{
		value.NewObject(),
		value.NewList(),
		value.NewMap(),
		value.NewWeakMap(),
		value.NewSet(),
		value.NewWeakSet(),
	}
	for _, v := range eligible {
		if ctx.Observe(v) == v {
			t.Errorf("%T should be eligible for observation", v)
		}
	}

	// A composite-looking type outside the whitelist passes through.
	custom := &fakeNode{}
	if got := ctx.Observe(custom); got != any(custom) {
		t.Error("a custom Node implementation must pass through unchanged")
	}
}

func TestHandlerRouting(t *testing.T) {
	plain := &recordingHandler{}
	collection := &recordingHandler{}
	ctx := NewContext(Config{Handlers: Handlers{
		Plain:      plain,
		Collection: collection,
	}})

	obj := ctx.Observe(value.ObjectOf(map[string]any{"k": 1})).(value.Node)
	obj.Get("k")
	if plain.gets != 1 || collection.gets != 0 {
		t.Errorf("object reads must route to the plain handler (plain=%d collection=%d)", plain.gets, collection.gets)
	}

	m := value.NewMap()
	m.Set("k", 1)
	wrapped := ctx.Observe(m).(value.Node)
	wrapped.Get("k")
	if collection.gets != 1 {
		t.Errorf("map reads must route to the collection handler (got %d)", collection.gets)
	}

	l := ctx.Observe(value.ListOf("a")).(value.Node)
	l.Get(0)
	if plain.gets != 2 {
		t.Errorf("list reads must route to the plain handler (got %d)", plain.gets)
	}
}

func TestSentinelExclusion(t *testing.T) {
	marker := value.NewObject()
	ctx := NewContext(Config{
		Sentinel: func(v any) bool { return v == any(marker) },
	})

	if got := ctx.Observe(marker); got != any(marker) {
		t.Error("a sentinel-flagged value must pass through unchanged")
	}
	if ctx.Observe(value.NewObject()) == nil {
		t.Error("other values stay observable")
	}
}

func TestReadonlyWrapperRejectsWrites(t *testing.T) {
	SetDebugMode(false)
	defer SetDebugMode(true)

	ctx := NewContext(Config{})
	o := value.ObjectOf(map[string]any{"k": 1})
	frozen := ctx.ObserveReadonly(o).(value.Node)

	if frozen.Set("k", 2) {
		t.Error("writes through a read-only wrapper must be rejected")
	}
	if frozen.Delete("k") {
		t.Error("deletes through a read-only wrapper must be rejected")
	}
	if o.Get("k") != 1 {
		t.Error("the raw value must be untouched")
	}
	if frozen.Get("k") != 1 {
		t.Error("reads through a read-only wrapper still delegate")
	}
}

func TestMutableWrapperDelegates(t *testing.T) {
	ctx := NewContext(Config{})
	o := value.NewObject()
	wrapped := ctx.Observe(o).(value.Node)

	if !wrapped.Set("k", "v") {
		t.Error("writes through a mutable wrapper must be applied")
	}
	if o.Get("k") != "v" {
		t.Error("the write must land on the raw value")
	}
	if !wrapped.Has("k") || wrapped.Len() != 1 {
		t.Error("reads must reflect the raw value")
	}
	if wrapped.Kind() != value.KindObject {
		t.Error("a wrapper reports its target's kind")
	}
}

func TestDepsSeededOnObserve(t *testing.T) {
	ctx := NewContext(Config{})
	o := value.NewObject()

	if ctx.DepsOf(o) != nil {
		t.Error("an unobserved value has no dependency entry")
	}
	wrapped := ctx.Observe(o)
	deps := ctx.DepsOf(o)
	if deps == nil {
		t.Fatal("observation must seed a dependency entry")
	}
	if ctx.DepsOf(wrapped) != deps {
		t.Error("DepsOf must resolve wrappers to the same entry")
	}
	if deps.KeyCount() != 0 {
		t.Error("the seeded entry starts empty")
	}
}

func TestIneligibleDiagnostic(t *testing.T) {
	var reported *errors.RippleError
	old := errors.DefaultHandler
	errors.SetHandler(&captureHandler{onError: func(e *errors.RippleError) { reported = e }})
	defer errors.SetHandler(old)

	ctx := NewContext(Config{})
	ctx.Observe(42)

	if reported == nil {
		t.Fatal("expected an ineligible-input diagnostic")
	}
	if reported.Kind != errors.KindIneligible {
		t.Errorf("Kind = %v, want KindIneligible", reported.Kind)
	}

	// Silenced in non-debug mode.
	reported = nil
	SetDebugMode(false)
	defer SetDebugMode(true)
	ctx.Observe(42)
	if reported != nil {
		t.Error("diagnostics must be silenced outside debug mode")
	}
}

func TestContextIsolation(t *testing.T) {
	a := NewContext(Config{})
	b := NewContext(Config{})
	o := value.NewObject()

	wrappedA := a.Observe(o)
	if b.IsObserved(wrappedA) {
		t.Error("contexts must not share canonical state")
	}
	wrappedB := b.Observe(o)
	if wrappedA == wrappedB {
		t.Error("each context owns its own wrapper identity")
	}
}

func TestCacheEntriesReclaimed(t *testing.T) {
	ctx := NewContext(Config{})

	func() {
		o := value.NewObject()
		ctx.Observe(o)
		if wrapperEntries(ctx) != 1 || depEntries(ctx) != 1 {
			t.Fatal("expected one cache and one registry entry while alive")
		}
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		if wrapperEntries(ctx) == 0 && rawEntries(ctx) == 0 && depEntries(ctx) == 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if n := wrapperEntries(ctx); n != 0 {
		t.Errorf("raw-to-wrapper entries not reclaimed: %d", n)
	}
	if n := rawEntries(ctx); n != 0 {
		t.Errorf("wrapper-to-raw entries not reclaimed: %d", n)
	}
	if n := depEntries(ctx); n != 0 {
		t.Errorf("dependency entries not reclaimed: %d", n)
	}
}

func wrapperEntries(c *Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.toMutable.entries) + len(c.toReadonly.entries)
}

func rawEntries(c *Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fromMutable.entries) + len(c.fromReadonly.entries)
}

func depEntries(c *Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.deps)
}

// fakeNode implements value.Node without being a whitelisted container.
type fakeNode struct{}

func (f *fakeNode) Kind() value.Kind  { return value.KindObject }
func (f *fakeNode) Get(any) any       { return nil }
func (f *fakeNode) Set(_, _ any) bool { return false }
func (f *fakeNode) Has(any) bool      { return false }
func (f *fakeNode) Delete(any) bool   { return false }
func (f *fakeNode) Keys() []any       { return nil }
func (f *fakeNode) Len() int          { return 0 }

// recordingHandler counts operations so tests can probe handler routing.
type recordingHandler struct {
	gets int
}

func (h *recordingHandler) Get(target value.Node, key any) any {
	h.gets++
	return target.Get(key)
}
func (h *recordingHandler) Set(target value.Node, key, val any) bool {
	return target.Set(key, val)
}
func (h *recordingHandler) Has(target value.Node, key any) bool    { return target.Has(key) }
func (h *recordingHandler) Delete(target value.Node, key any) bool { return target.Delete(key) }
func (h *recordingHandler) Keys(target value.Node) []any           { return target.Keys() }
func (h *recordingHandler) Len(target value.Node) int              { return target.Len() }

type captureHandler struct {
	onError func(*errors.RippleError)
}

func (h *captureHandler) HandleError(err *errors.RippleError) {
	if h.onError != nil {
		h.onError(err)
	}
}
func (h *captureHandler) HandlePanic(*errors.PanicError)        {}
func (h *captureHandler) HandleEffectError(*errors.EffectError) {}
