package observe

import (
	"weak"

	"github.com/go-ripple/ripple/internal/weakref"
	"github.com/go-ripple/ripple/pkg/value"
)

// wrapperCache maps a raw value's identity token to a weakly held wrapper.
// Neither side of an entry is kept alive by the cache: the wrapper is held
// through a weak pointer and the key is just a token, evicted by a release
// hook once the raw value is reclaimed. Access is guarded by the owning
// Context's mutex.
type wrapperCache struct {
	entries map[uintptr]weak.Pointer[Proxy]
}

func newWrapperCache() wrapperCache {
	return wrapperCache{entries: make(map[uintptr]weak.Pointer[Proxy])}
}

func (c *wrapperCache) get(raw any) (*Proxy, bool) {
	id, ok := weakref.Token(raw)
	if !ok {
		return nil, false
	}
	wp, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	p := wp.Value()
	if p == nil {
		// The wrapper was reclaimed; drop the stale entry.
		delete(c.entries, id)
		return nil, false
	}
	return p, true
}

func (c *wrapperCache) set(raw any, p *Proxy) {
	id, ok := weakref.Token(raw)
	if !ok {
		return
	}
	c.entries[id] = weak.Make(p)
}

func (c *wrapperCache) evict(id uintptr) {
	delete(c.entries, id)
}

// rawCache maps a wrapper's identity token back to the raw value it wraps.
// The raw value is held strongly, but only for as long as the wrapper is
// alive: the wrapper's release hook evicts the entry. Access is guarded by
// the owning Context's mutex.
type rawCache struct {
	entries map[uintptr]value.Node
}

func newRawCache() rawCache {
	return rawCache{entries: make(map[uintptr]value.Node)}
}

func (c *rawCache) get(wrapper any) (value.Node, bool) {
	id, ok := weakref.Token(wrapper)
	if !ok {
		return nil, false
	}
	raw, ok := c.entries[id]
	return raw, ok
}

func (c *rawCache) set(p *Proxy, raw value.Node) {
	id, ok := weakref.Token(p)
	if !ok {
		return
	}
	c.entries[id] = raw
}

func (c *rawCache) evict(id uintptr) {
	delete(c.entries, id)
}

// markSet is a weak-keyed membership set used by the marking registry.
// Access is guarded by the owning Context's mutex.
type markSet struct {
	entries map[uintptr]struct{}
}

func newMarkSet() markSet {
	return markSet{entries: make(map[uintptr]struct{})}
}

func (s *markSet) has(v any) bool {
	id, ok := weakref.Token(v)
	if !ok {
		return false
	}
	_, present := s.entries[id]
	return present
}

// add inserts v and reports whether it was newly added.
func (s *markSet) add(v any) bool {
	id, ok := weakref.Token(v)
	if !ok {
		return false
	}
	if _, present := s.entries[id]; present {
		return false
	}
	s.entries[id] = struct{}{}
	return true
}

func (s *markSet) evict(id uintptr) {
	delete(s.entries, id)
}
