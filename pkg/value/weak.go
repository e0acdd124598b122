package value

import (
	"sync"

	"github.com/go-ripple/ripple/internal/weakref"
)

// WeakMap is a keyed collection whose entries do not keep their keys
// alive. Keys must be able to carry a release hook (plain non-nil
// pointers, which all containers are); other keys are rejected, since an
// entry that could never be evicted would leak and leave a stale identity
// token behind. An entry disappears once its key becomes unreachable
// elsewhere. WeakMap is not enumerable.
type WeakMap struct {
	mu      sync.Mutex
	entries map[uintptr]any
}

// NewWeakMap creates an empty WeakMap.
func NewWeakMap() *WeakMap {
	return &WeakMap{entries: make(map[uintptr]any)}
}

// Kind returns KindWeakMap.
func (m *WeakMap) Kind() Kind { return KindWeakMap }

// Get returns the entry stored under key, or nil if absent.
func (m *WeakMap) Get(key any) any {
	id, ok := weakref.Token(key)
	if !ok {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[id]
}

// Set stores val under key. Keys that cannot carry a release hook are
// rejected.
func (m *WeakMap) Set(key, val any) bool {
	id, ok := weakref.Token(key)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, present := m.entries[id]; !present {
		attached := weakref.OnRelease(key, func() {
			m.mu.Lock()
			delete(m.entries, id)
			m.mu.Unlock()
		})
		if !attached {
			return false
		}
	}
	m.entries[id] = val
	return true
}

// Has reports whether key is present.
func (m *WeakMap) Has(key any) bool {
	id, ok := weakref.Token(key)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, present := m.entries[id]
	return present
}

// Delete removes key.
func (m *WeakMap) Delete(key any) bool {
	id, ok := weakref.Token(key)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, present := m.entries[id]; !present {
		return false
	}
	delete(m.entries, id)
	return true
}

// Keys returns nil: weak maps are not enumerable.
func (m *WeakMap) Keys() []any { return nil }

// Len returns the number of live entries.
func (m *WeakMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// WeakSet is a membership collection whose entries do not keep their
// elements alive. Elements must be able to carry a release hook, like
// WeakMap keys. WeakSet is not enumerable.
type WeakSet struct {
	mu    sync.Mutex
	elems map[uintptr]struct{}
}

// NewWeakSet creates an empty WeakSet.
func NewWeakSet() *WeakSet {
	return &WeakSet{elems: make(map[uintptr]struct{})}
}

// Kind returns KindWeakSet.
func (s *WeakSet) Kind() Kind { return KindWeakSet }

// Get returns key itself when it is a member, else nil.
func (s *WeakSet) Get(key any) any {
	if s.Has(key) {
		return key
	}
	return nil
}

// Set adds key as a member; val is ignored. Elements that cannot carry a
// release hook are rejected.
func (s *WeakSet) Set(key, _ any) bool {
	id, ok := weakref.Token(key)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, present := s.elems[id]; !present {
		attached := weakref.OnRelease(key, func() {
			s.mu.Lock()
			delete(s.elems, id)
			s.mu.Unlock()
		})
		if !attached {
			return false
		}
	}
	s.elems[id] = struct{}{}
	return true
}

// Has reports membership.
func (s *WeakSet) Has(key any) bool {
	id, ok := weakref.Token(key)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, present := s.elems[id]
	return present
}

// Delete removes a member.
func (s *WeakSet) Delete(key any) bool {
	id, ok := weakref.Token(key)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, present := s.elems[id]; !present {
		return false
	}
	delete(s.elems, id)
	return true
}

// Keys returns nil: weak sets are not enumerable.
func (s *WeakSet) Keys() []any { return nil }

// Len returns the number of live members.
func (s *WeakSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.elems)
}
