package observe

import "sync"

// Subscriber is a handle registered against a (value, key) pair by the
// effect system. The core never invokes subscribers itself.
type Subscriber interface {
	// Invalidate tells the subscriber that a key it tracked has changed.
	Invalidate()
}

// iteration is the reserved key type for operations whose result depends
// on the whole key set.
type iteration struct{}

// IterationKey is the reserved property key under which iteration-sensitive
// reads (Keys, Len) are tracked and structural changes (additions,
// deletions) are triggered.
var IterationKey any = iteration{}

// Dep is the subscriber set for a single property key.
type Dep struct {
	mu   sync.Mutex
	subs map[Subscriber]struct{}
}

func newDep() *Dep {
	return &Dep{subs: make(map[Subscriber]struct{})}
}

// Add registers a subscriber and reports whether it was newly added.
func (d *Dep) Add(s Subscriber) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, present := d.subs[s]; present {
		return false
	}
	d.subs[s] = struct{}{}
	return true
}

// Remove unregisters a subscriber.
func (d *Dep) Remove(s Subscriber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.subs, s)
}

// Subscribers returns a snapshot of the registered subscribers, so callers
// can notify without holding the set open against concurrent edits.
func (d *Dep) Subscribers() []Subscriber {
	d.mu.Lock()
	defer d.mu.Unlock()
	subs := make([]Subscriber, 0, len(d.subs))
	for s := range d.subs {
		subs = append(subs, s)
	}
	return subs
}

// Len returns the number of registered subscribers.
func (d *Dep) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// DepMap is the per-key subscriber bookkeeping for one observed value. The
// core creates an empty DepMap when a value is first wrapped; population
// and consumption belong entirely to the effect system.
type DepMap struct {
	mu   sync.Mutex
	keys map[any]*Dep
}

// NewDepMap creates an empty DepMap.
func NewDepMap() *DepMap {
	return &DepMap{keys: make(map[any]*Dep)}
}

// Key returns the subscriber set for key, creating it if absent.
func (m *DepMap) Key(key any) *Dep {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := m.keys[key]
	if d == nil {
		d = newDep()
		m.keys[key] = d
	}
	return d
}

// Lookup returns the subscriber set for key, or nil if none exists.
func (m *DepMap) Lookup(key any) *Dep {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[key]
}

// KeyCount returns the number of keys with a subscriber set.
func (m *DepMap) KeyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.keys)
}
