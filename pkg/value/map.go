package value

// Map is a mutable keyed collection. Keys may be any comparable value;
// writes with non-comparable keys are rejected rather than panicking.
type Map struct {
	entries map[any]any
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{entries: make(map[any]any)}
}

// MapOf creates a Map from the given entries. The map is copied.
func MapOf(entries map[any]any) *Map {
	m := NewMap()
	for k, v := range entries {
		m.entries[k] = v
	}
	return m
}

// Kind returns KindMap.
func (m *Map) Kind() Kind { return KindMap }

// Get returns the entry stored under key, or nil if absent.
func (m *Map) Get(key any) any {
	if !comparableKey(key) {
		return nil
	}
	return m.entries[key]
}

// Set stores val under key.
func (m *Map) Set(key, val any) bool {
	if !comparableKey(key) {
		return false
	}
	m.entries[key] = val
	return true
}

// Has reports whether key is present.
func (m *Map) Has(key any) bool {
	if !comparableKey(key) {
		return false
	}
	_, present := m.entries[key]
	return present
}

// Delete removes key.
func (m *Map) Delete(key any) bool {
	if !comparableKey(key) {
		return false
	}
	if _, present := m.entries[key]; !present {
		return false
	}
	delete(m.entries, key)
	return true
}

// Keys returns the keys in unspecified order.
func (m *Map) Keys() []any {
	keys := make([]any, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }
