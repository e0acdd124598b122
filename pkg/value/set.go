package value

// Set is a mutable membership collection. Under the Node protocol the
// element doubles as the key: Set(elem, anything) adds elem, Get(elem)
// returns elem when present.
type Set struct {
	elems map[any]struct{}
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{elems: make(map[any]struct{})}
}

// SetOf creates a Set holding the given elements.
func SetOf(elems ...any) *Set {
	s := NewSet()
	for _, e := range elems {
		if comparableKey(e) {
			s.elems[e] = struct{}{}
		}
	}
	return s
}

// Kind returns KindSet.
func (s *Set) Kind() Kind { return KindSet }

// Get returns key itself when it is a member, else nil.
func (s *Set) Get(key any) any {
	if s.Has(key) {
		return key
	}
	return nil
}

// Set adds key as a member; val is ignored.
func (s *Set) Set(key, _ any) bool {
	if !comparableKey(key) {
		return false
	}
	s.elems[key] = struct{}{}
	return true
}

// Has reports membership.
func (s *Set) Has(key any) bool {
	if !comparableKey(key) {
		return false
	}
	_, present := s.elems[key]
	return present
}

// Delete removes a member.
func (s *Set) Delete(key any) bool {
	if !comparableKey(key) {
		return false
	}
	if _, present := s.elems[key]; !present {
		return false
	}
	delete(s.elems, key)
	return true
}

// Keys returns the members in unspecified order.
func (s *Set) Keys() []any {
	keys := make([]any, 0, len(s.elems))
	for e := range s.elems {
		keys = append(keys, e)
	}
	return keys
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.elems) }
