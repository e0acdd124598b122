package value

// List is a mutable ordered sequence, the array kind. Keys are int indices.
type List struct {
	items []any
}

// NewList creates an empty List.
func NewList() *List {
	return &List{}
}

// ListOf creates a List holding the given items.
func ListOf(items ...any) *List {
	l := &List{items: make([]any, len(items))}
	copy(l.items, items)
	return l
}

// Kind returns KindList.
func (l *List) Kind() Kind { return KindList }

// Get returns the item at an int index, or nil if key is out of range or
// not an int.
func (l *List) Get(key any) any {
	i, ok := index(key)
	if !ok || i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Set stores val at an int index. An index equal to Len appends; anything
// outside [0, Len] is rejected.
func (l *List) Set(key, val any) bool {
	i, ok := index(key)
	if !ok || i < 0 || i > len(l.items) {
		return false
	}
	if i == len(l.items) {
		l.items = append(l.items, val)
		return true
	}
	l.items[i] = val
	return true
}

// Has reports whether key is an index inside the list.
func (l *List) Has(key any) bool {
	i, ok := index(key)
	return ok && i >= 0 && i < len(l.items)
}

// Delete removes the item at an int index, shifting later items down.
func (l *List) Delete(key any) bool {
	i, ok := index(key)
	if !ok || i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Keys returns the indices 0..Len-1.
func (l *List) Keys() []any {
	keys := make([]any, len(l.items))
	for i := range l.items {
		keys[i] = i
	}
	return keys
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Append adds items to the end of the list.
func (l *List) Append(items ...any) {
	l.items = append(l.items, items...)
}

// index normalizes the integer key types a caller may plausibly supply.
func index(key any) (int, bool) {
	switch i := key.(type) {
	case int:
		return i, true
	case int64:
		return int(i), true
	case int32:
		return int(i), true
	}
	return 0, false
}
