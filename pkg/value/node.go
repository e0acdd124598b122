package value

import "reflect"

// Kind identifies the concrete structural kind of a composite value.
type Kind int

const (
	// KindInvalid marks values outside the container whitelist.
	KindInvalid Kind = iota
	// KindObject is a string-keyed record.
	KindObject
	// KindList is an ordered sequence.
	KindList
	// KindMap is a keyed collection.
	KindMap
	// KindWeakMap is a keyed collection with weakly held keys.
	KindWeakMap
	// KindSet is a membership collection.
	KindSet
	// KindWeakSet is a membership collection with weakly held elements.
	KindWeakSet
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindWeakMap:
		return "weakmap"
	case KindSet:
		return "set"
	case KindWeakSet:
		return "weakset"
	default:
		return "invalid"
	}
}

// IsCollection reports whether the kind belongs to the keyed/set collection
// family, as opposed to the plain object/list family.
func (k Kind) IsCollection() bool {
	return k == KindMap || k == KindWeakMap || k == KindSet || k == KindWeakSet
}

// Node is the explicit access protocol shared by composite containers and
// their observed views. Get returns nil for absent keys; use Has to
// distinguish a stored nil from absence. Write operations report whether
// they were applied.
type Node interface {
	// Kind returns the structural kind of the underlying value.
	Kind() Kind
	// Get returns the entry stored under key, or nil if absent.
	Get(key any) any
	// Set stores val under key and reports whether the write was applied.
	Set(key, val any) bool
	// Has reports whether key is present.
	Has(key any) bool
	// Delete removes key and reports whether an entry was removed.
	Delete(key any) bool
	// Keys returns the currently present keys: field names for objects,
	// indices for lists, keys for maps, elements for sets. Weak
	// containers are not enumerable and return nil.
	Keys() []any
	// Len returns the number of entries.
	Len() int
}

// KindOf returns the structural kind of v. Classification is by concrete
// container type, never by interface satisfaction: a third-party Node
// implementation is KindInvalid.
func KindOf(v any) Kind {
	switch v.(type) {
	case *Object:
		return KindObject
	case *List:
		return KindList
	case *Map:
		return KindMap
	case *WeakMap:
		return KindWeakMap
	case *Set:
		return KindSet
	case *WeakSet:
		return KindWeakSet
	}
	return KindInvalid
}

// IsComposite reports whether v speaks the Node protocol, whatever its
// concrete type.
func IsComposite(v any) bool {
	_, ok := v.(Node)
	return ok
}

// comparableKey reports whether k can be used as a map key without
// panicking.
func comparableKey(k any) bool {
	if k == nil {
		return false
	}
	return reflect.TypeOf(k).Comparable()
}

// Equal reports whether two stored values are identical, tolerating
// operands that do not support ==.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}
