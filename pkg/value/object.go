package value

import "slices"

// Object is a mutable string-keyed record, the plain-object kind.
type Object struct {
	fields map[string]any
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{fields: make(map[string]any)}
}

// ObjectOf creates an Object from the given fields. The map is copied.
func ObjectOf(fields map[string]any) *Object {
	o := NewObject()
	for k, v := range fields {
		o.fields[k] = v
	}
	return o
}

// Kind returns KindObject.
func (o *Object) Kind() Kind { return KindObject }

// Get returns the field named by key, or nil if key is absent or not a
// string.
func (o *Object) Get(key any) any {
	name, ok := key.(string)
	if !ok {
		return nil
	}
	return o.fields[name]
}

// Set stores val under a string key. Non-string keys are rejected.
func (o *Object) Set(key, val any) bool {
	name, ok := key.(string)
	if !ok {
		return false
	}
	o.fields[name] = val
	return true
}

// Has reports whether the named field is present.
func (o *Object) Has(key any) bool {
	name, ok := key.(string)
	if !ok {
		return false
	}
	_, present := o.fields[name]
	return present
}

// Delete removes the named field.
func (o *Object) Delete(key any) bool {
	name, ok := key.(string)
	if !ok {
		return false
	}
	if _, present := o.fields[name]; !present {
		return false
	}
	delete(o.fields, name)
	return true
}

// Keys returns the field names in sorted order.
func (o *Object) Keys() []any {
	names := make([]string, 0, len(o.fields))
	for name := range o.fields {
		names = append(names, name)
	}
	slices.Sort(names)
	keys := make([]any, len(names))
	for i, name := range names {
		keys[i] = name
	}
	return keys
}

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.fields) }
