// Package weakref provides identity tokens and release hooks for values
// with reference identity. It backs the weak-keyed caches in pkg/observe
// and the weak containers in pkg/value: entries keyed by a token do not
// keep the key alive, and a release hook evicts them once the key has been
// reclaimed by the garbage collector.
package weakref

import (
	"reflect"
	"runtime"
	"sync"
)

var (
	mu    sync.Mutex
	hooks = make(map[uintptr][]func())
)

// Token returns a stable identity token for v. It reports false for values
// without reference identity (numbers, strings, booleans, structs passed
// by value).
//
// Pointers to zero-size values all share one runtime address, so their
// tokens collide; callers that need distinct identities must key by
// non-zero-size values. OnRelease rejects them outright.
func Token(v any) (uintptr, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.Pointer(), true
	}
	return 0, false
}

// OnRelease registers fn to run on a background goroutine after v becomes
// unreachable. Multiple hooks may be registered for the same value; they
// run in registration order. Reports whether a hook could be attached:
// only plain non-nil pointers to non-zero-size values can carry one.
//
// OnRelease owns the finalizer slot of its keys. Values passed here must
// not have finalizers set elsewhere, and fn must not reference v or v will
// never be reclaimed.
func OnRelease(v any, fn func()) bool {
	if fn == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	// Zero-size allocations share an address; a hook keyed on it would
	// fire for and evict unrelated values.
	if rv.Type().Elem().Size() == 0 {
		return false
	}
	id := rv.Pointer()
	mu.Lock()
	defer mu.Unlock()
	if _, ok := hooks[id]; !ok {
		runtime.SetFinalizer(v, release)
	}
	hooks[id] = append(hooks[id], fn)
	return true
}

// release fires and clears every hook registered for the reclaimed value.
// The finalizer resurrects obj for the duration of the call; its memory is
// not reused until a later collection, so a token cannot alias a new
// allocation before its hooks have run.
func release(obj any) {
	id, ok := Token(obj)
	if !ok {
		return
	}
	mu.Lock()
	fns := hooks[id]
	delete(hooks, id)
	mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
