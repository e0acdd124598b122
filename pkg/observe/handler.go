package observe

import (
	"fmt"

	"github.com/go-ripple/ripple/pkg/errors"
	"github.com/go-ripple/ripple/pkg/value"
)

// Handler intercepts operations flowing from an observed wrapper to its
// underlying value. The core only selects and forwards to a handler; what
// happens per operation (delegation, dependency recording, write
// rejection) is the handler's business.
type Handler interface {
	Get(target value.Node, key any) any
	Set(target value.Node, key, val any) bool
	Has(target value.Node, key any) bool
	Delete(target value.Node, key any) bool
	Keys(target value.Node) []any
	Len(target value.Node) int
}

// Handlers selects the interception behavior per structural family and
// mode. Plain covers objects and lists; Collection covers the keyed/set
// kinds.
type Handlers struct {
	Plain              Handler
	Collection         Handler
	ReadonlyPlain      Handler
	ReadonlyCollection Handler
}

// DefaultHandlers returns pass-through handler sets: mutable wrappers
// delegate every operation unchanged, read-only wrappers delegate reads
// and reject writes.
func DefaultHandlers() Handlers {
	return Handlers{
		Plain:              passthroughHandler{},
		Collection:         passthroughHandler{},
		ReadonlyPlain:      readonlyHandler{},
		ReadonlyCollection: readonlyHandler{},
	}
}

// merged fills any nil slot in h from the defaults.
func (h Handlers) merged() Handlers {
	defaults := DefaultHandlers()
	if h.Plain == nil {
		h.Plain = defaults.Plain
	}
	if h.Collection == nil {
		h.Collection = defaults.Collection
	}
	if h.ReadonlyPlain == nil {
		h.ReadonlyPlain = defaults.ReadonlyPlain
	}
	if h.ReadonlyCollection == nil {
		h.ReadonlyCollection = defaults.ReadonlyCollection
	}
	return h
}

type passthroughHandler struct{}

func (passthroughHandler) Get(target value.Node, key any) any      { return target.Get(key) }
func (passthroughHandler) Set(target value.Node, key, val any) bool {
	return target.Set(key, val)
}
func (passthroughHandler) Has(target value.Node, key any) bool    { return target.Has(key) }
func (passthroughHandler) Delete(target value.Node, key any) bool { return target.Delete(key) }
func (passthroughHandler) Keys(target value.Node) []any           { return target.Keys() }
func (passthroughHandler) Len(target value.Node) int              { return target.Len() }

type readonlyHandler struct{}

func (readonlyHandler) Get(target value.Node, key any) any { return target.Get(key) }

func (readonlyHandler) Set(target value.Node, key, _ any) bool {
	RejectWrite("observe.Proxy.Set", target, key)
	return false
}

func (readonlyHandler) Has(target value.Node, key any) bool { return target.Has(key) }

func (readonlyHandler) Delete(target value.Node, key any) bool {
	RejectWrite("observe.Proxy.Delete", target, key)
	return false
}

func (readonlyHandler) Keys(target value.Node) []any { return target.Keys() }
func (readonlyHandler) Len(target value.Node) int    { return target.Len() }

// RejectWrite reports a rejected write through a read-only wrapper. The
// write stays a no-op either way; the report only fires in debug mode.
func RejectWrite(op string, target value.Node, key any) {
	if !DebugMode {
		return
	}
	errors.Report(&errors.RippleError{
		Op:     op,
		Kind:   errors.KindReadonlyWrite,
		Target: fmt.Sprintf("%T", target),
		Err:    fmt.Errorf("write to read-only %s (key %v)", target.Kind(), key),
	})
}
