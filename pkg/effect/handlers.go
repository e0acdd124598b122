package effect

import (
	"github.com/go-ripple/ripple/pkg/observe"
	"github.com/go-ripple/ripple/pkg/value"
)

// trackingHandler is the interception behavior behind every wrapper an
// Engine creates. Reads record dependencies on the running effect and
// return composite results wrapped in the same mode, so nested access
// stays tracked. Writes resolve stale dependencies through triggers; the
// readonly variants reject them instead.
//
// The collection variant additionally treats membership checks as
// iteration-sensitive: for sets, Has is how elements are read, so a
// structural change must invalidate it.
type trackingHandler struct {
	engine     *Engine
	readonly   bool
	collection bool
}

// resolveKey unwraps wrapper keys for the collection kinds, where the key
// is data: a set element or map key must reach the raw container as a raw
// value, and tracking must use the same identity. Plain object and list
// keys are strings and ints, which pass through ToRaw untouched anyway.
func (h *trackingHandler) resolveKey(key any) any {
	if !h.collection {
		return key
	}
	return h.engine.ToRaw(key)
}

func (h *trackingHandler) Get(target value.Node, key any) any {
	key = h.resolveKey(key)
	h.engine.Track(target, key)
	res := target.Get(key)
	if _, ok := res.(value.Node); ok {
		if h.readonly {
			return h.engine.Readonly(res)
		}
		return h.engine.Observe(res)
	}
	return res
}

func (h *trackingHandler) Set(target value.Node, key, val any) bool {
	if h.readonly {
		observe.RejectWrite("effect.Set", target, key)
		return false
	}
	// Store raw values only; a wrapper stored inside a raw container
	// would leak tracking state into the data itself.
	key = h.resolveKey(key)
	raw := h.engine.ToRaw(val)
	had := target.Has(key)
	var old any
	if had {
		old = target.Get(key)
	}
	if !target.Set(key, raw) {
		return false
	}
	if !had {
		h.engine.Trigger(target, key, observe.IterationKey)
	} else if !value.Equal(old, raw) {
		h.engine.Trigger(target, key)
	}
	return true
}

func (h *trackingHandler) Has(target value.Node, key any) bool {
	key = h.resolveKey(key)
	h.engine.Track(target, key)
	if h.collection {
		h.engine.Track(target, observe.IterationKey)
	}
	return target.Has(key)
}

func (h *trackingHandler) Delete(target value.Node, key any) bool {
	if h.readonly {
		observe.RejectWrite("effect.Delete", target, key)
		return false
	}
	key = h.resolveKey(key)
	had := target.Has(key)
	if !target.Delete(key) {
		return false
	}
	if had {
		h.engine.Trigger(target, key, observe.IterationKey)
	}
	return true
}

func (h *trackingHandler) Keys(target value.Node) []any {
	h.engine.Track(target, observe.IterationKey)
	return target.Keys()
}

func (h *trackingHandler) Len(target value.Node) int {
	h.engine.Track(target, observe.IterationKey)
	return target.Len()
}
