package observe

import "github.com/go-ripple/ripple/pkg/value"

// Proxy is the observed view of a composite value. It implements the same
// access protocol as the value it wraps, forwarding every operation
// through its handler set, so code written against value.Node cannot tell
// the two apart. Proxies are created only by a Context; their identity is
// canonical per (raw value, mode).
type Proxy struct {
	target  value.Node
	handler Handler
}

// Kind returns the structural kind of the wrapped value.
func (p *Proxy) Kind() value.Kind { return p.target.Kind() }

// Get forwards a keyed read through the handler.
func (p *Proxy) Get(key any) any { return p.handler.Get(p.target, key) }

// Set forwards a keyed write through the handler.
func (p *Proxy) Set(key, val any) bool { return p.handler.Set(p.target, key, val) }

// Has forwards a presence check through the handler.
func (p *Proxy) Has(key any) bool { return p.handler.Has(p.target, key) }

// Delete forwards a removal through the handler.
func (p *Proxy) Delete(key any) bool { return p.handler.Delete(p.target, key) }

// Keys forwards key enumeration through the handler.
func (p *Proxy) Keys() []any { return p.handler.Keys(p.target) }

// Len forwards the entry count through the handler.
func (p *Proxy) Len() int { return p.handler.Len(p.target) }
