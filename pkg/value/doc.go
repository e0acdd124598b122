// Package value provides the dynamic composite value model observed by the
// Ripple runtime.
//
// Composite values are built from a closed set of container kinds: Object
// (string-keyed record), List (ordered sequence), Map (keyed collection),
// Set (membership collection), and their weak-keyed variants WeakMap and
// WeakSet. Every container implements the [Node] protocol, a uniform
// explicit access surface (Get, Set, Has, Delete, Keys, Len) that observed
// wrappers implement as well, so code written against Node cannot tell a
// raw container from its observed view.
//
// # Building Values
//
// Containers are created with NewX constructors or XOf literals:
//
//	profile := value.ObjectOf(map[string]any{
//	    "name":  "Ada",
//	    "tags":  value.ListOf("admin", "ops"),
//	})
//	profile.Set("active", true)
//
// # Documents
//
// FromJSON, FromYAML, ToJSON and ToYAML convert between documents and
// Object/List trees. This is the usual way application state enters the
// runtime:
//
//	state, err := value.FromYAML(configBytes)
//	if err != nil {
//	    // ...
//	}
//
// # Weak Containers
//
// WeakMap and WeakSet key their entries by reference identity and drop an
// entry once its key becomes unreachable elsewhere. They are not
// enumerable: Keys returns nil.
package value
