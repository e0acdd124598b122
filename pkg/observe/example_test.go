package observe_test

import (
	"fmt"

	"github.com/go-ripple/ripple/pkg/observe"
	"github.com/go-ripple/ripple/pkg/value"
)

// This example shows how to observe a value and read through the wrapper.
// Observing the same value twice returns the same wrapper instance.
func ExampleContext_Observe() {
	ctx := observe.NewContext(observe.Config{})

	user := value.ObjectOf(map[string]any{"name": "Alice"})
	wrapped := ctx.Observe(user).(value.Node)

	// Reads and writes delegate to the underlying value
	fmt.Println(wrapped.Get("name"))
	wrapped.Set("name", "Bob")
	fmt.Println(user.Get("name"))

	// Observation is canonical: the wrapper identity is stable
	fmt.Println(ctx.Observe(user) == any(wrapped))

	// Output:
	// Alice
	// Bob
	// true
}

// This example shows read-only observation. Writes through a read-only
// wrapper are rejected and the underlying value stays untouched.
func ExampleContext_ObserveReadonly() {
	observe.SetDebugMode(false)
	defer observe.SetDebugMode(true)

	ctx := observe.NewContext(observe.Config{})

	config := value.ObjectOf(map[string]any{"port": 8080})
	frozen := ctx.ObserveReadonly(config).(value.Node)

	fmt.Println(frozen.Set("port", 9090))
	fmt.Println(frozen.Get("port"))

	// Output:
	// false
	// 8080
}

// This example shows how to recover the underlying value from a wrapper.
func ExampleContext_ToRaw() {
	ctx := observe.NewContext(observe.Config{})

	items := value.ListOf("a", "b")
	wrapped := ctx.Observe(items)

	fmt.Println(ctx.ToRaw(wrapped) == any(items))
	fmt.Println(ctx.IsObserved(wrapped), ctx.IsObserved(items))

	// Output:
	// true
	// true false
}

// This example shows how to exclude a value from observation entirely.
func ExampleContext_MarkRaw() {
	ctx := observe.NewContext(observe.Config{})

	cache := value.NewMap()
	ctx.MarkRaw(cache)

	// Marked values pass through unchanged in both modes
	fmt.Println(ctx.Observe(cache) == any(cache))
	fmt.Println(ctx.ObserveReadonly(cache) == any(cache))

	// Output:
	// true
	// true
}

// This example shows how to force a value to always be observed read-only.
func ExampleContext_MarkReadonly() {
	ctx := observe.NewContext(observe.Config{})

	settings := value.NewObject()
	ctx.MarkReadonly(settings)

	wrapped := ctx.Observe(settings)
	fmt.Println(ctx.IsReadonly(wrapped))

	// Output:
	// true
}
