package ripple_test

import (
	"fmt"

	"github.com/go-ripple/ripple/pkg/ripple"
	"github.com/go-ripple/ripple/pkg/value"
)

// This example shows the shortest path from a plain value to reactive
// state: observe it, read it inside an effect, then write to it.
func Example() {
	todos := ripple.ObserveList("write docs")

	ripple.Effect(func() {
		fmt.Println("todo count:", todos.Len())
	})

	todos.Set(todos.Len(), "ship release")

	// Output:
	// todo count: 1
	// todo count: 2
}

// This example shows read-only views over shared state.
func ExampleReadonly() {
	settings := value.ObjectOf(map[string]any{"theme": "dark"})
	view := ripple.Readonly(settings).(value.Node)

	fmt.Println(view.Get("theme"))
	fmt.Println(ripple.IsReadonly(view))
	fmt.Println(ripple.ToRaw(view) == any(settings))

	// Output:
	// dark
	// true
	// true
}

// This example shows batching several writes into one effect re-run.
func ExampleBatch() {
	point := ripple.ObserveObject(map[string]any{"x": 0, "y": 0})

	ripple.Effect(func() {
		fmt.Printf("(%v, %v)\n", point.Get("x"), point.Get("y"))
	})

	ripple.Batch(func() {
		point.Set("x", 1)
		point.Set("y", 2)
	})

	// Output:
	// (0, 0)
	// (1, 2)
}
