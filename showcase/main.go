// Command showcase demonstrates the observation runtime end to end: state
// loaded from YAML, effects tracking the parts they read, batched updates,
// and a read-only view serialized back out as JSON.
package main

import (
	"fmt"
	"os"

	"github.com/go-ripple/ripple/pkg/effect"
	"github.com/go-ripple/ripple/pkg/value"
)

const seed = `
service: checkout
replicas: 2
limits:
  cpu: 500m
  memory: 256Mi
`

func main() {
	root, err := value.FromYAML([]byte(seed))
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse seed:", err)
		os.Exit(1)
	}

	engine := effect.New(effect.Config{})
	state := engine.Observe(root).(value.Node)

	// Re-renders whenever the replica count changes.
	banner := engine.Effect(func() {
		fmt.Printf("%v running %v replica(s)\n", state.Get("service"), state.Get("replicas"))
	})

	// Tracks a nested value; reads through the wrapper return wrappers,
	// so the inner object is tracked without observing it by hand.
	engine.Effect(func() {
		limits := state.Get("limits").(value.Node)
		fmt.Printf("cpu limit: %v\n", limits.Get("cpu"))
	})

	state.Set("replicas", 3)

	engine.Batch(func() {
		state.Set("replicas", 5)
		limits := state.Get("limits").(value.Node)
		limits.Set("cpu", "750m")
	})

	banner.Stop()
	state.Set("replicas", 8) // the stopped effect stays quiet

	// A read-only view of the same state shares wrapper identity per mode
	// and serializes transparently.
	view := engine.Readonly(state).(value.Node)
	out, err := value.ToJSON(view)
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode state:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
