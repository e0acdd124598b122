package observe

// DebugMode controls whether ineligible-input and rejected-write
// diagnostics are reported. When true, passing a non-composite value to an
// entry point or writing through a read-only wrapper reports a non-fatal
// diagnostic to the pkg/errors handler. The operations themselves behave
// identically either way.
var DebugMode = true

// SetDebugMode enables or disables diagnostic reporting for the runtime.
func SetDebugMode(debug bool) {
	DebugMode = debug
}
