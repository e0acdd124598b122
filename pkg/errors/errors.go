// Package errors provides structured error handling for the Ripple runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindIneligible indicates a value that cannot be observed.
	KindIneligible
	// KindReadonlyWrite indicates a rejected write through a read-only wrapper.
	KindReadonlyWrite
	// KindCodec indicates a document encode/decode failure.
	KindCodec
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindIneligible:
		return "ineligible"
	case KindReadonlyWrite:
		return "readonly-write"
	case KindCodec:
		return "codec"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// RippleError represents a structured error in the Ripple runtime.
type RippleError struct {
	// Op is the operation that failed (e.g., "observe.Observe").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Target is the type name of the value involved, if applicable.
	Target string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RippleError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s [%s] target=%s: %v", e.Op, e.Kind, e.Target, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *RippleError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "effect.Runner.run").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// CodecError represents a failure to decode or encode a document.
type CodecError struct {
	// Format is the document format ("json" or "yaml").
	Format string
	// Op is "decode" or "encode".
	Op string
	// Got is the offending value or a description of the input.
	Got any
	// Err is the underlying parser error, if any.
	Err error
}

func (e *CodecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Format, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: got %T", e.Op, e.Format, e.Got)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// EffectError represents a failure during an effect run.
type EffectError struct {
	// Runner is the identifier of the runner that failed.
	Runner string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *EffectError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in effect %s: %v", e.Runner, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in effect %s: %v", e.Runner, e.Err)
	}
	return fmt.Sprintf("unknown error in effect %s", e.Runner)
}

func (e *EffectError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the Ripple runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *RippleError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleEffectError is called when an effect run fails.
	HandleEffectError(err *EffectError)
}
