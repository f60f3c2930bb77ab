package events

import "fmt"

// ListenerError reports a listener that failed or panicked during a dispatch.
// Index is the listener's position in the subscription order for Kind.
type ListenerError struct {
	Kind  Kind
	Index int
	Cause error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("events: listener %d for %s failed: %v", e.Index, e.Kind, e.Cause)
}

func (e *ListenerError) Unwrap() error {
	return e.Cause
}

// PanicError wraps a value recovered from a panicking listener.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
