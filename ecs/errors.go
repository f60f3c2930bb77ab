package ecs

import "fmt"

// MissingComponentError reports access to a component that the accessing
// system's filter guaranteed to be present. It signals that filter and
// access logic disagree.
type MissingComponentError struct {
	Entity    EntityId
	Component string
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("entity %d is missing required component %s", e.Entity, e.Component)
}

// SystemFaultError reports an unrecoverable failure while a system processed
// an entity. The system's pass is curtailed for the rest of the frame.
//
// Faults outside entity processing carry the Phase they happened in
// (PhaseBeginFrame, PhaseEndFrame or PhaseFlush) and a zero Entity.
type SystemFaultError struct {
	System string
	Phase  string
	Entity EntityId
	Frame  uint64
	Cause  error
}

const (
	PhaseBeginFrame = "begin frame"
	PhaseEndFrame   = "end frame"
	PhaseFlush      = "flush"
)

func (e *SystemFaultError) Error() string {
	if e.Phase != "" {
		return fmt.Sprintf("system %s faulted in %s of frame %d: %v", e.System, e.Phase, e.Frame, e.Cause)
	}
	return fmt.Sprintf("system %s faulted on entity %d in frame %d: %v", e.System, e.Entity, e.Frame, e.Cause)
}

func (e *SystemFaultError) Unwrap() error {
	return e.Cause
}

// PanicError carries a value recovered from a panicking callback.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
