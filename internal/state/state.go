// Package state consumes the commio event stream, maintains the DebugState
// machine, buffers stream output into a transcript ring, and dispatches to
// registered observers — the event/state handler of spec §4.5.
package state

import "github.com/gdbmi/adapter/internal/command"

// DebugState is the target execution state, driven only by async records
// and explicit lifecycle calls per spec §3's invariant.
type DebugState int

const (
	StateStopped DebugState = iota
	StateStarting
	StateLoaded
	StateRunning
	StatePaused
	StateExited
	StateError
)

func (s DebugState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateLoaded:
		return "loaded"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateExited:
		return "exited"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ExecutionInfo is the state handler's current view of the target, per
// spec §4.5. CurrentFrame and Reason are only meaningful in StatePaused;
// ExitCode only in StateExited; ErrorMsg only in StateError.
type ExecutionInfo struct {
	State         DebugState
	CurrentFrame  *command.StackFrame
	Reason        string
	SignalName    string
	SignalMeaning string
	ExitCode      int
	ErrorMsg      string
}

// clone returns a deep-enough copy safe to hand to an observer without
// risking a data race on the handler's own copy.
func (e ExecutionInfo) clone() ExecutionInfo {
	if e.CurrentFrame != nil {
		frame := *e.CurrentFrame
		e.CurrentFrame = &frame
	}
	return e
}
