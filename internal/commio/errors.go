package commio

import "fmt"

// ErrChannelClosed is returned by SendCommand when the session is not
// running, or when an outstanding command is orphaned by session teardown.
var ErrChannelClosed = fmt.Errorf("commio: channel closed")

// ErrNotRunning is returned by operations that require an active session.
var ErrNotRunning = fmt.Errorf("commio: not running")

// GdbError wraps a result record whose class is error; it is surfaced only
// to the caller that issued the command, never broadcast as an event.
type GdbError struct {
	Msg string
}

func (e *GdbError) Error() string { return "commio: gdb error: " + e.Msg }

// WriteError wraps a failure writing or flushing the command to stdin.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("commio: write error: %v", e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// MissingField is returned by a command decoder when a required field is
// absent from the results tuple.
type MissingField struct {
	Field string
}

func (e *MissingField) Error() string { return "commio: missing field " + e.Field }

// TypeError is returned by a command decoder when a field has an unexpected
// shape (e.g. a tuple expected where a string was found).
type TypeError struct {
	Field string
}

func (e *TypeError) Error() string { return "commio: type error on field " + e.Field }
