package commio

import "github.com/gdbmi/adapter/pkg/mi"

// EventKind tags which variant an Event holds.
type EventKind int

const (
	// EventResult is a ResultRecord with no token, broadcast rather than
	// delivered to a waiting caller.
	EventResult EventKind = iota
	// EventAsync is a spontaneous AsyncRecord.
	EventAsync
	// EventStream is console/target/log output, including the synthetic
	// log-channel records the stderr loop injects.
	EventStream
	// EventConnectionLost is synthesized when the stdout reader observes
	// EOF or an I/O error, signalling the child has died.
	EventConnectionLost
)

// Event is the broadcast unit delivered to the event-handler task for
// everything that isn't a token-addressed reply to a specific caller.
type Event struct {
	Kind   EventKind
	Record mi.Record
	Err    error
}
