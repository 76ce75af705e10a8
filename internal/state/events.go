package state

// StateChangedEvent is delivered to state observers whenever ExecutionInfo
// transitions, carrying the new snapshot.
type StateChangedEvent struct {
	Info ExecutionInfo
}

// OutputEvent is delivered to output observers for every stream record,
// console/target/log channels preserved as-is.
type OutputEvent struct {
	Channel string // "console", "target", or "log"
	Content string
}

// BreakpointsStaleEvent is delivered to breakpoint observers when a
// breakpoint-created/modified/deleted async notification arrives. Per
// spec §4.5, the cached list is never refreshed opportunistically — this
// event only signals that a caller should re-issue break-list.
type BreakpointsStaleEvent struct{}

// ConnectionLostEvent is delivered when the communication core's stdout
// reader observes EOF or an I/O error, i.e. the child has died.
type ConnectionLostEvent struct {
	Err error
}
