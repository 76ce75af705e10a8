package state

import (
	"sync"

	"github.com/gdbmi/adapter/internal/command"
	"github.com/gdbmi/adapter/internal/commio"
	"github.com/gdbmi/adapter/internal/debug"
	"github.com/gdbmi/adapter/internal/transcript"
	"github.com/gdbmi/adapter/pkg/mi"
)

// StateObserver is called synchronously on the event-handler's own
// goroutine whenever ExecutionInfo changes. It must not block for long
// (spec §4.5).
type StateObserver func(StateChangedEvent)

// OutputObserver is called synchronously for every stream record.
type OutputObserver func(OutputEvent)

// BreakpointsObserver is called synchronously when the breakpoint cache
// goes stale.
type BreakpointsObserver func(BreakpointsStaleEvent)

// ConnectionObserver is called synchronously when the session's connection
// to GDB is lost.
type ConnectionObserver func(ConnectionLostEvent)

// Handler consumes a commio event stream and maintains ExecutionInfo, a
// bounded output transcript, and additive observer registrations.
type Handler struct {
	transcript *transcript.Ring

	mu   sync.Mutex
	info ExecutionInfo

	stateObs       []StateObserver
	outputObs      []OutputObserver
	breakpointsObs []BreakpointsObserver
	connectionObs  []ConnectionObserver

	done chan struct{}
}

// NewHandler constructs a Handler backed by a transcript ring of the given
// capacity (see internal/transcript for the default).
func NewHandler(transcriptCapacity int) *Handler {
	return &Handler{
		transcript: transcript.New(transcriptCapacity),
		info:       ExecutionInfo{State: StateStopped},
		done:       make(chan struct{}),
	}
}

// ObserveState registers cb. Registration is additive; there is no way to
// unregister, matching spec §4.5's "observers outlive the handler" note.
func (h *Handler) ObserveState(cb StateObserver) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stateObs = append(h.stateObs, cb)
}

// ObserveOutput registers cb for stream records.
func (h *Handler) ObserveOutput(cb OutputObserver) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outputObs = append(h.outputObs, cb)
}

// ObserveBreakpoints registers cb for breakpoint-cache staleness.
func (h *Handler) ObserveBreakpoints(cb BreakpointsObserver) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.breakpointsObs = append(h.breakpointsObs, cb)
}

// ObserveConnection registers cb for connection-lost notifications.
func (h *Handler) ObserveConnection(cb ConnectionObserver) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connectionObs = append(h.connectionObs, cb)
}

// Info returns a snapshot of the current ExecutionInfo.
func (h *Handler) Info() ExecutionInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.info.clone()
}

// Transcript returns the buffered output ring.
func (h *Handler) Transcript() *transcript.Ring { return h.transcript }

// NotifyStart applies the lifecycle `start` transition: any state -> Starting.
func (h *Handler) NotifyStart() {
	h.setState(func(info *ExecutionInfo) {
		*info = ExecutionInfo{State: StateStarting}
	})
}

// NotifyStop applies the lifecycle `stop` transition: any state -> Stopped,
// dropping the current frame.
func (h *Handler) NotifyStop() {
	h.setState(func(info *ExecutionInfo) {
		*info = ExecutionInfo{State: StateStopped}
	})
}

// Run drains events from core until the channel closes or done is
// triggered via Stop. It is meant to run on its own goroutine, one per
// session, matching the single event-handler task of spec §5.
func (h *Handler) Run(events <-chan commio.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.handle(ev)
		case <-h.done:
			return
		}
	}
}

// Stop ends Run's event loop. Safe to call more than once.
func (h *Handler) Stop() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

func (h *Handler) handle(ev commio.Event) {
	switch ev.Kind {
	case commio.EventAsync:
		h.handleAsync(ev.Record)
	case commio.EventStream:
		h.handleStream(ev.Record)
	case commio.EventResult:
		// Token-less result records carry no state-machine meaning;
		// nothing in spec §4.5 reacts to them directly.
	case commio.EventConnectionLost:
		h.dispatchConnection(ConnectionLostEvent{Err: ev.Err})
	}
}

func (h *Handler) handleStream(rec mi.Record) {
	channel := rec.Channel.String()
	h.transcript.Append(transcript.Entry{Channel: channel, Content: rec.Content})
	h.dispatchOutput(OutputEvent{Channel: channel, Content: rec.Content})
}

func (h *Handler) handleAsync(rec mi.Record) {
	switch rec.AsyncClass {
	case mi.AsyncClassRunning:
		h.setState(func(info *ExecutionInfo) {
			if info.State == StateStarting || info.State == StatePaused || info.State == StateRunning {
				*info = ExecutionInfo{State: StateRunning}
			}
		})
	case mi.AsyncClassStopped:
		h.handleStopped(rec.Results)
	case mi.AsyncClassThreadGroupExited:
		h.setState(func(info *ExecutionInfo) {
			*info = ExecutionInfo{State: StateExited, ExitCode: 0}
		})
	case mi.AsyncClassBreakpointCreated, mi.AsyncClassBreakpointModified, mi.AsyncClassBreakpointDeleted:
		h.dispatchBreakpoints(BreakpointsStaleEvent{})
	}
}

func (h *Handler) handleStopped(results mi.Tuple) {
	reason := ""
	if v, ok := results["reason"]; ok {
		reason, _ = v.AsString()
	}

	switch reason {
	case "exited-normally":
		h.setState(func(info *ExecutionInfo) {
			*info = ExecutionInfo{State: StateExited, ExitCode: 0}
		})
	case "exited":
		code := 0
		if v, ok := results["exit-code"]; ok {
			if s, ok := v.AsString(); ok {
				code = parseExitCode(s)
			}
		}
		h.setState(func(info *ExecutionInfo) {
			*info = ExecutionInfo{State: StateExited, ExitCode: code}
		})
	case "signal-received":
		frame := decodeOptionalFrame(results)
		signalName := optStr(results, "signal-name")
		signalMeaning := optStr(results, "signal-meaning")
		h.setState(func(info *ExecutionInfo) {
			*info = ExecutionInfo{
				State:         StatePaused,
				Reason:        reason,
				CurrentFrame:  frame,
				SignalName:    signalName,
				SignalMeaning: signalMeaning,
			}
		})
	default:
		frame := decodeOptionalFrame(results)
		h.setState(func(info *ExecutionInfo) {
			*info = ExecutionInfo{
				State:        StatePaused,
				Reason:       reason,
				CurrentFrame: frame,
			}
		})
	}
}

func decodeOptionalFrame(results mi.Tuple) *command.StackFrame {
	v, ok := results["frame"]
	if !ok {
		return nil
	}
	tup, ok := v.AsTuple()
	if !ok {
		return nil
	}
	frame, err := command.DecodeFrame(tup)
	if err != nil {
		debug.LogKV("state", "failed to decode frame", "err", err.Error())
		return nil
	}
	return &frame
}

func optStr(t mi.Tuple, field string) string {
	v, ok := t[field]
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

func parseExitCode(s string) int {
	n := 0
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n
}

func (h *Handler) setState(mutate func(*ExecutionInfo)) {
	h.mu.Lock()
	mutate(&h.info)
	snapshot := h.info.clone()
	h.mu.Unlock()
	h.dispatchState(StateChangedEvent{Info: snapshot})
}

func (h *Handler) dispatchState(ev StateChangedEvent) {
	h.mu.Lock()
	obs := append([]StateObserver(nil), h.stateObs...)
	h.mu.Unlock()
	for _, cb := range obs {
		cb(ev)
	}
}

func (h *Handler) dispatchOutput(ev OutputEvent) {
	h.mu.Lock()
	obs := append([]OutputObserver(nil), h.outputObs...)
	h.mu.Unlock()
	for _, cb := range obs {
		cb(ev)
	}
}

func (h *Handler) dispatchBreakpoints(ev BreakpointsStaleEvent) {
	h.mu.Lock()
	obs := append([]BreakpointsObserver(nil), h.breakpointsObs...)
	h.mu.Unlock()
	for _, cb := range obs {
		cb(ev)
	}
}

func (h *Handler) dispatchConnection(ev ConnectionLostEvent) {
	h.mu.Lock()
	obs := append([]ConnectionObserver(nil), h.connectionObs...)
	h.mu.Unlock()
	for _, cb := range obs {
		cb(ev)
	}
}
