// Package bridge exposes a running adapter.Session to an external front-end
// over a trimmed HTTP/WebSocket surface: one event stream and one control
// channel, plus mDNS advertisement and QR-code pairing for LAN discovery.
// The shape is grounded on the teacher's internal/webserver package, cut
// down to the single session this adapter ever manages.
package bridge

import (
	"github.com/gdbmi/adapter/internal/state"
)

// envelope is the wire frame for every message pushed to a front-end,
// matching the teacher's wsEnvelope{Type, Data} shape.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type wireFrame struct {
	Func string `json:"func,omitempty"`
	File string `json:"file,omitempty"`
	Line uint32 `json:"line,omitempty"`
	Addr string `json:"addr,omitempty"`
}

type wireState struct {
	State         string     `json:"state"`
	Reason        string     `json:"reason,omitempty"`
	SignalName    string     `json:"signal_name,omitempty"`
	SignalMeaning string     `json:"signal_meaning,omitempty"`
	ExitCode      int        `json:"exit_code,omitempty"`
	ErrorMsg      string     `json:"error_msg,omitempty"`
	Frame         *wireFrame `json:"frame,omitempty"`
}

func toWireState(info state.ExecutionInfo) wireState {
	w := wireState{
		State:         info.State.String(),
		Reason:        info.Reason,
		SignalName:    info.SignalName,
		SignalMeaning: info.SignalMeaning,
		ExitCode:      info.ExitCode,
		ErrorMsg:      info.ErrorMsg,
	}
	if info.CurrentFrame != nil {
		w.Frame = &wireFrame{
			Func: info.CurrentFrame.Func,
			File: info.CurrentFrame.File,
			Line: info.CurrentFrame.Line,
			Addr: info.CurrentFrame.Addr,
		}
	}
	return w
}

// toEnvelope converts one of the state package's observer event types into
// the wire envelope sent to connected front-ends. The event types mirror
// the teacher's toWSEnvelope type switch in internal/webserver/ws_handler.go.
func toEnvelope(event any) envelope {
	switch ev := event.(type) {
	case state.StateChangedEvent:
		return envelope{Type: "state", Data: toWireState(ev.Info)}
	case state.OutputEvent:
		return envelope{Type: "output", Data: ev}
	case state.BreakpointsStaleEvent:
		return envelope{Type: "breakpoints_stale", Data: struct{}{}}
	case state.ConnectionLostEvent:
		msg := ""
		if ev.Err != nil {
			msg = ev.Err.Error()
		}
		return envelope{Type: "connection_lost", Data: struct {
			Error string `json:"error,omitempty"`
		}{Error: msg}}
	default:
		return envelope{Type: "event", Data: event}
	}
}
