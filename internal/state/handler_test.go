package state

import (
	"testing"

	"github.com/gdbmi/adapter/internal/commio"
	"github.com/gdbmi/adapter/pkg/mi"
)

func asyncEvent(class mi.AsyncClass, results mi.Tuple) commio.Event {
	return commio.Event{Kind: commio.EventAsync, Record: mi.Record{
		Kind:       mi.KindAsync,
		AsyncKind:  mi.AsyncExec,
		AsyncClass: class,
		Results:    results,
	}}
}

func TestHandler_StartingToRunning(t *testing.T) {
	h := NewHandler(10)
	h.NotifyStart()
	if h.Info().State != StateStarting {
		t.Fatalf("state = %v, want Starting", h.Info().State)
	}
	h.handle(asyncEvent(mi.AsyncClassRunning, mi.Tuple{}))
	if h.Info().State != StateRunning {
		t.Fatalf("state = %v, want Running", h.Info().State)
	}
}

func TestHandler_RunningToPausedOnBreakpointHit(t *testing.T) {
	h := NewHandler(10)
	h.NotifyStart()
	h.handle(asyncEvent(mi.AsyncClassRunning, mi.Tuple{}))

	frame := mi.TupleValue(mi.Tuple{
		"addr": mi.String("0x08048564"),
		"func": mi.String("main"),
		"file": mi.String("p.c"),
		"line": mi.String("68"),
	})
	h.handle(asyncEvent(mi.AsyncClassStopped, mi.Tuple{
		"reason":    mi.String("breakpoint-hit"),
		"thread-id": mi.String("1"),
		"frame":     frame,
	}))

	info := h.Info()
	if info.State != StatePaused {
		t.Fatalf("state = %v, want Paused", info.State)
	}
	if info.Reason != "breakpoint-hit" {
		t.Fatalf("reason = %q", info.Reason)
	}
	if info.CurrentFrame == nil || info.CurrentFrame.Func != "main" {
		t.Fatalf("frame = %+v", info.CurrentFrame)
	}
}

func TestHandler_RunningToExitedWithCode(t *testing.T) {
	h := NewHandler(10)
	h.NotifyStart()
	h.handle(asyncEvent(mi.AsyncClassRunning, mi.Tuple{}))
	h.handle(asyncEvent(mi.AsyncClassStopped, mi.Tuple{
		"reason":    mi.String("exited"),
		"exit-code": mi.String("2"),
	}))
	info := h.Info()
	if info.State != StateExited || info.ExitCode != 2 {
		t.Fatalf("info = %+v", info)
	}
}

func TestHandler_PausedBackToRunning(t *testing.T) {
	h := NewHandler(10)
	h.NotifyStart()
	h.handle(asyncEvent(mi.AsyncClassRunning, mi.Tuple{}))
	h.handle(asyncEvent(mi.AsyncClassStopped, mi.Tuple{"reason": mi.String("breakpoint-hit")}))
	h.handle(asyncEvent(mi.AsyncClassRunning, mi.Tuple{}))
	info := h.Info()
	if info.State != StateRunning || info.CurrentFrame != nil {
		t.Fatalf("info = %+v", info)
	}
}

func TestHandler_ThreadGroupExitedForcesExited(t *testing.T) {
	h := NewHandler(10)
	h.NotifyStart()
	h.handle(asyncEvent(mi.AsyncClassThreadGroupExited, mi.Tuple{}))
	if h.Info().State != StateExited {
		t.Fatalf("state = %v, want Exited", h.Info().State)
	}
}

func TestHandler_StreamAppendedToTranscriptAndObserved(t *testing.T) {
	h := NewHandler(10)
	var got OutputEvent
	h.ObserveOutput(func(ev OutputEvent) { got = ev })

	h.handle(commio.Event{Kind: commio.EventStream, Record: mi.Record{
		Kind: mi.KindStream, Channel: mi.ChannelConsole, Content: "hello\n",
	}})

	if got.Content != "hello\n" || got.Channel != "console" {
		t.Fatalf("got = %+v", got)
	}
	if h.Transcript().Len() != 1 {
		t.Fatalf("transcript len = %d, want 1", h.Transcript().Len())
	}
}

func TestHandler_BreakpointCreatedMarksStale(t *testing.T) {
	h := NewHandler(10)
	fired := false
	h.ObserveBreakpoints(func(BreakpointsStaleEvent) { fired = true })
	h.handle(asyncEvent(mi.AsyncClassBreakpointCreated, mi.Tuple{}))
	if !fired {
		t.Fatalf("expected breakpoints-stale observer to fire")
	}
}

func TestHandler_StopDropsFrame(t *testing.T) {
	h := NewHandler(10)
	h.NotifyStart()
	h.handle(asyncEvent(mi.AsyncClassRunning, mi.Tuple{}))
	h.handle(asyncEvent(mi.AsyncClassStopped, mi.Tuple{"reason": mi.String("breakpoint-hit")}))
	h.NotifyStop()
	info := h.Info()
	if info.State != StateStopped || info.CurrentFrame != nil {
		t.Fatalf("info = %+v", info)
	}
}
