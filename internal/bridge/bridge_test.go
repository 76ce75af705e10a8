package bridge

import (
	"testing"

	"github.com/gdbmi/adapter/internal/state"
)

func TestBroadcaster_PublishReachesSubscriber(t *testing.T) {
	b := newBroadcaster()
	sub := b.subscribe()
	defer b.unsubscribe(sub)

	b.publish(envelope{Type: "state", Data: "x"})

	select {
	case got := <-sub:
		if got.Type != "state" {
			t.Fatalf("type = %q, want state", got.Type)
		}
	default:
		t.Fatalf("expected a buffered envelope")
	}
}

func TestBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := newBroadcaster()
	sub := b.subscribe()
	defer b.unsubscribe(sub)

	for i := 0; i < 1000; i++ {
		b.publish(envelope{Type: "output"})
	}
}

func TestToEnvelope_StateChanged(t *testing.T) {
	ev := state.StateChangedEvent{Info: state.ExecutionInfo{State: state.StateRunning}}
	env := toEnvelope(ev)
	if env.Type != "state" {
		t.Fatalf("type = %q, want state", env.Type)
	}
	ws, ok := env.Data.(wireState)
	if !ok || ws.State != "running" {
		t.Fatalf("data = %+v", env.Data)
	}
}

func TestToEnvelope_Output(t *testing.T) {
	ev := state.OutputEvent{Channel: "console", Content: "hi\n"}
	env := toEnvelope(ev)
	if env.Type != "output" {
		t.Fatalf("type = %q, want output", env.Type)
	}
}
