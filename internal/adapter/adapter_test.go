package adapter

import "testing"

func TestSession_StartStopLifecycle(t *testing.T) {
	s := New()
	if s.IsRunning() {
		t.Fatalf("expected not running before StartSession")
	}
	if err := s.StartSession(Options{GDBPath: "cat"}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if !s.IsRunning() {
		t.Fatalf("expected running after StartSession")
	}

	s.StopSession()
	if s.IsRunning() {
		t.Fatalf("expected not running after StopSession")
	}

	// Idempotence per spec §8: a second stop is a no-op.
	s.StopSession()
}

func TestSession_StartTwiceFails(t *testing.T) {
	s := New()
	if err := s.StartSession(Options{GDBPath: "cat"}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	defer s.StopSession()

	if err := s.StartSession(Options{GDBPath: "cat"}); err == nil {
		t.Fatalf("expected error starting an already-running session")
	}
}

func TestSession_SpawnFailurePropagates(t *testing.T) {
	s := New()
	if err := s.StartSession(Options{GDBPath: "/no/such/gdb-binary-xyz"}); err == nil {
		t.Fatalf("expected spawn failure")
	}
	if s.IsRunning() {
		t.Fatalf("expected not running after spawn failure")
	}
}
