package process

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestSupervisor_SpawnFailureMissingExecutable(t *testing.T) {
	var s Supervisor
	err := s.Start(Config{GDBPath: "/no/such/gdb-binary-xyz"})
	if err == nil {
		t.Fatalf("expected spawn failure")
	}
}

func TestSupervisor_PipesAreTakenExactlyOnce(t *testing.T) {
	var s Supervisor
	if err := s.Start(Config{GDBPath: "cat"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Shutdown()

	if in := s.Stdin(); in == nil {
		t.Fatalf("expected non-nil stdin on first take")
	}
	if in := s.Stdin(); in != nil {
		t.Fatalf("expected nil stdin on second take")
	}
	if out := s.Stdout(); out == nil {
		t.Fatalf("expected non-nil stdout on first take")
	}
	if out := s.Stdout(); out != nil {
		t.Fatalf("expected nil stdout on second take")
	}
	if errPipe := s.Stderr(); errPipe == nil {
		t.Fatalf("expected non-nil stderr on first take")
	}
}

func TestSupervisor_EchoRoundTrip(t *testing.T) {
	var s Supervisor
	if err := s.Start(Config{GDBPath: "cat"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Shutdown()

	stdin := s.Stdin()
	stdout := s.Stdout()
	if _, err := stdin.Write([]byte("hello\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	reader := bufio.NewReader(stdout)
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimRight(line, "\n") != "hello" {
		t.Fatalf("got %q", line)
	}
}

func TestSupervisor_ShutdownIsIdempotent(t *testing.T) {
	var s Supervisor
	if err := s.Start(Config{GDBPath: "cat"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Shutdown()
	s.Shutdown()

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("process did not exit after shutdown")
	}
}

func TestSupervisor_PIDBeforeStartIsZero(t *testing.T) {
	var s Supervisor
	if s.PID() != 0 {
		t.Fatalf("expected 0 PID before Start")
	}
	if s.Running() {
		t.Fatalf("expected not running before Start")
	}
}
