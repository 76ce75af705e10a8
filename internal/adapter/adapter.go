// Package adapter composes the process supervisor, communication core,
// command surface, and state handler behind the single public lifecycle
// spec §4.6/§6 describes: start_session / stop_session plus the typed
// command surface and observer registration.
package adapter

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdbmi/adapter/internal/command"
	"github.com/gdbmi/adapter/internal/commio"
	"github.com/gdbmi/adapter/internal/debug"
	"github.com/gdbmi/adapter/internal/process"
	"github.com/gdbmi/adapter/internal/state"
	"github.com/gdbmi/adapter/pkg/mi"
)

// gdbExitWait bounds how long StopSession waits for GDB to answer gdb-exit.
const gdbExitWait = 1 * time.Second

// Options configures a Session.
type Options struct {
	GDBPath            string
	InterpreterArgs    []string
	TranscriptCapacity int

	// InferiorPTY, when true, allocates a pseudo-terminal for the debuggee
	// (separate from GDB's own MI control channel) and points GDB at it
	// via inferior-tty-set before returning from StartSession.
	InferiorPTY bool
}

func (o Options) withDefaults() Options {
	if o.GDBPath == "" {
		o.GDBPath = "gdb"
	}
	if len(o.InterpreterArgs) == 0 {
		o.InterpreterArgs = []string{"--interpreter=mi3"}
	}
	if o.TranscriptCapacity <= 0 {
		o.TranscriptCapacity = 1000
	}
	return o
}

// Session is the adapter façade: exactly one child GDB process lives
// between StartSession and StopSession (spec's definition of "session").
type Session struct {
	mu      sync.Mutex
	running atomic.Bool

	supervisor *process.Supervisor
	core       *commio.Core
	commands   *command.Surface
	handler    *state.Handler
	inferior   *process.InferiorPTY

	stateWG sync.WaitGroup
}

// New constructs an idle Session. Call StartSession to spawn GDB.
func New() *Session {
	return &Session{}
}

// StartSession spawns GDB with the MI3 interpreter and brings up the
// communication core, command surface, and event/state handler. Calling it
// while already running returns an error.
func (s *Session) StartSession(opts Options) error {
	opts = opts.withDefaults()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return fmt.Errorf("adapter: session already running")
	}

	sup := &process.Supervisor{}
	if err := sup.Start(process.Config{
		GDBPath:         opts.GDBPath,
		InterpreterArgs: opts.InterpreterArgs,
	}); err != nil {
		return err
	}

	core := commio.New(sup.Stdin())
	core.StartReaders(sup.Stdout(), sup.Stderr())

	handler := state.NewHandler(opts.TranscriptCapacity)
	handler.NotifyStart()

	s.supervisor = sup
	s.core = core
	s.commands = command.New(core)
	s.handler = handler
	s.running.Store(true)

	s.stateWG.Add(1)
	go func() {
		defer s.stateWG.Done()
		handler.Run(core.Events())
	}()

	if opts.InferiorPTY {
		inf, err := process.AllocateInferiorPTY()
		if err != nil {
			debug.LogKV("adapter", "inferior pty allocation failed", "error", err.Error())
		} else {
			s.inferior = inf
			if err := s.commands.InferiorTTYSet(inf.Path()); err != nil {
				debug.LogKV("adapter", "inferior-tty-set failed", "error", err.Error())
			}
		}
	}

	debug.Log("adapter", "session started")
	return nil
}

// InferiorPTY returns the pseudo-terminal allocated for the debuggee when
// Options.InferiorPTY was set, or nil otherwise.
func (s *Session) InferiorPTY() *process.InferiorPTY {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inferior
}

// IsRunning reports whether a session is active.
func (s *Session) IsRunning() bool { return s.running.Load() }

// StopSession implements spec §5's shutdown: best-effort gdb-exit (reply
// awaited for at most gdbExitWait), kill the child if it hasn't exited, drain pending commands, stop the event-handler
// loop. Idempotent: a second call is a no-op (spec §8).
func (s *Session) StopSession() {
	s.mu.Lock()
	if !s.running.CompareAndSwap(true, false) {
		s.mu.Unlock()
		return
	}
	sup, core, handler, inferior := s.supervisor, s.core, s.handler, s.inferior
	s.inferior = nil
	s.mu.Unlock()

	if core != nil && core.IsRunning() {
		// A GDB that never answers gdb-exit must not hold up shutdown: the
		// reply is awaited for at most gdbExitWait before the child is killed.
		replied := make(chan struct{})
		go func() {
			_, _ = core.SendCommand("gdb-exit")
			close(replied)
		}()
		select {
		case <-replied:
		case <-time.After(gdbExitWait):
		}
	}
	if sup != nil {
		sup.Shutdown()
	}
	if core != nil {
		core.Shutdown()
	}
	if handler != nil {
		handler.NotifyStop()
		handler.Stop()
	}
	if inferior != nil {
		_ = inferior.Close()
	}
	s.stateWG.Wait()
	debug.Log("adapter", "session stopped")
}

// Interrupt sends an OS-level interrupt to the child via the process
// supervisor (spec §4.2). See also Commands().Interrupt for the MI-level
// `exec-interrupt` alternative.
func (s *Session) Interrupt() error {
	if !s.running.Load() {
		return commio.ErrNotRunning
	}
	return s.supervisor.Interrupt()
}

// Commands returns the typed command surface, or nil before the first
// StartSession. After StopSession, commands fail with
// commio.ErrChannelClosed from SendCommand itself.
func (s *Session) Commands() *command.Surface { return s.commands }

// State returns the event/state handler, for observer registration and
// ExecutionInfo/transcript access.
func (s *Session) State() *state.Handler { return s.handler }

// Parse is re-exported for convenience so callers needn't import pkg/mi
// directly just to parse a standalone line (e.g. replaying a transcript).
var Parse = mi.Parse
