//go:build windows

package process

import (
	"sync"

	"golang.org/x/sys/windows"
)

var installIgnoreHandlerOnce sync.Once

// Interrupt delivers a CTRL_C_EVENT to the child's process group. Windows
// has no per-process SIGINT equivalent: a console-control event is
// broadcast to every process attached to the console that isn't explicitly
// ignoring it. Before the first Interrupt call in the life of this process,
// a process-wide handler is installed once that ignores the event for the
// parent, so only the child (started in its own process group via
// applyPlatformProcAttr) reacts to it.
func (s *Supervisor) Interrupt() error {
	pid := s.PID()
	if pid == 0 {
		return ErrNotStarted
	}
	installIgnoreHandlerOnce.Do(func() {
		_ = windows.SetConsoleCtrlHandler(nil, true)
	})
	return windows.GenerateConsoleCtrlEvent(windows.CTRL_C_EVENT, uint32(pid))
}
