package command

import "fmt"

// SetFile loads path as the executable and symbol table.
func (s *Surface) SetFile(path string) error {
	_, err := s.core.SendCommand("file-exec-and-symbols " + quote(path))
	return err
}

// AttachProcess attaches to a running process by pid.
func (s *Surface) AttachProcess(pid int) error {
	_, err := s.core.SendCommand(fmt.Sprintf("target-attach %d", pid))
	return err
}

// AttachRemote connects to a remote gdbserver at hostPort (e.g. "host:1234").
func (s *Surface) AttachRemote(hostPort string) error {
	_, err := s.core.SendCommand("target-select remote " + hostPort)
	return err
}

// InferiorTTYSet points the debuggee's stdio at path (typically the slave
// side of an internal/process.InferiorPTY), keeping it off the MI control
// channel.
func (s *Surface) InferiorTTYSet(path string) error {
	_, err := s.core.SendCommand("inferior-tty-set " + quote(path))
	return err
}

// Detach detaches from the current target.
func (s *Surface) Detach() error {
	_, err := s.core.SendCommand("target-detach")
	return err
}

// GdbExit requests GDB itself exit. Acknowledgement only; the process
// supervisor still guarantees termination if GDB doesn't comply.
func (s *Surface) GdbExit() error {
	_, err := s.core.SendCommand("gdb-exit")
	return err
}
