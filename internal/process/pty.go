package process

import (
	"fmt"
	"os"

	"github.com/creack/pty"
)

// InferiorPTY is a pseudo-terminal allocated for the debuggee (the program
// GDB runs, as opposed to GDB's own MI control channel). The slave device
// path is handed to GDB via the `inferior-tty-set` MI command; the master
// side is read/written by whatever is driving the session (typically
// internal/bridge, to stream the inferior's terminal to a remote front end).
type InferiorPTY struct {
	Master *os.File
	Slave  *os.File
}

// Path returns the slave device path GDB should be told to use, e.g.
// "/dev/pts/4".
func (p *InferiorPTY) Path() string {
	if p == nil || p.Slave == nil {
		return ""
	}
	return p.Slave.Name()
}

// Close releases both ends of the pty pair.
func (p *InferiorPTY) Close() error {
	if p == nil {
		return nil
	}
	var err error
	if p.Master != nil {
		err = p.Master.Close()
	}
	if p.Slave != nil {
		if serr := p.Slave.Close(); err == nil {
			err = serr
		}
	}
	return err
}

// Resize applies new terminal dimensions to the master, mirroring what the
// bridge's terminal stream negotiates with a remote client.
func (p *InferiorPTY) Resize(cols, rows uint16) error {
	if p == nil || p.Master == nil {
		return fmt.Errorf("process: pty not allocated")
	}
	return pty.Setsize(p.Master, &pty.Winsize{Cols: cols, Rows: rows})
}

// AllocateInferiorPTY opens a new pseudo-terminal pair for the debuggee.
// Optional: only used when the caller wants the inferior's I/O kept separate
// from the MI control channel (the default GDB behavior without `-tty` is to
// share the adapter's own terminal, which this adapter never wants since its
// stdio is the MI pipe).
func AllocateInferiorPTY() (*InferiorPTY, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("process: allocate inferior pty: %w", err)
	}
	return &InferiorPTY{Master: master, Slave: slave}, nil
}
