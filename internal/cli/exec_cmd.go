package cli

import (
	"github.com/spf13/cobra"

	"github.com/gdbmi/adapter/internal/adapter"
)

// execCmds returns execution-control leaves as direct root subcommands
// (run, continue, step, next, stepi, nexti, finish, interrupt), matching
// the flat GDB-CLI-like surface the front-end drives.
func execCmds(session *adapter.Session) []*cobra.Command {
	return []*cobra.Command{
		execLeaf(session, "run", "Start or restart the debuggee", func(s *adapter.Session, args []string) error {
			return s.Commands().Run(args...)
		}),
		execLeaf(session, "continue", "Resume execution", func(s *adapter.Session, args []string) error {
			return s.Commands().Continue()
		}),
		execLeaf(session, "step", "Step one source line, entering calls", func(s *adapter.Session, args []string) error {
			return s.Commands().Step()
		}),
		execLeaf(session, "next", "Step one source line, over calls", func(s *adapter.Session, args []string) error {
			return s.Commands().Next()
		}),
		execLeaf(session, "stepi", "Step one machine instruction, entering calls", func(s *adapter.Session, args []string) error {
			return s.Commands().StepInstruction()
		}),
		execLeaf(session, "nexti", "Step one machine instruction, over calls", func(s *adapter.Session, args []string) error {
			return s.Commands().NextInstruction()
		}),
		execLeaf(session, "finish", "Run until the current function returns", func(s *adapter.Session, args []string) error {
			return s.Commands().Finish()
		}),
		execLeaf(session, "interrupt", "Send exec-interrupt to a running debuggee", func(s *adapter.Session, args []string) error {
			return s.Commands().Interrupt()
		}),
	}
}

func execLeaf(session *adapter.Session, use, short string, fn func(*adapter.Session, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			return fn(session, args)
		},
	}
}
