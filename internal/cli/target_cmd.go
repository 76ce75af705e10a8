package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gdbmi/adapter/internal/adapter"
)

func newTargetCmd(session *adapter.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Load, attach, or detach from a debug target",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "file <path>",
			Short: "Load an executable and its symbol table",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireRunning(session); err != nil {
					return err
				}
				return session.Commands().SetFile(args[0])
			},
		},
		&cobra.Command{
			Use:   "attach <pid>",
			Short: "Attach to a running process",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireRunning(session); err != nil {
					return err
				}
				pid, err := strconv.Atoi(args[0])
				if err != nil {
					return err
				}
				return session.Commands().AttachProcess(pid)
			},
		},
		&cobra.Command{
			Use:   "remote <host:port>",
			Short: "Connect to a remote gdbserver",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireRunning(session); err != nil {
					return err
				}
				return session.Commands().AttachRemote(args[0])
			},
		},
		&cobra.Command{
			Use:   "detach",
			Short: "Detach from the current target",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireRunning(session); err != nil {
					return err
				}
				return session.Commands().Detach()
			},
		},
	)
	return cmd
}
