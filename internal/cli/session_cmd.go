package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdbmi/adapter/internal/adapter"
	"github.com/gdbmi/adapter/internal/config"
	"github.com/gdbmi/adapter/internal/console"
)

func newSessionCmd(session *adapter.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the GDB session lifecycle",
	}
	cmd.AddCommand(newSessionStartCmd(session), newSessionStopCmd(session), newSessionStatusCmd(session))
	return cmd
}

func newSessionStartCmd(session *adapter.Session) *cobra.Command {
	defaults, err := config.Load()
	if err != nil {
		defaults = config.DefaultConfig()
	}

	var gdbPath string
	var interpreterArgs []string
	var transcriptCap int
	var inferiorPTY bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Spawn GDB and bring up the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := session.StartSession(adapter.Options{
				GDBPath:            gdbPath,
				InterpreterArgs:    interpreterArgs,
				TranscriptCapacity: transcriptCap,
				InferiorPTY:        inferiorPTY,
			})
			if err != nil {
				return err
			}
			fmt.Println("session started")
			return nil
		},
	}
	cmd.Flags().StringVar(&gdbPath, "gdb", defaults.GDBPath, "path to the gdb binary")
	cmd.Flags().StringSliceVar(&interpreterArgs, "interpreter-args", defaults.InterpreterArgs, "gdb launch arguments")
	cmd.Flags().IntVar(&transcriptCap, "transcript-capacity", defaults.TranscriptCapacity, "stream-record transcript ring buffer capacity")
	cmd.Flags().BoolVar(&inferiorPTY, "inferior-pty", false, "allocate a separate pty for the debuggee")
	return cmd
}

func newSessionStopCmd(session *adapter.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the session, killing GDB if necessary",
		RunE: func(cmd *cobra.Command, args []string) error {
			session.StopSession()
			fmt.Println("session stopped")
			return nil
		},
	}
}

func newSessionStatusCmd(session *adapter.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current execution state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !session.IsRunning() {
				fmt.Println("no active session")
				return nil
			}
			info := session.State().Info()
			label := info.State.String()
			fmt.Printf("state: %s\n", console.State(label, label))
			if info.Reason != "" {
				fmt.Printf("reason: %s\n", info.Reason)
			}
			if info.CurrentFrame != nil {
				fmt.Printf("frame: %s at %s:%d\n", info.CurrentFrame.Func, info.CurrentFrame.File, info.CurrentFrame.Line)
			}
			return nil
		},
	}
}
