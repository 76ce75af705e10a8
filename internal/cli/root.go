// Package cli provides a cobra command tree that drives an adapter.Session
// end to end, matching the way the teacher's own internal/cli exercises
// internal/agent. No main.go lives in this module; Execute is exported for
// an external binary to call with its own context and session.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gdbmi/adapter/internal/adapter"
	"github.com/gdbmi/adapter/internal/buildinfo"
	"github.com/gdbmi/adapter/internal/debug"
)

const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	styleBoldCyan = "\033[1;36m"
)

// NewRootCommand builds the full command tree bound to session. session
// need not be started yet; "session start" drives adapter.Session.StartSession.
func NewRootCommand(session *adapter.Session) *cobra.Command {
	root := &cobra.Command{
		Use:   "gdbmi",
		Short: "GDB Machine Interface adapter",
		Long: colorBold + styleBoldCyan + "GDB Machine Interface adapter" + colorReset + ` v` + buildinfo.Current().Version + `

Drives a single GDB child process over the MI3 protocol: spawn it, issue
typed commands, and observe its execution state and output as it runs.

  gdbmi session start --gdb gdb
  gdbmi target file ./a.out
  gdbmi break insert main
  gdbmi run
  gdbmi stack locals
  gdbmi bridge serve

More info: https://github.com/gdbmi/adapter`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().Bool("debug", false, "Enable verbose debug logging to ~/.gdbmi/debug/")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		debugFlag, _ := cmd.Flags().GetBool("debug")
		if !debugFlag && !debug.ShouldEnableFromEnv() {
			return nil
		}
		logPath, err := debug.Init()
		if err != nil {
			return fmt.Errorf("initializing debug logger: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s[debug]%s logging to %s\n", colorDim, colorReset, logPath)
		bi := buildinfo.Current()
		debug.LogKV("cli", "gdbmi starting",
			"version", bi.Version,
			"commit", bi.CommitHash,
			"pid", os.Getpid(),
			"command", cmd.Name(),
		)
		return nil
	}

	root.AddCommand(
		newSessionCmd(session),
		newBreakCmd(session),
		newEvalCmd(session),
		newStackCmd(session),
		newDataCmd(session),
		newTargetCmd(session),
		newBridgeCmd(session),
		newTranscriptCmd(session),
		newConfigCmd(session),
	)
	root.AddCommand(execCmds(session)...)
	return root
}

// Execute builds the command tree for session and runs it with args taken
// from os.Args[1:].
func Execute(ctx context.Context, session *adapter.Session) error {
	defer debug.Close()
	root := NewRootCommand(session)
	if err := root.ExecuteContext(ctx); err != nil {
		debug.Logf("cli", "exit with error: %v", err)
		fmt.Fprintf(os.Stderr, "%sError: %s%s\n", colorRed, err, colorReset)
		return err
	}
	debug.Log("cli", "exit success")
	return nil
}

func requireRunning(session *adapter.Session) error {
	if !session.IsRunning() {
		return fmt.Errorf("no active session: run 'gdbmi session start' first")
	}
	return nil
}
