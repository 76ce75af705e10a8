package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gdbmi/adapter/internal/adapter"
)

func newBreakCmd(session *adapter.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "break",
		Aliases: []string{"b"},
		Short:   "Manage breakpoints",
	}
	cmd.AddCommand(
		newBreakInsertCmd(session),
		newBreakDeleteCmd(session),
		newBreakEnableCmd(session),
		newBreakDisableCmd(session),
		newBreakListCmd(session),
	)
	return cmd
}

func newBreakInsertCmd(session *adapter.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <location>",
		Short: "Insert a breakpoint at a function, file:line, or address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			n, err := session.Commands().BreakInsert(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("breakpoint %d at %s\n", n, args[0])
			return nil
		},
	}
}

func newBreakDeleteCmd(session *adapter.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a breakpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			n, err := parseBreakNumber(args[0])
			if err != nil {
				return err
			}
			return session.Commands().BreakDelete(n)
		},
	}
}

func newBreakEnableCmd(session *adapter.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "enable <number>",
		Short: "Enable a breakpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			n, err := parseBreakNumber(args[0])
			if err != nil {
				return err
			}
			return session.Commands().BreakEnable(n)
		},
	}
}

func newBreakDisableCmd(session *adapter.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <number>",
		Short: "Disable a breakpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			n, err := parseBreakNumber(args[0])
			if err != nil {
				return err
			}
			return session.Commands().BreakDisable(n)
		},
	}
}

func newBreakListCmd(session *adapter.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List breakpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			breakpoints, err := session.Commands().BreakList()
			if err != nil {
				return err
			}
			if len(breakpoints) == 0 {
				fmt.Println("no breakpoints")
				return nil
			}
			for _, bp := range breakpoints {
				state := "enabled"
				if !bp.Enabled {
					state = "disabled"
				}
				fmt.Printf("%-4d %-10s %s at %s:%d (hit %d times)\n", bp.Number, state, bp.Func, bp.File, bp.Line, bp.Times)
			}
			return nil
		},
	}
}

func parseBreakNumber(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid breakpoint number %q: %w", s, err)
	}
	return uint32(n), nil
}
