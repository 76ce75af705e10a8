package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gdbmi/adapter/internal/adapter"
)

func newDataCmd(session *adapter.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Registers, disassembly, and raw memory",
	}
	cmd.AddCommand(newRegistersCmd(session), newDisassembleCmd(session), newMemoryCmd(session))
	return cmd
}

func newRegistersCmd(session *adapter.Session) *cobra.Command {
	var fmtCode string
	cmd := &cobra.Command{
		Use:   "registers",
		Short: "List register names and current values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			names, err := session.Commands().RegisterNames()
			if err != nil {
				return err
			}
			regs, err := session.Commands().RegisterValues(fmtCode, names)
			if err != nil {
				return err
			}
			for _, r := range regs {
				fmt.Printf("%-3d %-8s %s\n", r.Number, r.Name, r.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fmtCode, "format", "x", "value format: x, d, o, t, N, r (raw)")
	return cmd
}

func newDisassembleCmd(session *adapter.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disassemble <start> <end>",
		Short: "Disassemble a range of addresses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			lines, err := session.Commands().Disassemble(args[0], args[1])
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Printf("%s <%s+%s>:\t%s\t%s\n", l.Address, l.Function, l.Offset, l.Instruction, l.Opcodes)
			}
			return nil
		},
	}
	return cmd
}

func newMemoryCmd(session *adapter.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory <address> <size>",
		Short: "Read raw memory bytes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			size, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid size %q: %w", args[1], err)
			}
			result, err := session.Commands().ReadMemoryBytes(args[0], size)
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		},
	}
	return cmd
}
