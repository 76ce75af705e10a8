package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdbmi/adapter/internal/adapter"
)

func newStackCmd(session *adapter.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Inspect the call stack",
	}
	cmd.AddCommand(newStackFramesCmd(session), newStackLocalsCmd(session))
	return cmd
}

func newStackFramesCmd(session *adapter.Session) *cobra.Command {
	var low, high int
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "List stack frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			frames, err := session.Commands().StackFrames(low, high)
			if err != nil {
				return err
			}
			for _, f := range frames {
				fmt.Printf("#%-3d %s at %s:%d (%s)\n", f.Level, f.Func, f.File, f.Line, f.Addr)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&low, "low", -1, "lowest frame level (omit for all)")
	cmd.Flags().IntVar(&high, "high", -1, "highest frame level (omit for all)")
	return cmd
}

func newStackLocalsCmd(session *adapter.Session) *cobra.Command {
	var allValues bool
	cmd := &cobra.Command{
		Use:   "locals",
		Short: "List local variables in the current frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			vars, err := session.Commands().Locals(allValues)
			if err != nil {
				return err
			}
			for _, v := range vars {
				if v.Value != "" {
					fmt.Printf("%s = %s\n", v.Name, v.Value)
				} else {
					fmt.Println(v.Name)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&allValues, "values", true, "include variable values, not just names")
	return cmd
}
