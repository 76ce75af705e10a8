package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gdbmi/adapter/internal/adapter"
)

func newEvalCmd(session *adapter.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression in the current frame",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			value, err := session.Commands().Eval(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
}
