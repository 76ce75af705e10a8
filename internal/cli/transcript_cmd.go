package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdbmi/adapter/internal/adapter"
	"github.com/gdbmi/adapter/internal/console"
)

func newTranscriptCmd(session *adapter.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "transcript",
		Short: "Print the buffered console/target/log output",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}
			for _, entry := range session.State().Transcript().Snapshot() {
				fmt.Print(console.Channel(entry.Channel, entry.Content))
			}
			return nil
		},
	}
}
