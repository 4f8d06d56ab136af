package lottery

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/lottery-harness/command/lottery/retrieve"
	"github.com/0xPolygon/lottery-harness/command/lottery/store"
)

// GetCommand creates "lottery" helper command
func GetCommand() *cobra.Command {
	lotteryCmd := &cobra.Command{
		Use:   "lottery",
		Short: "Reads and writes the value stored by a lottery contract",
	}

	registerSubcommands(lotteryCmd)

	return lotteryCmd
}

func registerSubcommands(baseCmd *cobra.Command) {
	baseCmd.AddCommand(
		// lottery retrieve
		retrieve.GetCommand(),
		// lottery store
		store.GetCommand(),
	)
}
