package deployments

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/lottery-harness/command/deployments/list"
)

// GetCommand creates "deployments" helper command
func GetCommand() *cobra.Command {
	deploymentsCmd := &cobra.Command{
		Use:   "deployments",
		Short: "Inspects the registry of contracts deployed by the harness",
	}

	deploymentsCmd.AddCommand(
		// deployments list
		list.GetCommand(),
	)

	return deploymentsCmd
}
