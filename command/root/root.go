package root

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xPolygon/lottery-harness/command"
	"github.com/0xPolygon/lottery-harness/command/deploy"
	"github.com/0xPolygon/lottery-harness/command/deployments"
	"github.com/0xPolygon/lottery-harness/command/helper"
	"github.com/0xPolygon/lottery-harness/command/lottery"
	"github.com/0xPolygon/lottery-harness/command/test"
	"github.com/0xPolygon/lottery-harness/command/version"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Use:           "lottery-harness",
			Short:         "Lottery harness deploys the lottery contract and checks its stored value",
			SilenceErrors: true,
			SilenceUsage:  true,
		},
	}

	helper.RegisterJSONOutputFlag(rootCommand.baseCmd)
	helper.RegisterConfigFlag(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		version.GetCommand(),
		deploy.GetCommand(),
		lottery.GetCommand(),
		deployments.GetCommand(),
		test.GetCommand(),
	)
}

// Command returns the underlying cobra command
func (rc *RootCommand) Command() *cobra.Command {
	return rc.baseCmd
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		// errors of commands using the outputter were already written
		if !errors.Is(err, command.ErrCommandFailed) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}
