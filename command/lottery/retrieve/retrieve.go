package retrieve

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/lottery-harness/command"
	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
	lotteryHelper "github.com/0xPolygon/lottery-harness/command/lottery/helper"
)

var (
	params retrieveParams
)

// GetCommand returns the lottery retrieve command
func GetCommand() *cobra.Command {
	retrieveCmd := &cobra.Command{
		Use:     "retrieve",
		Short:   "Reads the value stored by the lottery contract",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	params.RegisterFlags(retrieveCmd)
	lotteryHelper.RegisterAddressFlag(retrieveCmd, &params.address)

	return retrieveCmd
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return params.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) error {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	cfg, err := params.LoadConfig(cmd)
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	env, err := cmdhelper.NewEnvironment(cfg)
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}
	defer env.Close()

	lottery, err := lotteryHelper.ResolveLottery(cmd.Context(), env, params.address)
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	value, err := lottery.Retrieve(cmd.Context())
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	outputter.SetCommandResult(&retrieveResult{
		Address: lottery.Address().String(),
		Value:   value.String(),
	})

	return nil
}
