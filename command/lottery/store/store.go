package store

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/lottery-harness/command"
	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
	lotteryHelper "github.com/0xPolygon/lottery-harness/command/lottery/helper"
)

var (
	params storeParams
)

// GetCommand returns the lottery store command
func GetCommand() *cobra.Command {
	storeCmd := &cobra.Command{
		Use:     "store",
		Short:   "Stores a value in the lottery contract and waits for the transaction to be mined",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	setFlags(storeCmd)

	return storeCmd
}

func setFlags(cmd *cobra.Command) {
	params.RegisterFlags(cmd)
	lotteryHelper.RegisterAddressFlag(cmd, &params.address)

	cmd.Flags().StringVar(
		&params.rawValue,
		valueFlag,
		"",
		"the uint256 value to store (decimal or 0x prefixed hex)",
	)

	_ = cmd.MarkFlagRequired(valueFlag)
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

	pending, err := lottery.Store(cmd.Context(), params.value)
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	receipt, err := pending.Wait(cmd.Context())
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	// the write is confirmed, so reading it back is valid
	value, err := lottery.Retrieve(cmd.Context())
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	outputter.SetCommandResult(&storeResult{
		Address:     lottery.Address().String(),
		TxHash:      pending.Hash().String(),
		BlockNumber: receipt.BlockNumber,
		Value:       value.String(),
	})

	return nil
}
