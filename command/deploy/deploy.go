package deploy

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xPolygon/lottery-harness/command"
	"github.com/0xPolygon/lottery-harness/command/helper"
	"github.com/0xPolygon/lottery-harness/contracts"
)

var (
	params deployParams
)

// GetCommand returns the deploy command
func GetCommand() *cobra.Command {
	deployCmd := &cobra.Command{
		Use:     "deploy",
		Short:   "Deploys a contract artifact and waits until it is mined",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	setFlags(deployCmd)

	return deployCmd
}

func setFlags(cmd *cobra.Command) {
	params.RegisterFlags(cmd)

	cmd.Flags().StringVar(
		&params.name,
		nameFlag,
		contracts.LotteryName,
		"the name of the contract artifact to deploy",
	)
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

	env, err := helper.NewEnvironment(cfg)
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}
	defer env.Close()

	factory, err := env.Harness.GetContractFactory(params.name)
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	deployment, err := factory.Deploy(cmd.Context())
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	contract, err := deployment.Deployed(cmd.Context())
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	chainID, err := env.Backend.ChainID()
	if err != nil {
		outputter.SetError(fmt.Errorf("failed to query chain id: %w", err))

		return command.ErrCommandFailed
	}

	outputter.SetCommandResult(&deployResult{
		Name:     contract.Name(),
		ChainID:  chainID,
		Address:  contract.Address().String(),
		TxHash:   deployment.TxHash().String(),
		Recorded: env.Deployments != nil,
	})

	return nil
}
