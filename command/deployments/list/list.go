package list

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/0xPolygon/lottery-harness/command"
	"github.com/0xPolygon/lottery-harness/deployments"
	"github.com/0xPolygon/lottery-harness/helper/common"
)

var (
	params listParams
)

// GetCommand returns the deployments list command
func GetCommand() *cobra.Command {
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "Lists the recorded contract deployments",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	setFlags(listCmd)

	return listCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.dataDir,
		dataDirFlag,
		"",
		"the directory of the deployments registry",
	)

	cmd.Flags().Uint64Var(
		&params.chainID,
		chainIDFlag,
		0,
		"only list the deployments of the given chain (all chains if omitted)",
	)

	_ = cmd.MarkFlagRequired(dataDirFlag)
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return params.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) error {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	if !common.FileExists(filepath.Join(params.dataDir, deployments.FileName)) {
		outputter.SetError(fmt.Errorf("no deployments registry found in %s", params.dataDir))

		return command.ErrCommandFailed
	}

	store, err := deployments.Open(params.dataDir, nil)
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}
	defer store.Close()

	all, err := store.List()
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	outputter.SetCommandResult(newListResult(all, params.chainID))

	return nil
}
