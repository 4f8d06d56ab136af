package version

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/0xPolygon/lottery-harness/command"
	"github.com/0xPolygon/lottery-harness/contracts"
	"github.com/0xPolygon/lottery-harness/versioning"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Returns the harness version and the contract artifacts bundled into it",
		Args:  cobra.NoArgs,
		RunE:  runCommand,
	}
}

func runCommand(cmd *cobra.Command, _ []string) error {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	registry, err := contracts.DefaultRegistry()
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}

	outputter.SetCommandResult(
		&VersionResult{
			Version:   versioning.ReleaseVersion(),
			Commit:    versioning.Commit,
			Branch:    versioning.Branch,
			BuildTime: versioning.BuildTime,
			GoVersion: runtime.Version(),
			Artifacts: registry.Names(),
		},
	)

	return nil
}
