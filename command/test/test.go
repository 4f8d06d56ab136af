package test

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/0xPolygon/lottery-harness/command"
	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
	"github.com/0xPolygon/lottery-harness/helper/telemetry"
	"github.com/0xPolygon/lottery-harness/scenario"
)

var (
	params testParams
)

// GetCommand returns the test command
func GetCommand() *cobra.Command {
	testCmd := &cobra.Command{
		Use:     "test",
		Short:   "Runs the lottery test suite against the configured network",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	setFlags(testCmd)

	return testCmd
}

func setFlags(cmd *cobra.Command) {
	params.RegisterFlags(cmd)

	cmd.Flags().DurationVar(
		&params.timeout,
		timeoutFlag,
		defaultTimeout,
		"the maximum duration of the whole suite run",
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

	env, err := cmdhelper.NewEnvironment(cfg)
	if err != nil {
		outputter.SetError(err)

		return command.ErrCommandFailed
	}
	defer env.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), params.timeout)
	defer cancel()

	report := scenario.Run(ctx, scenario.NewLotterySuite(env.Harness), scenario.WithLogger(env.Logger))

	result := newTestResult(report, telemetry.Counters(env.Metrics))
	outputter.SetCommandResult(result)

	if err := report.Err(); err != nil {
		env.Logger.Error("suite failed", "err", err)

		return command.ErrCommandFailed
	}

	return nil
}
