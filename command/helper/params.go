package helper

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xPolygon/lottery-harness/command"
	"github.com/0xPolygon/lottery-harness/helper/common"
	"github.com/0xPolygon/lottery-harness/helper/config"
)

// EnvParams are the connection flags shared by every command talking to a chain.
// Flags that are set override the values of the config file.
type EnvParams struct {
	Network     string
	JSONRPCAddr string
	SenderKey   string
	DataDir     string
	LogLevel    string
}

// RegisterFlags registers the connection flags on the command
func (p *EnvParams) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&p.Network,
		command.NetworkFlag,
		config.NetworkDevnet,
		fmt.Sprintf("the network to run against (%s or %s)", config.NetworkDevnet, config.NetworkJSONRPC),
	)

	cmd.Flags().StringVar(
		&p.JSONRPCAddr,
		command.JSONRPCFlag,
		config.DefaultJSONRPCAddr,
		"the JSON-RPC endpoint of the node",
	)

	cmd.Flags().StringVar(
		&p.SenderKey,
		command.SenderKeyFlag,
		"",
		"the hex encoded private key of the sender account (a key is generated on devnet if omitted)",
	)

	cmd.Flags().StringVar(
		&p.DataDir,
		command.DataDirFlag,
		"",
		"the directory of the deployments registry",
	)

	cmd.Flags().StringVar(
		&p.LogLevel,
		command.LogLevelFlag,
		"INFO",
		"the log level for console output",
	)
}

// LoadConfig reads the config file given with --config, applies the flags that were set and validates the result
func (p *EnvParams) LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if flag := cmd.Flag(command.ConfigFlag); flag != nil && flag.Value.String() != "" {
		path := flag.Value.String()
		if !common.FileExists(path) {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}

		fileCfg, err := config.ReadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		cfg = fileCfg
	}

	flags := cmd.Flags()

	if flags.Changed(command.NetworkFlag) {
		cfg.Network = p.Network
	}

	if flags.Changed(command.JSONRPCFlag) {
		cfg.JSONRPCAddr = p.JSONRPCAddr
	}

	if flags.Changed(command.SenderKeyFlag) {
		cfg.SenderKey = p.SenderKey
	}

	if flags.Changed(command.DataDirFlag) {
		cfg.DataDir = p.DataDir
	}

	if flags.Changed(command.LogLevelFlag) {
		cfg.LogLevel = p.LogLevel
	}

	cfg.JSONRPCAddr = config.SanitizeRPCEndpoint(cfg.JSONRPCAddr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
