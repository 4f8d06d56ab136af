package helper

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/umbracle/ethgo"

	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
	"github.com/0xPolygon/lottery-harness/contracts"
	"github.com/0xPolygon/lottery-harness/harness"
	"github.com/0xPolygon/lottery-harness/helper/hex"
)

const (
	AddressFlag = "address"

	addressLength = 20
)

var (
	errNoDeployment = errors.New("no lottery deployment found, deploy one first or pass --address")
)

// RegisterAddressFlag registers the lottery address flag
func RegisterAddressFlag(cmd *cobra.Command, addr *string) {
	cmd.Flags().StringVar(
		addr,
		AddressFlag,
		"",
		"the address of the lottery contract (the recorded deployment is used if omitted)",
	)
}

// ValidateAddress checks that the raw value is a hex encoded 20 byte address
func ValidateAddress(raw string) error {
	if raw == "" {
		return nil
	}

	buf, err := hex.DecodeHex(raw)
	if err != nil {
		return fmt.Errorf("invalid address %s: %w", raw, err)
	}

	if len(buf) != addressLength {
		return fmt.Errorf("invalid address %s: expected %d bytes, got %d", raw, addressLength, len(buf))
	}

	return nil
}

// ResolveLottery binds a lottery handle: the given address first, then the recorded deployment.
// Nothing survives a devnet process, so on devnet a fresh instance is deployed instead.
func ResolveLottery(ctx context.Context, env *cmdhelper.Environment, rawAddr string) (*harness.Lottery, error) {
	if rawAddr != "" {
		return env.Harness.LotteryAt(ethgo.HexToAddress(rawAddr))
	}

	if env.IsDevnet() {
		return env.Harness.DeployLottery(ctx)
	}

	if env.Deployments == nil {
		return nil, errNoDeployment
	}

	c, err := env.Harness.GetDeployment(contracts.LotteryName)
	if err != nil {
		env.Logger.Debug("no recorded lottery deployment", "err", err)

		return nil, errNoDeployment
	}

	return &harness.Lottery{Contract: c}, nil
}
