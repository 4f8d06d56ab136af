package store

import (
	"errors"
	"fmt"
	"math/big"

	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
	lotteryHelper "github.com/0xPolygon/lottery-harness/command/lottery/helper"
	"github.com/0xPolygon/lottery-harness/helper/hex"
)

const (
	valueFlag = "value"
)

var (
	errNoValue = errors.New("value to store is not set")
)

type storeParams struct {
	cmdhelper.EnvParams

	address  string
	rawValue string

	value *big.Int
}

func (p *storeParams) validateFlags() error {
	if err := lotteryHelper.ValidateAddress(p.address); err != nil {
		return err
	}

	if p.rawValue == "" {
		return errNoValue
	}

	value, err := hex.ParseUint256(p.rawValue)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	p.value = value

	return nil
}
