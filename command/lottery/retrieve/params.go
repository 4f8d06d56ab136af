package retrieve

import (
	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
	lotteryHelper "github.com/0xPolygon/lottery-harness/command/lottery/helper"
)

type retrieveParams struct {
	cmdhelper.EnvParams

	address string
}

func (p *retrieveParams) validateFlags() error {
	return lotteryHelper.ValidateAddress(p.address)
}
