package deploy

import (
	"errors"

	"github.com/0xPolygon/lottery-harness/command/helper"
)

const (
	nameFlag = "name"
)

var (
	errNoName = errors.New("contract name is not set")
)

type deployParams struct {
	helper.EnvParams

	name string
}

func (p *deployParams) validateFlags() error {
	if p.name == "" {
		return errNoName
	}

	return nil
}
