package test

import (
	"fmt"
	"time"

	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
)

const (
	timeoutFlag = "timeout"

	defaultTimeout = 5 * time.Minute
)

type testParams struct {
	cmdhelper.EnvParams

	timeout time.Duration
}

func (p *testParams) validateFlags() error {
	if p.timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", p.timeout)
	}

	return nil
}
