package list

import (
	"errors"
)

const (
	dataDirFlag = "data-dir"
	chainIDFlag = "chain-id"
)

var (
	errNoDataDir = errors.New("data directory is not set")
)

type listParams struct {
	dataDir string
	chainID uint64
}

func (p *listParams) validateFlags() error {
	if p.dataDir == "" {
		return errNoDataDir
	}

	return nil
}
