package list

import (
	"bytes"
	"fmt"
	"time"

	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
	"github.com/0xPolygon/lottery-harness/deployments"
)

type deploymentEntry struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainID"`
	Address     string `json:"address"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	DeployedAt  string `json:"deployedAt"`
}

type listResult struct {
	Deployments []deploymentEntry `json:"deployments"`
}

// newListResult keeps the deployments of the given chain, or all of them when chainID is zero
func newListResult(all []*deployments.Deployment, chainID uint64) *listResult {
	result := &listResult{Deployments: make([]deploymentEntry, 0, len(all))}

	for _, d := range all {
		if chainID != 0 && d.ChainID != chainID {
			continue
		}

		result.Deployments = append(result.Deployments, deploymentEntry{
			Name:        d.Name,
			ChainID:     d.ChainID,
			Address:     d.Address.String(),
			TxHash:      d.TxHash.String(),
			BlockNumber: d.BlockNumber,
			DeployedAt:  d.DeployedAt.Format(time.RFC3339),
		})
	}

	return result
}

func (r *listResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[DEPLOYMENTS]\n")

	if len(r.Deployments) == 0 {
		buffer.WriteString("No deployments recorded\n")

		return buffer.String()
	}

	rows := make([]string, 0, len(r.Deployments)+1)
	rows = append(rows, "Name|Chain ID|Address|Block|Deployed at")

	for _, d := range r.Deployments {
		rows = append(rows, fmt.Sprintf("%s|%d|%s|%d|%s", d.Name, d.ChainID, d.Address, d.BlockNumber, d.DeployedAt))
	}

	buffer.WriteString(cmdhelper.FormatList(rows))
	buffer.WriteString("\n")

	return buffer.String()
}
