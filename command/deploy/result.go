package deploy

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/lottery-harness/command/helper"
)

type deployResult struct {
	Name     string `json:"name"`
	ChainID  uint64 `json:"chainID"`
	Address  string `json:"address"`
	TxHash   string `json:"txHash"`
	Recorded bool   `json:"recorded"`
}

func (r *deployResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[CONTRACT DEPLOYED]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Name|%s", r.Name),
		fmt.Sprintf("Chain ID|%d", r.ChainID),
		fmt.Sprintf("Address|%s", r.Address),
		fmt.Sprintf("Tx hash|%s", r.TxHash),
		fmt.Sprintf("Recorded|%t", r.Recorded),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
