package store

import (
	"bytes"
	"fmt"

	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
)

type storeResult struct {
	Address     string `json:"address"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	Value       string `json:"value"`
}

func (r *storeResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[LOTTERY VALUE STORED]\n")
	buffer.WriteString(cmdhelper.FormatKV([]string{
		fmt.Sprintf("Address|%s", r.Address),
		fmt.Sprintf("Tx hash|%s", r.TxHash),
		fmt.Sprintf("Block|%d", r.BlockNumber),
		fmt.Sprintf("Value|%s", r.Value),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
