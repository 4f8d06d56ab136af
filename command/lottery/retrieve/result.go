package retrieve

import (
	"bytes"
	"fmt"

	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
)

type retrieveResult struct {
	Address string `json:"address"`
	Value   string `json:"value"`
}

func (r *retrieveResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[LOTTERY VALUE]\n")
	buffer.WriteString(cmdhelper.FormatKV([]string{
		fmt.Sprintf("Address|%s", r.Address),
		fmt.Sprintf("Value|%s", r.Value),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
