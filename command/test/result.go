package test

import (
	"bytes"
	"fmt"
	"strings"

	cmdhelper "github.com/0xPolygon/lottery-harness/command/helper"
	"github.com/0xPolygon/lottery-harness/helper/telemetry"
	"github.com/0xPolygon/lottery-harness/scenario"
)

type testResult struct {
	Report   *scenario.Report    `json:"report"`
	Counters []telemetry.Counter `json:"counters,omitempty"`
}

func newTestResult(report *scenario.Report, counters []telemetry.Counter) *testResult {
	return &testResult{
		Report:   report,
		Counters: counters,
	}
}

func (r *testResult) GetOutput() string {
	var buffer bytes.Buffer

	report := r.Report

	buffer.WriteString(fmt.Sprintf("\n[SUITE %s]\n", report.Suite))
	buffer.WriteString(cmdhelper.FormatKV([]string{
		fmt.Sprintf("Run ID|%s", report.RunID),
		fmt.Sprintf("Passed|%d", report.Count(scenario.StatusPassed)),
		fmt.Sprintf("Failed|%d", report.Count(scenario.StatusFailed)),
		fmt.Sprintf("Pending|%d", report.Count(scenario.StatusPending)),
		fmt.Sprintf("Duration|%s", report.Duration),
	}))
	buffer.WriteString("\n")

	if report.SetupErr != "" {
		buffer.WriteString(fmt.Sprintf("\nSetup failed: %s\n", report.SetupErr))
	}

	buffer.WriteString("\n[CASES]\n")

	rows := make([]string, 0, len(report.Cases))
	for _, c := range report.Cases {
		rows = append(rows, fmt.Sprintf("%s|%s|%s", c.Status, c.Name, c.Duration))
	}

	buffer.WriteString(cmdhelper.FormatList(rows))
	buffer.WriteString("\n")

	for _, c := range report.Cases {
		if len(c.Failures) == 0 {
			continue
		}

		buffer.WriteString(fmt.Sprintf("\n[FAILURES: %s]\n", c.Name))
		buffer.WriteString(strings.Join(c.Failures, "\n"))
		buffer.WriteString("\n")
	}

	if len(r.Counters) > 0 {
		buffer.WriteString("\n[METRICS]\n")

		kv := make([]string, 0, len(r.Counters))
		for _, c := range r.Counters {
			kv = append(kv, fmt.Sprintf("%s|%g", c.Name, c.Sum))
		}

		buffer.WriteString(cmdhelper.FormatKV(kv))
		buffer.WriteString("\n")
	}

	return buffer.String()
}
