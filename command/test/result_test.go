package test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/lottery-harness/helper/telemetry"
	"github.com/0xPolygon/lottery-harness/scenario"
)

func TestTestParams_ValidateFlags(t *testing.T) {
	t.Parallel()

	require.NoError(t, (&testParams{timeout: time.Minute}).validateFlags())
	require.ErrorContains(t, (&testParams{}).validateFlags(), "timeout must be positive")
}

func TestTestResult_GetOutput(t *testing.T) {
	t.Parallel()

	report := &scenario.Report{
		RunID: "run-1",
		Suite: "Lottery",
		Cases: []scenario.CaseResult{
			{Name: "test initial value", Status: scenario.StatusPassed},
			{Name: "test updating and retrieving updated value", Status: scenario.StatusFailed, Failures: []string{"values differ"}},
			{Name: "enters a bearer into the lottery pool", Status: scenario.StatusPending},
		},
	}

	out := newTestResult(report, []telemetry.Counter{{Name: "lottery_harness.harness.txns_sent", Count: 1, Sum: 1}}).GetOutput()

	assert.Contains(t, out, "[SUITE Lottery]")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "[FAILURES: test updating and retrieving updated value]")
	assert.Contains(t, out, "values differ")
	assert.Contains(t, out, "enters a bearer into the lottery pool")
	assert.Contains(t, out, "[METRICS]")
	assert.NotContains(t, out, "[FAILURES: test initial value]")
}
