package scenario

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/wallet"

	"github.com/0xPolygon/lottery-harness/contracts"
	"github.com/0xPolygon/lottery-harness/devnet"
	"github.com/0xPolygon/lottery-harness/harness"
	"github.com/0xPolygon/lottery-harness/helper/hex"
)

func TestRun_CaseOutcomes(t *testing.T) {
	t.Parallel()

	var order []string

	suite := Suite{
		Name: "outcomes",
		Setup: func(context.Context) error {
			order = append(order, "setup")

			return nil
		},
		Cases: []Case{
			{
				Name: "passes",
				Run: func(_ context.Context, t *T) {
					order = append(order, "passes")
					assert.True(t, true)
				},
			},
			{
				Name: "asserts",
				Run: func(_ context.Context, t *T) {
					order = append(order, "asserts")
					assert.Equal(t, 1, 2)
					assert.Equal(t, "a", "b")
				},
			},
			{
				Name: "requires",
				Run: func(_ context.Context, t *T) {
					order = append(order, "requires")
					require.NoError(t, errors.New("boom"))
					order = append(order, "unreachable")
				},
			},
			{
				Name: "panics",
				Run: func(_ context.Context, _ *T) {
					order = append(order, "panics")
					panic("unexpected")
				},
			},
			{
				Name: "pending",
			},
		},
	}

	report := Run(context.Background(), suite)

	assert.Equal(t, []string{"setup", "passes", "asserts", "requires", "panics"}, order)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "outcomes", report.Suite)
	require.Len(t, report.Cases, 5)

	expected := []Status{StatusPassed, StatusFailed, StatusFailed, StatusFailed, StatusPending}
	for i, status := range expected {
		assert.Equal(t, status, report.Cases[i].Status, report.Cases[i].Name)
	}

	assert.Len(t, report.Cases[1].Failures, 2)
	assert.Len(t, report.Cases[2].Failures, 1)
	assert.Contains(t, report.Cases[3].Failures[0], "unexpected")

	assert.Equal(t, 1, report.Count(StatusPassed))
	assert.Equal(t, 3, report.Count(StatusFailed))
	assert.Equal(t, 1, report.Count(StatusPending))

	err := report.Err()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 3)
}

func TestRun_PendingIsNotFailure(t *testing.T) {
	t.Parallel()

	report := Run(context.Background(), Suite{
		Name:  "pending only",
		Cases: []Case{{Name: "todo"}},
	})

	assert.Equal(t, StatusPending, report.Cases[0].Status)
	require.NoError(t, report.Err())
}

func TestRun_SetupFailureAborts(t *testing.T) {
	t.Parallel()

	ran := false

	report := Run(context.Background(), Suite{
		Name: "broken",
		Setup: func(context.Context) error {
			return errors.New("deployment failed")
		},
		Cases: []Case{
			{Name: "first", Run: func(context.Context, *T) { ran = true }},
			{Name: "second", Run: func(context.Context, *T) { ran = true }},
		},
	})

	assert.False(t, ran)
	assert.Equal(t, "deployment failed", report.SetupErr)
	assert.Equal(t, 2, report.Count(StatusFailed))
	assert.Contains(t, report.Cases[0].Failures[0], "deployment failed")
	require.Error(t, report.Err())
}

func TestRun_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false

	report := Run(ctx, Suite{
		Name:  "canceled",
		Cases: []Case{{Name: "never", Run: func(context.Context, *T) { ran = true }}},
	})

	assert.False(t, ran)
	assert.Equal(t, StatusFailed, report.Cases[0].Status)
}

func newTestHarness(t *testing.T, opts ...harness.Option) *harness.Harness {
	return newTestHarnessWithConfig(t, &devnet.Config{}, opts...)
}

func newTestHarnessWithConfig(t *testing.T, config *devnet.Config, opts ...harness.Option) *harness.Harness {
	t.Helper()

	key, err := wallet.GenerateKey()
	require.NoError(t, err)

	config.Premine = new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))
	config.Accounts = []ethgo.Address{key.Address()}

	d, err := devnet.NewDevnet(config)
	require.NoError(t, err)

	t.Cleanup(func() { _ = d.Close() })

	h, err := harness.New(d, key, opts...)
	require.NoError(t, err)

	return h
}

func TestLotterySuite(t *testing.T) {
	t.Parallel()

	report := Run(context.Background(), NewLotterySuite(newTestHarness(t)))

	require.Empty(t, report.SetupErr)
	require.Len(t, report.Cases, 3)

	assert.Equal(t, StatusPassed, report.Cases[0].Status, report.Cases[0].Failures)
	assert.Equal(t, StatusPassed, report.Cases[1].Status, report.Cases[1].Failures)
	assert.Equal(t, StatusPending, report.Cases[2].Status)
	assert.Equal(t, "enters a bearer into the lottery pool", report.Cases[2].Name)

	require.NoError(t, report.Err())
}

func TestLotterySuite_IntervalMining(t *testing.T) {
	t.Parallel()

	h := newTestHarnessWithConfig(t, &devnet.Config{BlockTime: 200 * time.Millisecond})

	report := Run(context.Background(), NewLotterySuite(h))

	require.Empty(t, report.SetupErr)
	assert.Equal(t, 2, report.Count(StatusPassed), report.Cases)
	assert.Equal(t, 1, report.Count(StatusPending))
	require.NoError(t, report.Err())
}

// retrieve always answers 2^64, which does not fit into 64 bits
const wideValueRuntime = "600160401b60005260206000f3"

func TestLotterySuite_ComparesFullWidth(t *testing.T) {
	t.Parallel()

	registry, err := contracts.DefaultRegistry()
	require.NoError(t, err)

	lottery, err := registry.Get(contracts.LotteryName)
	require.NoError(t, err)

	code, err := hex.DecodeHex("600d80600b6000396000f3" + wideValueRuntime)
	require.NoError(t, err)

	registry.Register(contracts.LotteryName, &contracts.Artifact{
		Name:     contracts.LotteryName,
		Abi:      lottery.Abi,
		Bytecode: code,
	})

	h := newTestHarness(t, harness.WithArtifacts(registry))

	report := Run(context.Background(), NewLotterySuite(h))

	require.Empty(t, report.SetupErr)
	assert.Equal(t, StatusFailed, report.Cases[0].Status)
	assert.Contains(t, report.Cases[0].Failures[0], "18446744073709551616")
	assert.Equal(t, StatusFailed, report.Cases[1].Status)
}

func TestLotterySuite_UnfundedSender(t *testing.T) {
	t.Parallel()

	key, err := wallet.GenerateKey()
	require.NoError(t, err)

	d, err := devnet.NewDevnet(&devnet.Config{})
	require.NoError(t, err)

	defer d.Close()

	h, err := harness.New(d, key)
	require.NoError(t, err)

	report := Run(context.Background(), NewLotterySuite(h))

	require.NotEmpty(t, report.SetupErr)
	assert.Equal(t, 3, report.Count(StatusFailed))
	assert.Equal(t, 0, report.Count(StatusPassed))
}
