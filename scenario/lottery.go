package scenario

import (
	"context"
	"math/big"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/lottery-harness/contracts"
	"github.com/0xPolygon/lottery-harness/harness"
)

// storedValue is the value written by the update case
const storedValue = 56

// NewLotterySuite deploys a lottery instance once and checks its stored value.
// Entering the lottery pool has no observable behavior yet and stays pending.
func NewLotterySuite(h *harness.Harness) Suite {
	var lottery *harness.Lottery

	return Suite{
		Name: contracts.LotteryName,
		Setup: func(ctx context.Context) error {
			l, err := h.DeployLottery(ctx)
			if err != nil {
				return err
			}

			lottery = l

			return nil
		},
		Cases: []Case{
			{
				Name: "test initial value",
				Run: func(ctx context.Context, t *T) {
					value, err := lottery.Retrieve(ctx)
					require.NoError(t, err)
					assert.Zero(t, value.Sign(), "expected 0, got %s", value)
				},
			},
			{
				Name: "test updating and retrieving updated value",
				Run: func(ctx context.Context, t *T) {
					attached, err := h.LotteryAt(lottery.Address())
					require.NoError(t, err)

					pending, err := attached.Store(ctx, big.NewInt(storedValue))
					require.NoError(t, err)

					_, err = pending.Wait(ctx)
					require.NoError(t, err)

					value, err := attached.Retrieve(ctx)
					require.NoError(t, err)
					assert.Zero(t, big.NewInt(storedValue).Cmp(value), "expected %d, got %s", storedValue, value)
				},
			},
			{
				Name: "enters a bearer into the lottery pool",
			},
		},
	}
}
