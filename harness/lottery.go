package harness

import (
	"context"
	"math/big"

	"github.com/umbracle/ethgo"

	"github.com/0xPolygon/lottery-harness/contracts"
)

// Lottery is the typed binding of the lottery contract
type Lottery struct {
	*Contract
}

// DeployLottery deploys a lottery instance and waits until it is mined
func (h *Harness) DeployLottery(ctx context.Context) (*Lottery, error) {
	factory, err := h.GetContractFactory(contracts.LotteryName)
	if err != nil {
		return nil, err
	}

	deployment, err := factory.Deploy(ctx)
	if err != nil {
		return nil, err
	}

	c, err := deployment.Deployed(ctx)
	if err != nil {
		return nil, err
	}

	return &Lottery{Contract: c}, nil
}

// LotteryAt binds a lottery handle to an existing address
func (h *Harness) LotteryAt(addr ethgo.Address) (*Lottery, error) {
	c, err := h.GetContractAt(contracts.LotteryName, addr)
	if err != nil {
		return nil, err
	}

	return &Lottery{Contract: c}, nil
}

// Retrieve reads the stored value
func (l *Lottery) Retrieve(ctx context.Context) (*big.Int, error) {
	return l.CallUint256(ctx, "retrieve")
}

// Store writes a new value. The write is only observable once the returned transaction is confirmed.
func (l *Lottery) Store(ctx context.Context, num *big.Int) (*PendingTx, error) {
	return l.Transact(ctx, "store", num)
}
