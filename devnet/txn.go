package devnet

import (
	"context"

	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/contract"

	"github.com/0xPolygon/lottery-harness/txrelayer"
)

// devnetTxn implements contract.Txn on top of the simulated backend
type devnetTxn struct {
	devnet *Devnet
	to     ethgo.Address
	key    ethgo.Key
	input  []byte
	opts   *contract.TxnOpts
	hash   ethgo.Hash
}

func (t *devnetTxn) Hash() ethgo.Hash {
	return t.hash
}

func (t *devnetTxn) WithOpts(opts *contract.TxnOpts) {
	t.opts = opts
}

func (t *devnetTxn) Do() error {
	hash, err := t.devnet.send(context.Background(), t)
	if err != nil {
		return err
	}

	t.hash = hash

	return nil
}

func (t *devnetTxn) Wait() (*ethgo.Receipt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultWaitTimeout)
	defer cancel()

	return t.WaitContext(ctx)
}

// WaitContext blocks until the transaction is mined or ctx is done
func (t *devnetTxn) WaitContext(ctx context.Context) (*ethgo.Receipt, error) {
	if t.hash == (ethgo.Hash{}) {
		return nil, errNotSent
	}

	return txrelayer.PollReceipt(ctx, defaultPollInterval, func(ctx context.Context) (*ethgo.Receipt, error) {
		return t.devnet.receipt(ctx, t.hash)
	})
}
