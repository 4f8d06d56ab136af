package harness

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-hclog"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/contract"
)

// ErrTxnReverted is returned by Wait when the transaction was mined but failed
var ErrTxnReverted = errors.New("transaction reverted")

// contextWaiter is implemented by transactions that can stop waiting when a context is done
type contextWaiter interface {
	WaitContext(ctx context.Context) (*ethgo.Receipt, error)
}

// PendingTx is a sent transaction whose confirmation can be awaited
type PendingTx struct {
	txn     contract.Txn
	label   string
	timeout time.Duration
	logger  hclog.Logger

	lock    sync.Mutex
	receipt *ethgo.Receipt
}

func newPendingTx(txn contract.Txn, label string, timeout time.Duration, logger hclog.Logger) *PendingTx {
	metrics.IncrCounter([]string{"harness", "txns_sent"}, 1)

	return &PendingTx{
		txn:     txn,
		label:   label,
		timeout: timeout,
		logger:  logger,
	}
}

// Hash returns the transaction hash
func (p *PendingTx) Hash() ethgo.Hash {
	return p.txn.Hash()
}

// Wait blocks until the transaction is mined. A failed transaction returns ErrTxnReverted
// together with its receipt.
func (p *PendingTx) Wait(ctx context.Context) (*ethgo.Receipt, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.receipt == nil {
		receipt, err := p.wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s (%s): %w", p.label, p.Hash(), err)
		}

		p.receipt = receipt
	}

	if p.receipt.Status != 1 {
		return p.receipt, fmt.Errorf("%s (%s): %w", p.label, p.Hash(), ErrTxnReverted)
	}

	return p.receipt, nil
}

func (p *PendingTx) wait(ctx context.Context) (*ethgo.Receipt, error) {
	defer metrics.MeasureSince([]string{"harness", "receipt_wait"}, time.Now())

	if p.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	receipt, err := waitReceipt(ctx, p.txn)
	if err != nil {
		return nil, err
	}

	if receipt.Status != 1 {
		metrics.IncrCounter([]string{"harness", "txns_reverted"}, 1)
		p.logger.Debug("transaction reverted", "label", p.label, "hash", p.Hash(), "block", receipt.BlockNumber)
	} else {
		p.logger.Debug("transaction confirmed", "label", p.label, "hash", p.Hash(), "block", receipt.BlockNumber)
	}

	return receipt, nil
}

func waitReceipt(ctx context.Context, txn contract.Txn) (*ethgo.Receipt, error) {
	if w, ok := txn.(contextWaiter); ok {
		return w.WaitContext(ctx)
	}

	type result struct {
		receipt *ethgo.Receipt
		err     error
	}

	resCh := make(chan result, 1)

	go func() {
		receipt, err := txn.Wait()
		resCh <- result{receipt, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resCh:
		return res.receipt, res.err
	}
}
