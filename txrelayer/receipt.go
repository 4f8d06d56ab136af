package txrelayer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/jsonrpc/codec"
)

const (
	receiptNotFound = "not found"

	// geth 1.14 answers with this until the lookup entry of a freshly mined or pending tx is indexed
	txIndexingInProgress = "transaction indexing is in progress"
)

var (
	errNotSent        = errors.New("transaction has not been sent")
	errReceiptPending = errors.New("receipt not available yet")
)

// ReceiptFetcher queries a transaction receipt. A nil receipt, or an error accepted
// by IsReceiptPending, means the transaction has not been included yet.
type ReceiptFetcher func(ctx context.Context) (*ethgo.Receipt, error)

// PollReceipt queries the receipt every interval until it is available,
// a non-retryable error occurs or ctx is done
func PollReceipt(ctx context.Context, interval time.Duration, fetch ReceiptFetcher) (*ethgo.Receipt, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	var receipt *ethgo.Receipt

	err := retry.Do(ctx, retry.NewConstant(interval), func(ctx context.Context) error {
		r, err := fetch(ctx)
		if err != nil {
			if IsReceiptPending(err) {
				return retry.RetryableError(errReceiptPending)
			}

			return err
		}

		if r == nil {
			return retry.RetryableError(errReceiptPending)
		}

		receipt = r

		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("timeout while waiting for transaction receipt: %w", err)
		}

		return nil, err
	}

	return receipt, nil
}

// IsReceiptPending reports whether a receipt query error means the receipt is not available yet
func IsReceiptPending(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	// ethgo renders json-rpc errors as the marshalled error object
	var rpcErr *codec.ErrorObject
	if errors.As(err, &rpcErr) {
		msg = rpcErr.Message
	}

	switch msg {
	case receiptNotFound, txIndexingInProgress:
		return true
	default:
		return false
	}
}
