package harness

import (
	"context"
	"fmt"
	"math/big"

	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/abi"
	"github.com/umbracle/ethgo/contract"
)

// Contract is a handle bound to a deployed contract address
type Contract struct {
	harness *Harness
	name    string
	address ethgo.Address
	abi     *abi.ABI
	bound   *contract.Contract
}

func (c *Contract) Name() string {
	return c.name
}

func (c *Contract) Address() ethgo.Address {
	return c.address
}

func (c *Contract) Abi() *abi.ABI {
	return c.abi
}

// Call invokes a read-only method at the latest block and returns its decoded outputs
func (c *Contract) Call(ctx context.Context, method string, args ...interface{}) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := c.bound.Call(method, ethgo.Latest, args...)
	if err != nil {
		return nil, fmt.Errorf("%s.%s call failed: %w", c.name, method, err)
	}

	return res, nil
}

// CallUint256 invokes a read-only method returning a single uint256
func (c *Contract) CallUint256(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	res, err := c.Call(ctx, method, args...)
	if err != nil {
		return nil, err
	}

	m := c.abi.GetMethod(method)
	if m == nil || len(m.Outputs.TupleElems()) != 1 {
		return nil, fmt.Errorf("%s.%s does not return a single value", c.name, method)
	}

	key := m.Outputs.TupleElems()[0].Name
	if key == "" {
		key = "0"
	}

	value, ok := res[key].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s.%s returned %T, expected uint256", c.name, method, res[key])
	}

	return value, nil
}

// Transact sends a transaction invoking the given method
func (c *Contract) Transact(ctx context.Context, method string, args ...interface{}) (*PendingTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txn, err := c.bound.Txn(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", c.name, method, err)
	}

	if err := txn.Do(); err != nil {
		return nil, fmt.Errorf("%s.%s send failed: %w", c.name, method, err)
	}

	label := c.name + "." + method
	c.harness.logger.Debug("transaction sent", "call", label, "hash", txn.Hash())

	return newPendingTx(txn, label, c.harness.receiptTimeout, c.harness.logger), nil
}
