package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/armon/go-metrics"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/contract"

	"github.com/0xPolygon/lottery-harness/contracts"
	"github.com/0xPolygon/lottery-harness/deployments"
)

var errNoContractAddress = errors.New("receipt carries no contract address")

// ContractFactory deploys new instances of an artifact
type ContractFactory struct {
	harness  *Harness
	name     string
	artifact *contracts.Artifact
}

func (f *ContractFactory) Name() string {
	return f.name
}

// Deploy sends the creation transaction. Constructor arguments are abi encoded
// after the creation bytecode.
func (f *ContractFactory) Deploy(ctx context.Context, args ...interface{}) (*Deployment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := f.harness

	txn, err := contract.DeployContract(f.artifact.Abi, f.artifact.Bytecode, args,
		contract.WithProvider(h.backend),
		contract.WithSender(h.sender))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s deployment: %w", f.name, err)
	}

	if err := txn.Do(); err != nil {
		return nil, fmt.Errorf("failed to send %s deployment: %w", f.name, err)
	}

	h.logger.Info("deployment sent", "name", f.name, "hash", txn.Hash())

	return &Deployment{
		factory: f,
		tx:      newPendingTx(txn, f.name+".deploy", h.receiptTimeout, h.logger),
	}, nil
}

// Deployment is a contract creation that has been sent but not necessarily mined
type Deployment struct {
	factory *ContractFactory
	tx      *PendingTx
}

// TxHash returns the hash of the creation transaction
func (d *Deployment) TxHash() ethgo.Hash {
	return d.tx.Hash()
}

// Deployed blocks until the creation transaction is mined and returns a handle
// bound to the new contract address
func (d *Deployment) Deployed(ctx context.Context) (*Contract, error) {
	receipt, err := d.tx.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s deployment failed: %w", d.factory.name, err)
	}

	if receipt.ContractAddress == ethgo.ZeroAddress {
		return nil, fmt.Errorf("%s deployment failed: %w", d.factory.name, errNoContractAddress)
	}

	h := d.factory.harness

	metrics.IncrCounter([]string{"harness", "deployments"}, 1)
	h.logger.Info("contract deployed", "name", d.factory.name, "address", receipt.ContractAddress,
		"block", receipt.BlockNumber)

	chainID, err := h.backend.ChainID()
	if err != nil {
		h.logger.Warn("failed to query chain id, deployment is not recorded", "err", err)
	} else {
		h.recordDeployment(&deployments.Deployment{
			Name:        d.factory.name,
			ChainID:     chainID,
			Address:     receipt.ContractAddress,
			TxHash:      d.tx.Hash(),
			BlockNumber: receipt.BlockNumber,
			DeployedAt:  time.Now().UTC(),
		})
	}

	return h.bind(d.factory.name, d.factory.artifact, receipt.ContractAddress), nil
}
