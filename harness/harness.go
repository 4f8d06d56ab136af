package harness

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/contract"

	"github.com/0xPolygon/lottery-harness/contracts"
	"github.com/0xPolygon/lottery-harness/deployments"
)

// DefaultReceiptTimeout bounds a confirmation wait when none is configured
const DefaultReceiptTimeout = 30 * time.Second

var errNoDeployments = errors.New("no deployments registry configured")

// Backend is the contract-execution environment the harness talks to
type Backend interface {
	contract.Provider

	ChainID() (uint64, error)
	Close() error
}

type Option func(*Harness)

func WithLogger(logger hclog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithArtifacts sets the registry contract factories are built from
func WithArtifacts(registry *contracts.Registry) Option {
	return func(h *Harness) {
		h.artifacts = registry
	}
}

// WithDeployments records every successful deployment in the given store
func WithDeployments(store *deployments.Store) Option {
	return func(h *Harness) {
		h.deployments = store
	}
}

func WithReceiptTimeout(timeout time.Duration) Option {
	return func(h *Harness) {
		h.receiptTimeout = timeout
	}
}

// Harness deploys contracts and binds handles to them on behalf of a single sender
type Harness struct {
	backend        Backend
	sender         ethgo.Key
	artifacts      *contracts.Registry
	deployments    *deployments.Store
	receiptTimeout time.Duration
	logger         hclog.Logger
}

// New creates a harness over the given backend. Transactions are signed by sender.
func New(backend Backend, sender ethgo.Key, opts ...Option) (*Harness, error) {
	if backend == nil {
		return nil, errors.New("backend is not set")
	}

	if sender == nil {
		return nil, errors.New("sender key is not set")
	}

	h := &Harness{
		backend:        backend,
		sender:         sender,
		receiptTimeout: DefaultReceiptTimeout,
		logger:         hclog.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.artifacts == nil {
		registry, err := contracts.DefaultRegistry()
		if err != nil {
			return nil, err
		}

		h.artifacts = registry
	}

	h.logger = h.logger.Named("harness")

	return h, nil
}

// Backend returns the contract-execution environment
func (h *Harness) Backend() Backend {
	return h.backend
}

// Sender returns the address transactions are sent from
func (h *Harness) Sender() ethgo.Address {
	return h.sender.Address()
}

// GetContractFactory returns a factory for the named artifact
func (h *Harness) GetContractFactory(name string) (*ContractFactory, error) {
	artifact, err := h.artifacts.Get(name)
	if err != nil {
		return nil, err
	}

	return &ContractFactory{
		harness:  h,
		name:     name,
		artifact: artifact,
	}, nil
}

// GetContractAt binds a handle for the named artifact to an already deployed address
func (h *Harness) GetContractAt(name string, addr ethgo.Address) (*Contract, error) {
	if addr == ethgo.ZeroAddress {
		return nil, fmt.Errorf("cannot bind %s to the zero address", name)
	}

	artifact, err := h.artifacts.Get(name)
	if err != nil {
		return nil, err
	}

	return h.bind(name, artifact, addr), nil
}

// GetDeployment binds a handle to the recorded deployment of the named artifact
// on the backend's chain
func (h *Harness) GetDeployment(name string) (*Contract, error) {
	if h.deployments == nil {
		return nil, errNoDeployments
	}

	chainID, err := h.backend.ChainID()
	if err != nil {
		return nil, err
	}

	d, err := h.deployments.Get(chainID, name)
	if err != nil {
		return nil, err
	}

	return h.GetContractAt(name, d.Address)
}

func (h *Harness) bind(name string, artifact *contracts.Artifact, addr ethgo.Address) *Contract {
	return &Contract{
		harness: h,
		name:    name,
		address: addr,
		abi:     artifact.Abi,
		bound: contract.NewContract(addr, artifact.Abi,
			contract.WithProvider(h.backend),
			contract.WithSender(h.sender)),
	}
}

func (h *Harness) recordDeployment(d *deployments.Deployment) {
	if h.deployments == nil {
		return
	}

	if err := h.deployments.Put(d); err != nil {
		h.logger.Warn("failed to record deployment", "name", d.Name, "err", err)
	}
}
