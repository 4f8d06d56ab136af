package txrelayer

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/contract"
	"github.com/umbracle/ethgo/jsonrpc"
	"github.com/umbracle/ethgo/wallet"

	"github.com/0xPolygon/lottery-harness/helper/hex"
)

const (
	// DefaultRPCAddress is the JSON-RPC endpoint of a locally running node
	DefaultRPCAddress = "http://127.0.0.1:8545"

	defaultGasLimit     = 5242880 // 0x500000
	defaultPollInterval = 50 * time.Millisecond
	defaultWaitTimeout  = 30 * time.Second
)

type RelayerOption func(*TxRelayer)

func WithAddr(addr string) RelayerOption {
	return func(h *TxRelayer) {
		h.addr = addr
	}
}

func WithClient(client *jsonrpc.Client) RelayerOption {
	return func(h *TxRelayer) {
		h.client = client
	}
}

func WithLogger(logger hclog.Logger) RelayerOption {
	return func(h *TxRelayer) {
		h.logger = logger
	}
}

// WithGasPrice sets a fixed gas price instead of querying it from the node
func WithGasPrice(gasPrice uint64) RelayerOption {
	return func(h *TxRelayer) {
		h.gasPrice = gasPrice
	}
}

// WithReceiptPollInterval sets the delay between two receipt queries
func WithReceiptPollInterval(interval time.Duration) RelayerOption {
	return func(h *TxRelayer) {
		h.pollInterval = interval
	}
}

var _ contract.Provider = (*TxRelayer)(nil)

// TxRelayer sends signed transactions and contract calls to a node over JSON-RPC
type TxRelayer struct {
	addr         string
	client       *jsonrpc.Client
	gasPrice     uint64
	pollInterval time.Duration
	logger       hclog.Logger

	chainIDLock sync.Mutex
	chainID     *big.Int
}

func NewTxRelayer(opts ...RelayerOption) (*TxRelayer, error) {
	t := &TxRelayer{
		addr:         DefaultRPCAddress,
		pollInterval: defaultPollInterval,
		logger:       hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.client == nil {
		client, err := jsonrpc.NewClient(t.addr)
		if err != nil {
			return nil, err
		}
		t.client = client
	}

	return t, nil
}

// Client returns the underlying JSON-RPC client
func (t *TxRelayer) Client() *jsonrpc.Client {
	return t.client
}

// ChainID returns the chain id reported by the node. The value is cached after the first query.
func (t *TxRelayer) ChainID() (uint64, error) {
	chainID, err := t.getChainID()
	if err != nil {
		return 0, err
	}

	return chainID.Uint64(), nil
}

func (t *TxRelayer) getChainID() (*big.Int, error) {
	t.chainIDLock.Lock()
	defer t.chainIDLock.Unlock()

	if t.chainID == nil {
		chainID, err := t.client.Eth().ChainID()
		if err != nil {
			return nil, fmt.Errorf("failed to query chain id: %w", err)
		}

		t.chainID = chainID
	}

	return t.chainID, nil
}

// Call function is used to query a smart contract on given 'to' address
func (t *TxRelayer) Call(to ethgo.Address, input []byte, opts *contract.CallOpts) ([]byte, error) {
	block := ethgo.Latest

	callMsg := &ethgo.CallMsg{
		To:   &to,
		Data: input,
	}

	if opts != nil {
		callMsg.From = opts.From
		block = opts.Block
	}

	output, err := t.client.Eth().Call(callMsg, block)
	if err != nil {
		return nil, err
	}

	return hex.DecodeHex(output)
}

// Txn creates a transaction which is signed with the given key and sent on Do.
// A zero 'to' address creates a contract.
func (t *TxRelayer) Txn(to ethgo.Address, key ethgo.Key, input []byte) (contract.Txn, error) {
	return &relayedTxn{
		relayer: t,
		to:      to,
		key:     key,
		input:   input,
		opts:    &contract.TxnOpts{},
	}, nil
}

// Close closes the JSON-RPC client
func (t *TxRelayer) Close() error {
	return t.client.Close()
}

func (t *TxRelayer) sendTransaction(txn *ethgo.Transaction, key ethgo.Key) (ethgo.Hash, error) {
	chainID, err := t.getChainID()
	if err != nil {
		return ethgo.Hash{}, err
	}

	signer := wallet.NewEIP155Signer(chainID.Uint64())
	if txn, err = signer.SignTx(txn, key); err != nil {
		return ethgo.Hash{}, err
	}

	data, err := txn.MarshalRLPTo(nil)
	if err != nil {
		return ethgo.Hash{}, err
	}

	return t.client.Eth().SendRawTransaction(data)
}

func (t *TxRelayer) waitForReceipt(ctx context.Context, hash ethgo.Hash) (*ethgo.Receipt, error) {
	return PollReceipt(ctx, t.pollInterval, func(context.Context) (*ethgo.Receipt, error) {
		return t.client.Eth().GetTransactionReceipt(hash)
	})
}

// relayedTxn implements contract.Txn on top of the relayer
type relayedTxn struct {
	relayer *TxRelayer
	to      ethgo.Address
	key     ethgo.Key
	input   []byte
	opts    *contract.TxnOpts
	hash    ethgo.Hash
}

func (r *relayedTxn) Hash() ethgo.Hash {
	return r.hash
}

func (r *relayedTxn) WithOpts(opts *contract.TxnOpts) {
	r.opts = opts
}

func (r *relayedTxn) Do() error {
	eth := r.relayer.client.Eth()

	txn := &ethgo.Transaction{
		From:  r.key.Address(),
		Input: r.input,
		Gas:   defaultGasLimit,
		Value: big.NewInt(0),
	}

	if r.to != ethgo.ZeroAddress {
		to := r.to
		txn.To = &to
	}

	if r.opts.Value != nil {
		txn.Value = r.opts.Value
	}

	if r.opts.GasLimit != 0 {
		txn.Gas = r.opts.GasLimit
	}

	switch {
	case r.opts.GasPrice != 0:
		txn.GasPrice = r.opts.GasPrice
	case r.relayer.gasPrice != 0:
		txn.GasPrice = r.relayer.gasPrice
	default:
		gasPrice, err := eth.GasPrice()
		if err != nil {
			return fmt.Errorf("failed to query gas price: %w", err)
		}

		txn.GasPrice = gasPrice
	}

	if r.opts.Nonce != 0 {
		txn.Nonce = r.opts.Nonce
	} else {
		nonce, err := eth.GetNonce(r.key.Address(), ethgo.Pending)
		if err != nil {
			return fmt.Errorf("failed to query nonce: %w", err)
		}

		txn.Nonce = nonce
	}

	hash, err := r.relayer.sendTransaction(txn, r.key)
	if err != nil {
		return err
	}

	r.hash = hash

	r.relayer.logger.Debug("transaction sent", "hash", hash, "nonce", txn.Nonce, "create", txn.To == nil)

	return nil
}

func (r *relayedTxn) Wait() (*ethgo.Receipt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultWaitTimeout)
	defer cancel()

	return r.WaitContext(ctx)
}

// WaitContext blocks until the transaction receipt is available or ctx is done
func (r *relayedTxn) WaitContext(ctx context.Context) (*ethgo.Receipt, error) {
	if r.hash == (ethgo.Hash{}) {
		return nil, errNotSent
	}

	return r.relayer.waitForReceipt(ctx, r.hash)
}
