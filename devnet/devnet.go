package devnet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/armon/go-metrics"
	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/hashicorp/go-hclog"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/contract"

	"github.com/0xPolygon/lottery-harness/txrelayer"
)

const (
	defaultGasLimit     = 5242880 // 0x500000
	defaultPollInterval = 10 * time.Millisecond
	defaultWaitTimeout  = 30 * time.Second
)

var (
	errClosed  = errors.New("devnet is closed")
	errNotSent = errors.New("transaction has not been sent")
)

// Config is the in-process chain configuration
type Config struct {
	// BlockTime is the mining interval. Zero mines a block right after every transaction.
	BlockTime time.Duration

	// Premine is the initial balance of every account in Accounts
	Premine *big.Int

	Accounts []ethgo.Address

	Logger hclog.Logger
}

var _ contract.Provider = (*Devnet)(nil)

// Devnet is an in-process chain backed by the go-ethereum simulated backend
type Devnet struct {
	backend   *simulated.Backend
	client    simulated.Client
	chainID   *big.Int
	blockTime time.Duration
	logger    hclog.Logger

	// serializes nonce assignment, submission and block production
	lock sync.Mutex

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    bool
	wg        sync.WaitGroup
}

// NewDevnet starts the chain and, if a block time is set, the interval miner
func NewDevnet(config *Config) (*Devnet, error) {
	logger := config.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if config.BlockTime < 0 {
		return nil, fmt.Errorf("block time must not be negative, got %s", config.BlockTime)
	}

	alloc := types.GenesisAlloc{}

	for _, addr := range config.Accounts {
		balance := new(big.Int)
		if config.Premine != nil {
			balance.Set(config.Premine)
		}

		alloc[common.Address(addr)] = types.Account{Balance: balance}
	}

	backend := simulated.NewBackend(alloc)
	client := backend.Client()

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		_ = backend.Close()

		return nil, fmt.Errorf("failed to query devnet chain id: %w", err)
	}

	d := &Devnet{
		backend:   backend,
		client:    client,
		chainID:   chainID,
		blockTime: config.BlockTime,
		logger:    logger.Named("devnet"),
		closeCh:   make(chan struct{}),
	}

	if d.blockTime > 0 {
		d.wg.Add(1)

		go d.runMiner()
	}

	d.logger.Info("devnet started", "chain_id", chainID, "block_time", d.blockTime, "accounts", len(config.Accounts))

	return d, nil
}

// ChainID returns the chain id of the devnet
func (d *Devnet) ChainID() (uint64, error) {
	return d.chainID.Uint64(), nil
}

// BlockNumber returns the number of the latest mined block
func (d *Devnet) BlockNumber(ctx context.Context) (uint64, error) {
	return d.client.BlockNumber(ctx)
}

// Balance returns the balance of the account at the latest block
func (d *Devnet) Balance(ctx context.Context, addr ethgo.Address) (*big.Int, error) {
	return d.client.BalanceAt(ctx, common.Address(addr), nil)
}

// Call executes a read-only message against the latest (or requested) block
func (d *Devnet) Call(to ethgo.Address, input []byte, opts *contract.CallOpts) ([]byte, error) {
	toAddr := common.Address(to)
	msg := ethereum.CallMsg{
		To:   &toAddr,
		Data: input,
	}

	var block *big.Int

	if opts != nil {
		msg.From = common.Address(opts.From)

		if opts.Block >= 0 {
			block = new(big.Int).SetUint64(uint64(opts.Block))
		}
	}

	return d.client.CallContract(context.Background(), msg, block)
}

// Txn creates a transaction signed with the given key. A zero 'to' address creates a contract.
func (d *Devnet) Txn(to ethgo.Address, key ethgo.Key, input []byte) (contract.Txn, error) {
	return &devnetTxn{
		devnet: d,
		to:     to,
		key:    key,
		input:  input,
		opts:   &contract.TxnOpts{},
	}, nil
}

// Commit mines a block with the pending transactions
func (d *Devnet) Commit() {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.closed {
		return
	}

	d.commit()
}

func (d *Devnet) commit() {
	hash := d.backend.Commit()

	metrics.IncrCounter([]string{"devnet", "blocks"}, 1)
	d.logger.Debug("block mined", "hash", hash)
}

// Close stops the miner and the chain. Calling it more than once is a no-op.
func (d *Devnet) Close() error {
	var err error

	d.closeOnce.Do(func() {
		close(d.closeCh)
		d.wg.Wait()

		d.lock.Lock()
		d.closed = true
		err = d.backend.Close()
		d.lock.Unlock()

		d.logger.Info("devnet stopped")
	})

	return err
}

func (d *Devnet) runMiner() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.blockTime)
	defer ticker.Stop()

	for {
		select {
		case <-d.closeCh:
			return
		case <-ticker.C:
			d.Commit()
		}
	}
}

func (d *Devnet) send(ctx context.Context, txn *devnetTxn) (ethgo.Hash, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.closed {
		return ethgo.Hash{}, errClosed
	}

	from := common.Address(txn.key.Address())

	nonce := txn.opts.Nonce
	if nonce == 0 {
		pending, err := d.client.PendingNonceAt(ctx, from)
		if err != nil {
			return ethgo.Hash{}, fmt.Errorf("failed to query nonce: %w", err)
		}

		nonce = pending
	}

	gasPrice := new(big.Int).SetUint64(txn.opts.GasPrice)
	if txn.opts.GasPrice == 0 {
		suggested, err := d.client.SuggestGasPrice(ctx)
		if err != nil {
			return ethgo.Hash{}, fmt.Errorf("failed to query gas price: %w", err)
		}

		gasPrice = suggested
	}

	gas := txn.opts.GasLimit
	if gas == 0 {
		gas = defaultGasLimit
	}

	value := big.NewInt(0)
	if txn.opts.Value != nil {
		value = txn.opts.Value
	}

	legacy := &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		Value:    value,
		Data:     txn.input,
	}

	if txn.to != ethgo.ZeroAddress {
		to := common.Address(txn.to)
		legacy.To = &to
	}

	signed, err := signTx(types.NewTx(legacy), d.chainID, txn.key)
	if err != nil {
		return ethgo.Hash{}, err
	}

	if err := d.client.SendTransaction(ctx, signed); err != nil {
		return ethgo.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	d.logger.Debug("transaction sent", "hash", signed.Hash(), "nonce", nonce, "create", legacy.To == nil)

	if d.blockTime == 0 {
		d.commit()
	}

	return ethgo.Hash(signed.Hash()), nil
}

func (d *Devnet) receipt(ctx context.Context, hash ethgo.Hash) (*ethgo.Receipt, error) {
	d.lock.Lock()
	closed := d.closed
	d.lock.Unlock()

	if closed {
		return nil, errClosed
	}

	r, err := d.client.TransactionReceipt(ctx, common.Hash(hash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) || txrelayer.IsReceiptPending(err) {
			return nil, nil
		}

		return nil, err
	}

	return convertReceipt(r), nil
}

// signTx signs the transaction with an ethgo key, whose signature layout (R || S || V)
// matches the one expected by go-ethereum
func signTx(tx *types.Transaction, chainID *big.Int, key ethgo.Key) (*types.Transaction, error) {
	signer := types.LatestSignerForChainID(chainID)
	hash := signer.Hash(tx)

	sig, err := key.Sign(hash[:])
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return tx.WithSignature(signer, sig)
}

func convertReceipt(r *types.Receipt) *ethgo.Receipt {
	receipt := &ethgo.Receipt{
		TransactionHash:   ethgo.Hash(r.TxHash),
		TransactionIndex:  uint64(r.TransactionIndex),
		ContractAddress:   ethgo.Address(r.ContractAddress),
		BlockHash:         ethgo.Hash(r.BlockHash),
		GasUsed:           r.GasUsed,
		CumulativeGasUsed: r.CumulativeGasUsed,
		Status:            r.Status,
		Logs:              make([]*ethgo.Log, 0, len(r.Logs)),
	}

	if r.BlockNumber != nil {
		receipt.BlockNumber = r.BlockNumber.Uint64()
	}

	for _, l := range r.Logs {
		topics := make([]ethgo.Hash, len(l.Topics))
		for i, topic := range l.Topics {
			topics[i] = ethgo.Hash(topic)
		}

		receipt.Logs = append(receipt.Logs, &ethgo.Log{
			LogIndex:         uint64(l.Index),
			TransactionIndex: uint64(l.TxIndex),
			TransactionHash:  ethgo.Hash(l.TxHash),
			BlockHash:        ethgo.Hash(l.BlockHash),
			BlockNumber:      l.BlockNumber,
			Address:          ethgo.Address(l.Address),
			Topics:           topics,
			Data:             l.Data,
		})
	}

	return receipt
}
