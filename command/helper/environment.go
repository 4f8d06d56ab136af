package helper

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/wallet"

	"github.com/0xPolygon/lottery-harness/contracts"
	"github.com/0xPolygon/lottery-harness/deployments"
	"github.com/0xPolygon/lottery-harness/devnet"
	"github.com/0xPolygon/lottery-harness/harness"
	"github.com/0xPolygon/lottery-harness/helper/common"
	"github.com/0xPolygon/lottery-harness/helper/config"
	"github.com/0xPolygon/lottery-harness/helper/hex"
	"github.com/0xPolygon/lottery-harness/helper/telemetry"
	"github.com/0xPolygon/lottery-harness/txrelayer"
)

// Environment is everything a command needs to talk to a chain
type Environment struct {
	Config      *config.Config
	Logger      hclog.Logger
	Backend     harness.Backend
	Harness     *harness.Harness
	Deployments *deployments.Store
	Metrics     *metrics.InmemSink

	promServer *http.Server
}

// NewLogger creates the root logger of a command, writing to stderr
func NewLogger(cfg *config.Config) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "lottery-harness",
		Level:      hclog.LevelFromString(cfg.LogLevel),
		JSONFormat: cfg.JSONLogFormat,
		Output:     os.Stderr,
	})
}

// NewEnvironment builds the backend, the deployments registry and the harness from the config.
// The returned environment must be closed.
func NewEnvironment(cfg *config.Config) (env *Environment, err error) {
	env = &Environment{
		Config: cfg,
		Logger: NewLogger(cfg),
	}

	defer func() {
		if err != nil {
			_ = env.Close()
			env = nil
		}
	}()

	if env.Metrics, err = telemetry.Setup(); err != nil {
		return env, fmt.Errorf("failed to set up telemetry: %w", err)
	}

	if cfg.Telemetry != nil && cfg.Telemetry.PrometheusAddr != "" {
		env.promServer = telemetry.StartPrometheusServer(cfg.Telemetry.PrometheusAddr, env.Logger)
	}

	sender, err := senderKey(cfg)
	if err != nil {
		return env, err
	}

	registry, err := contracts.DefaultRegistry()
	if err != nil {
		return env, err
	}

	if cfg.ArtifactsDir != "" {
		if err := registry.LoadDir(cfg.ArtifactsDir); err != nil {
			return env, fmt.Errorf("failed to load artifacts: %w", err)
		}
	}

	if cfg.DataDir != "" {
		if err := common.SetupDataDir(cfg.DataDir); err != nil {
			return env, err
		}

		if env.Deployments, err = deployments.Open(cfg.DataDir, env.Logger); err != nil {
			return env, err
		}
	}

	if env.Backend, err = newBackend(cfg, sender, env.Logger); err != nil {
		return env, err
	}

	receiptTimeout, err := cfg.GetReceiptTimeout()
	if err != nil {
		return env, err
	}

	opts := []harness.Option{
		harness.WithLogger(env.Logger),
		harness.WithArtifacts(registry),
		harness.WithReceiptTimeout(receiptTimeout),
	}

	if env.Deployments != nil {
		opts = append(opts, harness.WithDeployments(env.Deployments))
	}

	if env.Harness, err = harness.New(env.Backend, sender, opts...); err != nil {
		return env, err
	}

	return env, nil
}

// IsDevnet reports whether the environment runs an in-process chain
func (e *Environment) IsDevnet() bool {
	return e.Config.Network == config.NetworkDevnet
}

// Close releases the backend, the registry and the metrics server
func (e *Environment) Close() error {
	var result *multierror.Error

	if e.Backend != nil {
		if err := e.Backend.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close backend: %w", err))
		}
	}

	if e.Deployments != nil {
		if err := e.Deployments.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close deployments registry: %w", err))
		}
	}

	if e.promServer != nil {
		if err := e.promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func senderKey(cfg *config.Config) (ethgo.Key, error) {
	if cfg.SenderKey != "" {
		return DecodePrivateKey(cfg.SenderKey)
	}

	if cfg.Network != config.NetworkDevnet {
		return nil, errors.New("sender key is not set")
	}

	key, err := wallet.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate sender key: %w", err)
	}

	return key, nil
}

func newBackend(cfg *config.Config, sender ethgo.Key, logger hclog.Logger) (harness.Backend, error) {
	switch cfg.Network {
	case config.NetworkDevnet:
		blockTime, err := cfg.GetBlockTime()
		if err != nil {
			return nil, err
		}

		premine, err := hex.ParseUint256(cfg.Devnet.Premine)
		if err != nil {
			return nil, fmt.Errorf("invalid devnet premine: %w", err)
		}

		d, err := devnet.NewDevnet(&devnet.Config{
			BlockTime: blockTime,
			Premine:   premine,
			Accounts:  []ethgo.Address{sender.Address()},
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}

		return d, nil
	case config.NetworkJSONRPC:
		relayer, err := txrelayer.NewTxRelayer(
			txrelayer.WithAddr(cfg.JSONRPCAddr),
			txrelayer.WithLogger(logger.Named("txrelayer")),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tx relayer: %w", err)
		}

		return relayer, nil
	default:
		return nil, fmt.Errorf("unknown network '%s'", cfg.Network)
	}
}
