package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl"
	"gopkg.in/yaml.v3"
)

const (
	// NetworkDevnet runs the harness against an in-process chain
	NetworkDevnet = "devnet"
	// NetworkJSONRPC runs the harness against a node reachable over JSON-RPC
	NetworkJSONRPC = "jsonrpc"

	// DefaultJSONRPCAddr is the JSON-RPC endpoint used when none is configured
	DefaultJSONRPCAddr = "http://127.0.0.1:8545"

	// DefaultReceiptTimeout bounds the wait for a transaction receipt
	DefaultReceiptTimeout = 30 * time.Second

	// DefaultPremine is the devnet balance of the sender account (1000 ETH)
	DefaultPremine = "0x3635C9ADC5DEA00000"
)

// Config defines the harness configuration params
type Config struct {
	Network        string     `json:"network" yaml:"network" hcl:"network"`
	JSONRPCAddr    string     `json:"jsonrpc_addr" yaml:"jsonrpc_addr" hcl:"jsonrpc_addr"`
	SenderKey      string     `json:"sender_key" yaml:"sender_key" hcl:"sender_key"`
	DataDir        string     `json:"data_dir" yaml:"data_dir" hcl:"data_dir"`
	ArtifactsDir   string     `json:"artifacts_dir" yaml:"artifacts_dir" hcl:"artifacts_dir"`
	LogLevel       string     `json:"log_level" yaml:"log_level" hcl:"log_level"`
	JSONLogFormat  bool       `json:"json_log_format" yaml:"json_log_format" hcl:"json_log_format"`
	ReceiptTimeout string     `json:"receipt_timeout" yaml:"receipt_timeout" hcl:"receipt_timeout"`
	Devnet         *Devnet    `json:"devnet" yaml:"devnet" hcl:"devnet"`
	Telemetry      *Telemetry `json:"telemetry" yaml:"telemetry" hcl:"telemetry"`
}

// Devnet holds the in-process chain params
type Devnet struct {
	// BlockTime is the mining interval, "0s" mines a block per transaction
	BlockTime string `json:"block_time" yaml:"block_time" hcl:"block_time"`
	Premine   string `json:"premine" yaml:"premine" hcl:"premine"`
}

// Telemetry holds the config details for metric services.
type Telemetry struct {
	PrometheusAddr string `json:"prometheus_addr" yaml:"prometheus_addr" hcl:"prometheus_addr"`
}

// DefaultConfig returns the default harness configuration
func DefaultConfig() *Config {
	return &Config{
		Network:        NetworkDevnet,
		JSONRPCAddr:    DefaultJSONRPCAddr,
		LogLevel:       "INFO",
		ReceiptTimeout: DefaultReceiptTimeout.String(),
		Devnet: &Devnet{
			BlockTime: "0s",
			Premine:   DefaultPremine,
		},
		Telemetry: &Telemetry{},
	}
}

// ReadConfigFile reads the config file from the specified path, builds a Config object
// and returns it.
//
// Supported file types: .json, .hcl, .yaml, .yml
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var unmarshalFunc func([]byte, interface{}) error

	switch {
	case strings.HasSuffix(path, ".hcl"):
		unmarshalFunc = hcl.Unmarshal
	case strings.HasSuffix(path, ".json"):
		unmarshalFunc = json.Unmarshal
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		unmarshalFunc = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("suffix of %s is neither hcl, json, yaml nor yml", path)
	}

	config := DefaultConfig()

	if err := unmarshalFunc(data, config); err != nil {
		return nil, err
	}

	// partially filled sections leave the remaining fields empty
	defaults := DefaultConfig()

	if config.Devnet == nil {
		config.Devnet = defaults.Devnet
	}

	if config.Devnet.BlockTime == "" {
		config.Devnet.BlockTime = defaults.Devnet.BlockTime
	}

	if config.Devnet.Premine == "" {
		config.Devnet.Premine = defaults.Devnet.Premine
	}

	if config.Telemetry == nil {
		config.Telemetry = defaults.Telemetry
	}

	return config, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Network {
	case NetworkDevnet, NetworkJSONRPC:
	default:
		return fmt.Errorf("unknown network '%s', expected %s or %s", c.Network, NetworkDevnet, NetworkJSONRPC)
	}

	if c.Network == NetworkJSONRPC && c.SenderKey == "" {
		return errors.New("sender key is required when running against a JSON-RPC node")
	}

	if _, err := c.GetReceiptTimeout(); err != nil {
		return err
	}

	if _, err := c.GetBlockTime(); err != nil {
		return err
	}

	return nil
}

// GetReceiptTimeout parses the configured receipt timeout
func (c *Config) GetReceiptTimeout() (time.Duration, error) {
	if c.ReceiptTimeout == "" {
		return DefaultReceiptTimeout, nil
	}

	timeout, err := time.ParseDuration(c.ReceiptTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid receipt timeout '%s': %w", c.ReceiptTimeout, err)
	}

	if timeout <= 0 {
		return 0, fmt.Errorf("receipt timeout must be positive, got %s", timeout)
	}

	return timeout, nil
}

// GetBlockTime parses the configured devnet block time
func (c *Config) GetBlockTime() (time.Duration, error) {
	if c.Devnet == nil || c.Devnet.BlockTime == "" {
		return 0, nil
	}

	blockTime, err := time.ParseDuration(c.Devnet.BlockTime)
	if err != nil {
		return 0, fmt.Errorf("invalid devnet block time '%s': %w", c.Devnet.BlockTime, err)
	}

	if blockTime < 0 {
		return 0, fmt.Errorf("devnet block time must not be negative, got %s", blockTime)
	}

	return blockTime, nil
}

// SanitizeRPCEndpoint normalizes the JSON-RPC endpoint: an empty value resolves
// to the local default and the all-interfaces address to the loopback one
func SanitizeRPCEndpoint(rpcEndpoint string) string {
	endpoint := rpcEndpoint
	if endpoint == "" {
		return DefaultJSONRPCAddr
	}

	if strings.Contains(endpoint, "0.0.0.0") {
		_, port, err := net.SplitHostPort(strings.TrimPrefix(endpoint, "http://"))
		if err == nil {
			endpoint = fmt.Sprintf("http://%s:%s", "127.0.0.1", port)
		}
	}

	return endpoint
}
