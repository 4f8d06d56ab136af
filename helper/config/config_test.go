package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Test_SanitizeRPCEndpoint
func Test_SanitizeRPCEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{
			"url with port",
			"http://localhost:10001",
			"http://localhost:10001",
		},
		{
			"all interfaces with port without schema",
			"0.0.0.0:10001",
			"http://127.0.0.1:10001",
		},
		{
			"all interfaces with schema",
			"http://0.0.0.0:8545",
			"http://127.0.0.1:8545",
		},
		{
			"url without port",
			"http://127.0.0.1",
			"http://127.0.0.1",
		},
		{
			"empty endpoint",
			"",
			"http://127.0.0.1:8545",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeRPCEndpoint(tt.endpoint); got != tt.want {
				t.Errorf("sanitizeRPCEndpoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestReadConfigFile(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"config.json": `{
			"network": "jsonrpc",
			"jsonrpc_addr": "http://127.0.0.1:10002",
			"sender_key": "aa",
			"receipt_timeout": "5s",
			"telemetry": {"prometheus_addr": "127.0.0.1:9090"}
		}`,
		"config.yaml": `
network: jsonrpc
jsonrpc_addr: http://127.0.0.1:10002
sender_key: aa
receipt_timeout: 5s
telemetry:
  prometheus_addr: 127.0.0.1:9090
`,
		"config.hcl": `
network = "jsonrpc"
jsonrpc_addr = "http://127.0.0.1:10002"
sender_key = "aa"
receipt_timeout = "5s"
telemetry {
  prometheus_addr = "127.0.0.1:9090"
}
`,
	}

	for name, content := range files {
		name, content := name, content
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := ReadConfigFile(writeConfig(t, name, content))
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			assert.Equal(t, NetworkJSONRPC, cfg.Network)
			assert.Equal(t, "http://127.0.0.1:10002", cfg.JSONRPCAddr)
			assert.Equal(t, "aa", cfg.SenderKey)
			assert.Equal(t, "127.0.0.1:9090", cfg.Telemetry.PrometheusAddr)
			// untouched values keep their defaults
			assert.Equal(t, "INFO", cfg.LogLevel)
			assert.Equal(t, DefaultPremine, cfg.Devnet.Premine)

			timeout, err := cfg.GetReceiptTimeout()
			require.NoError(t, err)
			assert.Equal(t, 5*time.Second, timeout)
		})
	}
}

func TestReadConfigFile_UnsupportedSuffix(t *testing.T) {
	t.Parallel()

	_, err := ReadConfigFile(writeConfig(t, "config.toml", `network = "devnet"`))
	require.ErrorContains(t, err, "neither hcl, json, yaml nor yml")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Network = "mainnet"
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Network = NetworkJSONRPC
	require.ErrorContains(t, cfg.Validate(), "sender key")

	cfg = DefaultConfig()
	cfg.ReceiptTimeout = "-1s"
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Devnet.BlockTime = "soon"
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Devnet.BlockTime = "250ms"
	blockTime, err := cfg.GetBlockTime()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, blockTime)
}
