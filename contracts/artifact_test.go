package contracts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testArtifact = `{
	"contractName": "Counter",
	"abi": [
		{"inputs": [], "name": "count", "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
	],
	"bytecode": "0x600a600c600039600a6000f3602a60005260206000f3",
	"deployedBytecode": "0x602a60005260206000f3"
}`

func TestArtifact_DecodeBundledLottery(t *testing.T) {
	t.Parallel()

	registry, err := DefaultRegistry()
	require.NoError(t, err)

	lottery, err := registry.Get(LotteryName)
	require.NoError(t, err)

	assert.Equal(t, LotteryName, lottery.Name)
	require.NotNil(t, lottery.Abi.GetMethod("retrieve"))
	require.NotNil(t, lottery.Abi.GetMethod("store"))

	assert.Equal(t, []byte{0x2e, 0x64, 0xce, 0xc1}, lottery.Abi.GetMethod("retrieve").ID())
	assert.Equal(t, []byte{0x60, 0x57, 0x36, 0x1d}, lottery.Abi.GetMethod("store").ID())

	// creation code ends with the runtime code it copies into the account
	require.NotEmpty(t, lottery.DeployedBytecode)
	assert.Equal(t, lottery.DeployedBytecode, lottery.Bytecode[len(lottery.Bytecode)-len(lottery.DeployedBytecode):])
}

func TestArtifact_DecodeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "{"},
		{"no abi", `{"contractName": "X", "bytecode": "0x00"}`},
		{"bad bytecode", `{"contractName": "X", "abi": [], "bytecode": "0xzz"}`},
		{"empty bytecode", `{"contractName": "X", "abi": [], "bytecode": "0x"}`},
		{"bad deployed bytecode", `{"contractName": "X", "abi": [], "bytecode": "0x00", "deployedBytecode": "0x0"}`},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeArtifact([]byte(c.raw))
			require.Error(t, err)
		})
	}
}

func TestArtifact_LoadFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Counter.json"), []byte(testArtifact), 0600))

	artifact, err := LoadArtifactFromFile(filepath.Join(dir, "Counter.json"))
	require.NoError(t, err)
	assert.Equal(t, "Counter", artifact.Name)
	assert.NotNil(t, artifact.Abi.GetMethod("count"))

	_, err = LoadArtifactFromFile(filepath.Join(dir, "Missing.json"))
	require.Error(t, err)
}

func TestArtifact_DecodeFoundry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Counter.json"), []byte(`{
		"abi": [
			{"inputs": [], "name": "count", "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
		],
		"bytecode": {"object": "0x600a600c600039600a6000f3602a60005260206000f3"},
		"deployedBytecode": {"object": "0x602a60005260206000f3"}
	}`), 0600))

	registry := NewRegistry()
	require.NoError(t, registry.LoadDir(dir))

	artifact, err := registry.Get("Counter")
	require.NoError(t, err)

	assert.Equal(t, "Counter", artifact.Name)
	assert.Equal(t, []byte{0x60, 0x2a, 0x60, 0x00, 0x52, 0x60, 0x20, 0x60, 0x00, 0xf3}, artifact.DeployedBytecode)
	assert.Len(t, artifact.Bytecode, 22)
}

func TestRegistry_LoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Counter.json"), []byte(testArtifact), 0600))

	registry, err := DefaultRegistry()
	require.NoError(t, err)
	require.NoError(t, registry.LoadDir(dir))

	assert.Equal(t, []string{"Counter", LotteryName}, registry.Names())

	_, err = registry.Get("Unknown")
	require.ErrorIs(t, err, ErrArtifactNotFound)
}
