package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/umbracle/ethgo/abi"

	"github.com/0xPolygon/lottery-harness/helper/hex"
)

var errEmptyBytecode = errors.New("artifact has no creation bytecode")

// Artifact is a compiled contract: its ABI, the creation code sent on deployment
// and the runtime code left at the contract address
type Artifact struct {
	Name             string
	Abi              *abi.ABI
	Bytecode         []byte
	DeployedBytecode []byte
}

// rawArtifact is the JSON layout shared by hardhat and foundry artifacts.
// Hardhat stores the bytecode as a hex string, foundry wraps it in an object.
type rawArtifact struct {
	ContractName     string   `json:"contractName"`
	Abi              *abi.ABI `json:"abi"`
	Bytecode         bytecode `json:"bytecode"`
	DeployedBytecode bytecode `json:"deployedBytecode"`
}

type bytecode []byte

func (b *bytecode) UnmarshalJSON(data []byte) error {
	var raw string

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		var obj struct {
			Object string `json:"object"`
		}

		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}

		raw = obj.Object
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	buf, err := hex.DecodeHex(raw)
	if err != nil {
		return err
	}

	*b = buf

	return nil
}

// DecodeArtifact decodes a hardhat or foundry artifact.
// Foundry artifacts carry no contract name, it is filled in on registration.
func DecodeArtifact(data []byte) (*Artifact, error) {
	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed artifact: %w", err)
	}

	if raw.Abi == nil {
		return nil, fmt.Errorf("artifact '%s' has no abi", raw.ContractName)
	}

	if len(raw.Bytecode) == 0 {
		return nil, fmt.Errorf("artifact '%s': %w", raw.ContractName, errEmptyBytecode)
	}

	return &Artifact{
		Name:             raw.ContractName,
		Abi:              raw.Abi,
		Bytecode:         raw.Bytecode,
		DeployedBytecode: raw.DeployedBytecode,
	}, nil
}

// LoadArtifactFromFile reads and decodes the artifact stored in the given file
func LoadArtifactFromFile(fileName string) (*Artifact, error) {
	data, err := os.ReadFile(filepath.Clean(fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact from file '%s': %w", fileName, err)
	}

	artifact, err := DecodeArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	return artifact, nil
}
