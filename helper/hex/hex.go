package hex

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// EncodeToHex generates a hex string based on the byte representation, with the '0x' prefix
func EncodeToHex(str []byte) string {
	return "0x" + hex.EncodeToString(str)
}

// DecodeHex converts a hex string (with or without the '0x' prefix) to a byte array
func DecodeHex(str string) ([]byte, error) {
	str = strings.TrimPrefix(strings.TrimSpace(str), "0x")

	return hex.DecodeString(str)
}

// EncodeBig encodes bigint as a hex string with 0x prefix.
// The sign of the integer is ignored.
func EncodeBig(bigint *big.Int) string {
	if bigint.BitLen() == 0 {
		return "0x0"
	}

	return fmt.Sprintf("%#x", new(big.Int).Abs(bigint))
}

// ParseUint256 parses a non-negative decimal or 0x-prefixed hex number
// that fits into 256 bits
func ParseUint256(raw string) (*big.Int, error) {
	raw = strings.TrimSpace(raw)

	base := 10
	if strings.HasPrefix(raw, "0x") {
		raw, base = raw[2:], 16
	}

	num, ok := new(big.Int).SetString(raw, base)
	if !ok {
		return nil, fmt.Errorf("invalid number: '%s'", raw)
	}

	if num.Sign() < 0 || num.BitLen() > 256 {
		return nil, fmt.Errorf("number out of uint256 range: %s", num)
	}

	return num, nil
}
