package hex

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHex(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"0x6057361d", "6057361d", " 0x6057361d\n"} {
		decoded, err := DecodeHex(input)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x57, 0x36, 0x1d}, decoded)
	}

	_, err := DecodeHex("0xzz")
	require.Error(t, err)
}

func TestEncodeBig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0x0", EncodeBig(big.NewInt(0)))
	assert.Equal(t, "0x38", EncodeBig(big.NewInt(56)))
	assert.Equal(t, "0x38", EncodeBig(big.NewInt(-56)))
}

// TestParseUint256 verifies that decimal and hex inputs are accepted
// and that values outside of the uint256 domain are rejected
func TestParseUint256(t *testing.T) {
	t.Parallel()

	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	cases := []struct {
		name     string
		input    string
		expected *big.Int
		fails    bool
	}{
		{"decimal", "56", big.NewInt(56), false},
		{"hex", "0x38", big.NewInt(56), false},
		{"zero", "0", big.NewInt(0), false},
		{"max", "0x" + maxUint256.Text(16), maxUint256, false},
		{"overflow", "0x1" + maxUint256.Text(16), nil, true},
		{"negative", "-1", nil, true},
		{"garbage", "fifty-six", nil, true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			num, err := ParseUint256(c.input)
			if c.fails {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 0, c.expected.Cmp(num))
		})
	}
}
