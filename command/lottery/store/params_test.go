package store

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreParams_ValidateFlags(t *testing.T) {
	t.Parallel()

	p := &storeParams{rawValue: "0x38"}
	require.NoError(t, p.validateFlags())
	assert.Equal(t, big.NewInt(56), p.value)

	p = &storeParams{}
	require.ErrorIs(t, p.validateFlags(), errNoValue)

	p = &storeParams{rawValue: "-5"}
	require.ErrorContains(t, p.validateFlags(), "out of uint256 range")

	p = &storeParams{rawValue: "56", address: "0x01"}
	require.ErrorContains(t, p.validateFlags(), "invalid address")
}
