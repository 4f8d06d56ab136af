package deploy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/lottery-harness/contracts"
)

func TestDeployParams_ValidateFlags(t *testing.T) {
	t.Parallel()

	p := &deployParams{name: contracts.LotteryName}
	require.NoError(t, p.validateFlags())

	p = &deployParams{}
	require.ErrorIs(t, p.validateFlags(), errNoName)
}
