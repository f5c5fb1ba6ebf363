package token

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addr1 = common.HexToAddress("0x0000000000000000000000000000000000000001")
	addr2 = common.HexToAddress("0x0000000000000000000000000000000000000002")
)

func TestMemoryVaultAccumulates(t *testing.T) {
	vault := NewMemoryVault()

	require.NoError(t, vault.TransferValue(addr1, big.NewInt(100)))
	require.NoError(t, vault.TransferValue(addr1, big.NewInt(50)))
	require.NoError(t, vault.TransferValue(addr2, big.NewInt(7)))

	assert.Equal(t, big.NewInt(150), vault.BalanceOf(addr1))
	assert.Equal(t, big.NewInt(7), vault.BalanceOf(addr2))
	assert.Equal(t, int64(0), vault.BalanceOf(common.Address{}).Int64())
}

func TestMemoryBadgeRejectsReusedId(t *testing.T) {
	badge := NewMemoryBadge()

	require.NoError(t, badge.Mint(addr1, 1))
	require.NoError(t, badge.Mint(addr2, 2))

	// ID不允许复用
	require.Error(t, badge.Mint(addr2, 1))

	owner, ok := badge.OwnerOf(1)
	require.True(t, ok)
	assert.Equal(t, addr1, owner)
	assert.Equal(t, 2, badge.TotalMinted())

	_, ok = badge.OwnerOf(99)
	assert.False(t, ok)
}
