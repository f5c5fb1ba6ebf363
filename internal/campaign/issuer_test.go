package campaign

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimBelowOneUnit(t *testing.T) {
	f := newFixture(t, units(3))

	// 0.99 单位不足一个完整单位，无可领取
	require.NoError(t, f.campaign.Contribute(alice, centiUnits(99)))
	err := f.campaign.Claim(alice, alice)
	require.ErrorIs(t, err, ErrNothingToClaim)
	assert.Equal(t, KindNothingToClaim, KindOf(err))
	assert.Empty(t, f.minter.minted)

	// 补足到 1.0 单位后恰好可领取一枚
	require.NoError(t, f.campaign.Contribute(alice, centiUnits(1)))
	require.NoError(t, f.campaign.Claim(alice, alice))
	assert.Equal(t, []uint64{1}, f.minter.minted)
	assert.Equal(t, uint64(1), f.campaign.TokensClaimed(alice))
}

func TestClaimNeverContributed(t *testing.T) {
	f := newFixture(t, units(3))
	require.ErrorIs(t, f.campaign.Claim(alice, alice), ErrNothingToClaim)
}

func TestClaimMultipleUnitsInOneCall(t *testing.T) {
	f := newFixture(t, units(10))

	// 单笔 3.7 单位，一次领取发放全部 3 枚
	amount := new(big.Int).Add(units(3), centiUnits(70))
	require.NoError(t, f.campaign.Contribute(alice, amount))
	require.NoError(t, f.campaign.Claim(alice, alice))

	assert.Equal(t, []uint64{1, 2, 3}, f.minter.minted)
	assert.Equal(t, uint64(3), f.campaign.TokensClaimed(alice))
	assert.Equal(t, uint64(4), f.campaign.NextTokenID())
}

func TestClaimNoDoubleIssue(t *testing.T) {
	f := newFixture(t, units(10))

	require.NoError(t, f.campaign.Contribute(alice, units(2)))
	require.NoError(t, f.campaign.Claim(alice, alice))
	require.Equal(t, uint64(2), f.campaign.TokensClaimed(alice))

	// 无新贡献时再次领取必须失败，而不是静默发放零枚
	require.ErrorIs(t, f.campaign.Claim(alice, alice), ErrNothingToClaim)
	assert.Len(t, f.minter.minted, 2)

	// 新贡献产生新的欠付
	require.NoError(t, f.campaign.Contribute(alice, units(1)))
	require.NoError(t, f.campaign.Claim(alice, alice))
	assert.Equal(t, []uint64{1, 2, 3}, f.minter.minted)
	assert.Equal(t, f.campaign.Entitled(alice), f.campaign.TokensClaimed(alice))
}

func TestClaimToThirdParty(t *testing.T) {
	f := newFixture(t, units(10))

	require.NoError(t, f.campaign.Contribute(alice, units(1)))
	require.NoError(t, f.campaign.Claim(alice, beneficiary))

	// 代币归属 to，记账归属贡献者
	assert.Equal(t, beneficiary, f.minter.owners[1])
	assert.Equal(t, uint64(1), f.campaign.TokensClaimed(alice))
	assert.Equal(t, uint64(0), f.campaign.TokensClaimed(beneficiary))
}

func TestClaimInEveryStatus(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		f := newFixture(t, units(2))
		require.NoError(t, f.campaign.Contribute(alice, units(2)))
		require.Equal(t, StatusCompleted, f.campaign.Status())
		require.NoError(t, f.campaign.Claim(alice, alice))
		assert.Len(t, f.minter.minted, 2)
	})

	t.Run("expired", func(t *testing.T) {
		f := newFixture(t, units(10))
		require.NoError(t, f.campaign.Contribute(alice, units(1)))
		f.advance(Timeline)
		require.Equal(t, StatusExpired, f.campaign.Status())
		require.NoError(t, f.campaign.Claim(alice, alice))
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(t, units(10))
		require.NoError(t, f.campaign.Contribute(alice, units(1)))
		require.NoError(t, f.campaign.Cancel(owner))
		require.NoError(t, f.campaign.Claim(alice, alice))
	})
}

func TestClaimSequentialIDsAcrossContributors(t *testing.T) {
	f := newFixture(t, units(10))

	require.NoError(t, f.campaign.Contribute(alice, units(2)))
	require.NoError(t, f.campaign.Contribute(bob, units(1)))

	require.NoError(t, f.campaign.Claim(alice, alice))
	require.NoError(t, f.campaign.Claim(bob, bob))

	// ID 空间全局递增，永不复用
	assert.Equal(t, []uint64{1, 2, 3}, f.minter.minted)
	assert.Equal(t, alice, f.minter.owners[1])
	assert.Equal(t, alice, f.minter.owners[2])
	assert.Equal(t, bob, f.minter.owners[3])
}

func TestClaimMintFailureRollsBack(t *testing.T) {
	f := newFixture(t, units(10))
	require.NoError(t, f.campaign.Contribute(alice, units(3)))

	f.minter.failAfter = 2
	err := f.campaign.Claim(alice, alice)
	require.ErrorIs(t, err, ErrTransferFailed)

	// 记账与ID计数器均已回滚，领取可以整体重试
	assert.Equal(t, uint64(0), f.campaign.TokensClaimed(alice))
	assert.Equal(t, uint64(3), f.campaign.Owed(alice))

	f.minter.failAfter = 0
	require.NoError(t, f.campaign.Claim(alice, alice))
	assert.Equal(t, uint64(3), f.campaign.TokensClaimed(alice))
}

func TestClaimedEventCarriesOwedCount(t *testing.T) {
	f := newFixture(t, units(10))
	require.NoError(t, f.campaign.Contribute(alice, units(2)))
	require.NoError(t, f.campaign.Claim(alice, beneficiary))

	var claimed ClaimedEvent
	found := false
	for _, e := range f.recorder.events {
		if c, ok := e.(ClaimedEvent); ok {
			claimed = c
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, beneficiary, claimed.Claimer)
	assert.Equal(t, uint64(2), claimed.TokenCount)
}

func TestRefundDoesNotEraseClaimHistory(t *testing.T) {
	f := newFixture(t, units(10))
	require.NoError(t, f.campaign.Contribute(alice, units(2)))
	require.NoError(t, f.campaign.Claim(alice, alice))
	f.advance(Timeline)

	require.NoError(t, f.campaign.Refund(alice, alice))

	// 退款清零贡献额，但已领取计数保留，防止退款后重复领取
	assert.Equal(t, int64(0), f.campaign.AmountContributed(alice).Int64())
	assert.Equal(t, uint64(2), f.campaign.TokensClaimed(alice))
	require.ErrorIs(t, f.campaign.Claim(alice, alice), ErrNothingToClaim)
}
