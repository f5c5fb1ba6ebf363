package campaign

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Claim 领取奖励代币。
// 每满一个 OneUnit 的累计贡献对应一枚代币，与项目成败无关，任何状态下均可领取。
// 记账先于铸造完成（checks-effects-interactions），外部铸造调用无法通过重入
// 观察到半更新状态；铸造失败时回滚记账，整个调用视为未发生。
func (c *Campaign) Claim(claimer, to common.Address) error {
	rec, ok := c.records[claimer]
	if !ok {
		return ErrNothingToClaim
	}

	// 退款清零贡献额后 entitled 可能小于已领取数，此时同样视为无可领取
	entitled := new(big.Int).Div(rec.AmountContributed, OneUnit).Uint64()
	if entitled <= rec.TokensClaimed {
		return ErrNothingToClaim
	}
	owed := entitled - rec.TokensClaimed

	prevClaimed := rec.TokensClaimed
	prevNextID := c.nextTokenID
	rec.TokensClaimed = entitled
	firstID := c.nextTokenID
	c.nextTokenID += owed

	c.emit(ClaimedEvent{Claimer: to, TokenCount: owed})

	// 一次调用发放全部欠付代币，ID连续且永不复用
	for i := uint64(0); i < owed; i++ {
		if err := c.minter.Mint(to, firstID+i); err != nil {
			rec.TokensClaimed = prevClaimed
			c.nextTokenID = prevNextID
			return wrapTransfer(err)
		}
	}

	return nil
}

// Entitled 某贡献者按累计贡献可获得的奖励代币总数
func (c *Campaign) Entitled(contributor common.Address) uint64 {
	if rec, ok := c.records[contributor]; ok {
		return new(big.Int).Div(rec.AmountContributed, OneUnit).Uint64()
	}
	return 0
}

// Owed 某贡献者当前未领取的奖励代币数量
func (c *Campaign) Owed(contributor common.Address) uint64 {
	entitled := c.Entitled(contributor)
	claimed := c.TokensClaimed(contributor)
	if entitled <= claimed {
		return 0
	}
	return entitled - claimed
}

// NextTokenID 下一个将被分配的代币ID
func (c *Campaign) NextTokenID() uint64 { return c.nextTokenID }
