package campaign

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// 众筹周期与奖励单位常量
const (
	// Timeline 众筹周期，截止时间 = 创建时间 + Timeline
	Timeline = 30 * 24 * time.Hour
)

var (
	// OneUnit 一个完整奖励单位（1e18，即 1 ETH）
	OneUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	// MinContribution 最小贡献金额（0.01 个单位）
	MinContribution = new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil)
)

// Status 项目状态，始终从字段推导，从不单独存储
type Status string

const (
	StatusActive    Status = "active"    // 进行中
	StatusCancelled Status = "cancelled" // 已取消
	StatusExpired   Status = "expired"   // 已过期
	StatusCompleted Status = "completed" // 已达标
)

// Transferor 外部价值转移能力
type Transferor interface {
	TransferValue(to common.Address, amount *big.Int) error
}

// Minter 外部NFT铸造能力，对于全新的tokenId约定不会失败
type Minter interface {
	Mint(owner common.Address, tokenID uint64) error
}

// Record 单个贡献者的账本记录
type Record struct {
	AmountContributed *big.Int // 累计贡献金额，只增不减（退款时清零）
	TokensClaimed     uint64   // 已发放的奖励代币数量
}

// Campaign 众筹项目账本
type Campaign struct {
	owner    common.Address
	goal     *big.Int
	deadline time.Time
	name     string
	symbol   string

	cancelled        bool
	totalContributed *big.Int // 历史累计筹集，只增不减
	currentFunds     *big.Int // 当前持有资金，提现/退款时扣减
	nextTokenID      uint64
	records          map[common.Address]*Record

	transferor Transferor
	minter     Minter
	recorder   Recorder

	nowFn func() time.Time
}

// New 创建众筹项目账本
func New(owner common.Address, goal *big.Int, name, symbol string, transferor Transferor, minter Minter, recorder Recorder) *Campaign {
	now := time.Now()
	return &Campaign{
		owner:            owner,
		goal:             new(big.Int).Set(goal),
		deadline:         now.Add(Timeline),
		name:             name,
		symbol:           symbol,
		totalContributed: new(big.Int),
		currentFunds:     new(big.Int),
		nextTokenID:      1,
		records:          make(map[common.Address]*Record),
		transferor:       transferor,
		minter:           minter,
		recorder:         recorder,
		nowFn:            time.Now,
	}
}

// SetNowFunc 注入时钟，用于测试和状态回放
func (c *Campaign) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		c.nowFn = fn
	}
}

// Status 推导当前项目状态。
// 判断顺序是有意为之：取消优先于达标，达标优先于过期，
// 保证已取消项目不会报告达标/过期，且在截止时刻达标的项目仍视为达标。
func (c *Campaign) Status() Status {
	switch {
	case c.cancelled:
		return StatusCancelled
	case c.totalContributed.Cmp(c.goal) >= 0:
		return StatusCompleted
	case !c.nowFn().Before(c.deadline):
		return StatusExpired
	default:
		return StatusActive
	}
}

// Contribute 接受一笔贡献
func (c *Campaign) Contribute(contributor common.Address, amount *big.Int) error {
	if c.Status() != StatusActive {
		return ErrNotAcceptingContributions
	}
	if amount.Cmp(MinContribution) < 0 {
		return ErrContributionTooSmall
	}

	rec := c.record(contributor)
	rec.AmountContributed.Add(rec.AmountContributed, amount)
	c.totalContributed.Add(c.totalContributed, amount)
	c.currentFunds.Add(c.currentFunds, amount)

	c.emit(ContributedEvent{Contributor: contributor, Amount: new(big.Int).Set(amount)})
	return nil
}

// Cancel 取消项目，仅所有者可调用，不可逆
func (c *Campaign) Cancel(caller common.Address) error {
	if caller != c.owner {
		return ErrNotOwner
	}
	if c.Status() != StatusActive {
		return ErrCannotCancel
	}

	c.cancelled = true

	c.emit(CancelledEvent{})
	return nil
}

// Withdraw 所有者提现，仅在达标状态下允许。
// 先扣减再转账，转账失败时回滚扣减，保证扣减与转账作为一个原子单元。
func (c *Campaign) Withdraw(caller, to common.Address, amount *big.Int) error {
	if caller != c.owner {
		return ErrNotOwner
	}
	if c.Status() != StatusCompleted {
		return ErrCannotWithdraw
	}
	if amount.Cmp(c.currentFunds) > 0 {
		return ErrInsufficientFunds
	}

	c.currentFunds.Sub(c.currentFunds, amount)

	if err := c.transferor.TransferValue(to, amount); err != nil {
		c.currentFunds.Add(c.currentFunds, amount)
		return wrapTransfer(err)
	}

	c.emit(WithdrawnEvent{To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// Refund 退还贡献者的全部贡献，仅在过期或已取消状态下允许。
// 先清零再转账，转账失败时恢复记录，资金仍可再次申请退款。
func (c *Campaign) Refund(caller, to common.Address) error {
	status := c.Status()
	if status != StatusExpired && status != StatusCancelled {
		return ErrCannotRefund
	}

	rec, ok := c.records[caller]
	if !ok || rec.AmountContributed.Sign() == 0 {
		return ErrCannotRefund
	}

	amount := rec.AmountContributed
	rec.AmountContributed = new(big.Int)
	c.currentFunds.Sub(c.currentFunds, amount)

	if err := c.transferor.TransferValue(to, amount); err != nil {
		rec.AmountContributed = amount
		c.currentFunds.Add(c.currentFunds, amount)
		return wrapTransfer(err)
	}

	c.emit(RefundedEvent{Contributor: caller, Amount: amount})
	return nil
}

// Owner 项目所有者
func (c *Campaign) Owner() common.Address { return c.owner }

// Goal 目标金额
func (c *Campaign) Goal() *big.Int { return new(big.Int).Set(c.goal) }

// Deadline 截止时间
func (c *Campaign) Deadline() time.Time { return c.deadline }

// Name 传递给代币能力的名称
func (c *Campaign) Name() string { return c.name }

// Symbol 传递给代币能力的符号
func (c *Campaign) Symbol() string { return c.symbol }

// TotalContributed 历史累计筹集金额
func (c *Campaign) TotalContributed() *big.Int { return new(big.Int).Set(c.totalContributed) }

// CurrentFunds 当前持有资金
func (c *Campaign) CurrentFunds() *big.Int { return new(big.Int).Set(c.currentFunds) }

// AmountContributed 某贡献者的累计贡献金额
func (c *Campaign) AmountContributed(contributor common.Address) *big.Int {
	if rec, ok := c.records[contributor]; ok {
		return new(big.Int).Set(rec.AmountContributed)
	}
	return new(big.Int)
}

// TokensClaimed 某贡献者已领取的奖励代币数量
func (c *Campaign) TokensClaimed(contributor common.Address) uint64 {
	if rec, ok := c.records[contributor]; ok {
		return rec.TokensClaimed
	}
	return 0
}

// record 惰性创建贡献记录
func (c *Campaign) record(contributor common.Address) *Record {
	rec, ok := c.records[contributor]
	if !ok {
		rec = &Record{AmountContributed: new(big.Int)}
		c.records[contributor] = rec
	}
	return rec
}

func (c *Campaign) emit(event Event) {
	if c.recorder != nil {
		c.recorder.Record(event)
	}
}

func wrapTransfer(err error) error {
	return &transferError{cause: err}
}

// transferError 包装外部转账失败的原因
type transferError struct {
	cause error
}

func (e *transferError) Error() string { return ErrTransferFailed.Error() + ": " + e.cause.Error() }
func (e *transferError) Is(target error) bool {
	return target == ErrTransferFailed
}
func (e *transferError) Unwrap() error { return e.cause }
