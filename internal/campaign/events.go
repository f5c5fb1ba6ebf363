package campaign

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// 事件类型
const (
	EventTypeContributed = "contributed"
	EventTypeClaimed     = "claimed"
	EventTypeWithdrawn   = "withdrawn"
	EventTypeCancelled   = "cancelled"
	EventTypeRefunded    = "refunded"
)

// Event 账本事件
type Event interface {
	EventType() string
}

// ContributedEvent 贡献事件
type ContributedEvent struct {
	Contributor common.Address `json:"contributor"`
	Amount      *big.Int       `json:"amount"`
}

func (e ContributedEvent) EventType() string { return EventTypeContributed }

// ClaimedEvent 奖励领取事件
type ClaimedEvent struct {
	Claimer    common.Address `json:"claimer"`
	TokenCount uint64         `json:"token_count"`
}

func (e ClaimedEvent) EventType() string { return EventTypeClaimed }

// WithdrawnEvent 提现事件
type WithdrawnEvent struct {
	To     common.Address `json:"to"`
	Amount *big.Int       `json:"amount"`
}

func (e WithdrawnEvent) EventType() string { return EventTypeWithdrawn }

// CancelledEvent 取消事件
type CancelledEvent struct{}

func (e CancelledEvent) EventType() string { return EventTypeCancelled }

// RefundedEvent 退款事件
type RefundedEvent struct {
	Contributor common.Address `json:"contributor"`
	Amount      *big.Int       `json:"amount"`
}

func (e RefundedEvent) EventType() string { return EventTypeRefunded }

// Recorder 事件记录器，供外部观察者（索引、持久化）使用
type Recorder interface {
	Record(event Event)
}
