package campaign

import "errors"

// 预定义业务错误
var (
	ErrNotOwner                  = errors.New("只有项目所有者可以执行此操作")
	ErrNotAcceptingContributions = errors.New("项目不在进行中，无法接受贡献")
	ErrContributionTooSmall      = errors.New("贡献金额低于最小限制")
	ErrCannotCancel              = errors.New("项目当前状态不允许取消")
	ErrCannotWithdraw            = errors.New("项目当前状态不允许提现")
	ErrInsufficientFunds         = errors.New("提现金额超过项目当前持有资金")
	ErrCannotRefund              = errors.New("项目当前状态不允许退款或无可退金额")
	ErrNothingToClaim            = errors.New("没有可领取的奖励代币")
	ErrTransferFailed            = errors.New("外部转账失败")
)

// ErrorKind 错误分类
type ErrorKind string

const (
	KindUnauthorized   ErrorKind = "unauthorized"    // 调用者无权执行
	KindInvalidState   ErrorKind = "invalid_state"   // 状态不允许该操作
	KindInvalidAmount  ErrorKind = "invalid_amount"  // 金额不合法
	KindNothingToClaim ErrorKind = "nothing_to_claim" // 无可领取
	KindTransferFailed ErrorKind = "transfer_failed" // 外部转账失败
	KindUnknown        ErrorKind = "unknown"
)

// KindOf 返回错误所属的分类
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotOwner):
		return KindUnauthorized
	case errors.Is(err, ErrNotAcceptingContributions),
		errors.Is(err, ErrCannotCancel),
		errors.Is(err, ErrCannotWithdraw),
		errors.Is(err, ErrCannotRefund):
		return KindInvalidState
	case errors.Is(err, ErrContributionTooSmall),
		errors.Is(err, ErrInsufficientFunds):
		return KindInvalidAmount
	case errors.Is(err, ErrNothingToClaim):
		return KindNothingToClaim
	case errors.Is(err, ErrTransferFailed):
		return KindTransferFailed
	default:
		return KindUnknown
	}
}
