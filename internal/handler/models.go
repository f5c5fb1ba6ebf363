package handler

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// CreateCampaignRequest 创建项目请求
type CreateCampaignRequest struct {
	Owner  string `json:"owner" binding:"required"`
	Goal   string `json:"goal" binding:"required"` // wei 十进制串
	Name   string `json:"name" binding:"required"`
	Symbol string `json:"symbol" binding:"required"`
}

// ContributeRequest 贡献请求
type ContributeRequest struct {
	Contributor string `json:"contributor" binding:"required"`
	Amount      string `json:"amount" binding:"required"` // wei 十进制串
}

// CancelRequest 取消请求
type CancelRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// WithdrawRequest 提现请求
type WithdrawRequest struct {
	Caller string `json:"caller" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"` // wei 十进制串
}

// RefundRequest 退款请求
type RefundRequest struct {
	Caller string `json:"caller" binding:"required"`
	To     string `json:"to"` // 为空时退回调用者本人
}

// ClaimRequest 奖励领取请求
type ClaimRequest struct {
	Claimer string `json:"claimer" binding:"required"`
	To      string `json:"to"` // 为空时发放给调用者本人
}
