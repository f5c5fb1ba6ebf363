package handler

import (
	"net/http"

	"github.com/blues/cls/internal/logic"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// RefundHandler 退款处理器
type RefundHandler struct {
	campaignLogic *logic.CampaignLogic
}

// NewRefundHandler 创建退款处理器
func NewRefundHandler(campaignLogic *logic.CampaignLogic) *RefundHandler {
	return &RefundHandler{
		campaignLogic: campaignLogic,
	}
}

// Refund 退款
func (h *RefundHandler) Refund(c *gin.Context) {
	campaignId, ok := parseCampaignId(c)
	if !ok {
		return
	}

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := parseAddress(req.Caller)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的调用者地址")
		return
	}

	// 未指定收款地址时退回调用者本人
	to := caller
	if req.To != "" {
		var parsed common.Address
		if parsed, ok = parseAddress(req.To); !ok {
			ErrorResponse(c, http.StatusBadRequest, "无效的收款地址")
			return
		}
		to = parsed
	}

	if err := h.campaignLogic.Refund(campaignId, caller, to); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款成功", nil)
}
