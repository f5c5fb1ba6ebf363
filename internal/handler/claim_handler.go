package handler

import (
	"net/http"

	"github.com/blues/cls/internal/logic"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// ClaimHandler 奖励领取处理器
type ClaimHandler struct {
	campaignLogic *logic.CampaignLogic
}

// NewClaimHandler 创建奖励领取处理器
func NewClaimHandler(campaignLogic *logic.CampaignLogic) *ClaimHandler {
	return &ClaimHandler{
		campaignLogic: campaignLogic,
	}
}

// Claim 领取奖励代币
func (h *ClaimHandler) Claim(c *gin.Context) {
	campaignId, ok := parseCampaignId(c)
	if !ok {
		return
	}

	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	claimer, ok := parseAddress(req.Claimer)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的领取者地址")
		return
	}

	// 未指定接收地址时发放给领取者本人
	to := claimer
	if req.To != "" {
		var parsed common.Address
		if parsed, ok = parseAddress(req.To); !ok {
			ErrorResponse(c, http.StatusBadRequest, "无效的接收地址")
			return
		}
		to = parsed
	}

	if err := h.campaignLogic.Claim(campaignId, claimer, to); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "领取奖励成功", nil)
}
