package handler

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/blues/cls/internal/logic"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// CampaignHandler 项目处理器
type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
}

// NewCampaignHandler 创建项目处理器
func NewCampaignHandler(campaignLogic *logic.CampaignLogic) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: campaignLogic,
	}
}

// CreateCampaign 创建项目
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	owner, ok := parseAddress(req.Owner)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的所有者地址")
		return
	}
	goal, ok := parseAmountParam(req.Goal)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的目标金额")
		return
	}

	campaignModel, err := h.campaignLogic.CreateCampaign(owner, goal, req.Name, req.Symbol)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "创建项目成功", campaignModel)
}

// GetCampaigns 获取项目列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	views, err := h.campaignLogic.GetCampaigns()
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目列表成功", views)
}

// GetCampaign 获取项目详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignId, ok := parseCampaignId(c)
	if !ok {
		return
	}

	view, err := h.campaignLogic.GetCampaign(campaignId)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目详情成功", view)
}

// GetCampaignStatus 获取项目推导状态
func (h *CampaignHandler) GetCampaignStatus(c *gin.Context) {
	campaignId, ok := parseCampaignId(c)
	if !ok {
		return
	}

	status, err := h.campaignLogic.GetStatus(campaignId)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目状态成功", gin.H{"status": status})
}

// GetCampaignStats 获取项目统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	campaignId, ok := parseCampaignId(c)
	if !ok {
		return
	}

	stats, err := h.campaignLogic.GetCampaignStats(campaignId)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目统计信息成功", stats)
}

// Cancel 取消项目
func (h *CampaignHandler) Cancel(c *gin.Context) {
	campaignId, ok := parseCampaignId(c)
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := parseAddress(req.Caller)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的调用者地址")
		return
	}

	if err := h.campaignLogic.Cancel(campaignId, caller); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "取消项目成功", nil)
}

// Withdraw 所有者提现
func (h *CampaignHandler) Withdraw(c *gin.Context) {
	campaignId, ok := parseCampaignId(c)
	if !ok {
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := parseAddress(req.Caller)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的调用者地址")
		return
	}
	to, ok := parseAddress(req.To)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的收款地址")
		return
	}
	amount, ok := parseAmountParam(req.Amount)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的提现金额")
		return
	}

	if err := h.campaignLogic.Withdraw(campaignId, caller, to, amount); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "提现成功", nil)
}

// parseCampaignId 解析路径中的项目ID
func parseCampaignId(c *gin.Context) (int64, bool) {
	campaignId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || campaignId <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return 0, false
	}
	return campaignId, true
}

// parseAddress 解析并校验地址参数
func parseAddress(s string) (common.Address, bool) {
	if !common.IsHexAddress(s) {
		return common.Address{}, false
	}
	return common.HexToAddress(s), true
}

// parseAmountParam 解析 wei 十进制串参数，金额必须为正
func parseAmountParam(s string) (*big.Int, bool) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok || amount.Sign() <= 0 {
		return nil, false
	}
	return amount, true
}
