package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cls/internal/logic"
	"github.com/gin-gonic/gin"
)

// ContributeHandler 贡献处理器
type ContributeHandler struct {
	campaignLogic *logic.CampaignLogic
}

// NewContributeHandler 创建贡献处理器
func NewContributeHandler(campaignLogic *logic.CampaignLogic) *ContributeHandler {
	return &ContributeHandler{
		campaignLogic: campaignLogic,
	}
}

// Contribute 接受一笔贡献
func (h *ContributeHandler) Contribute(c *gin.Context) {
	campaignId, ok := parseCampaignId(c)
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	contributor, ok := parseAddress(req.Contributor)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的贡献者地址")
		return
	}
	amount, ok := parseAmountParam(req.Amount)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的贡献金额")
		return
	}

	if err := h.campaignLogic.Contribute(campaignId, contributor, amount); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "贡献成功", nil)
}

// GetContribution 获取某贡献者的账本记录
func (h *ContributeHandler) GetContribution(c *gin.Context) {
	campaignId, ok := parseCampaignId(c)
	if !ok {
		return
	}

	address, ok := parseAddress(c.Param("address"))
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的贡献者地址")
		return
	}

	view, err := h.campaignLogic.GetContribution(campaignId, address)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取贡献记录成功", view)
}

// GetContributeRecords 获取项目贡献流水
func (h *ContributeHandler) GetContributeRecords(c *gin.Context) {
	campaignId, ok := parseCampaignId(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	records, total, err := h.campaignLogic.GetContributeRecords(campaignId, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	pagination := Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}

	SuccessResponse(c, http.StatusOK, "获取贡献流水成功", gin.H{
		"records":    records,
		"pagination": pagination,
	})
}
