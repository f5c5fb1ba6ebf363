package handler

import (
	"errors"
	"net/http"

	"github.com/blues/cls/internal/campaign"
	"github.com/blues/cls/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LedgerErrorResponse 按账本错误分类映射HTTP状态码
func LedgerErrorResponse(c *gin.Context, err error) {
	if errors.Is(err, logic.ErrCampaignNotFound) {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	switch campaign.KindOf(err) {
	case campaign.KindUnauthorized:
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case campaign.KindInvalidState, campaign.KindNothingToClaim:
		ErrorResponse(c, http.StatusConflict, err.Error())
	case campaign.KindInvalidAmount:
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case campaign.KindTransferFailed:
		ErrorResponse(c, http.StatusBadGateway, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
