package router

import (
	"github.com/blues/cls/internal/handler"
	"github.com/blues/cls/internal/logic"
	"github.com/gin-gonic/gin"
)

func Setup(campaignLogic *logic.CampaignLogic) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "campaign-ledger-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		campaignHandler := handler.NewCampaignHandler(campaignLogic)
		contributeHandler := handler.NewContributeHandler(campaignLogic)
		refundHandler := handler.NewRefundHandler(campaignLogic)
		claimHandler := handler.NewClaimHandler(campaignLogic)

		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.GET("/:id/status", campaignHandler.GetCampaignStatus)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
			campaigns.POST("/:id/contributions", contributeHandler.Contribute)
			campaigns.GET("/:id/contributions", contributeHandler.GetContributeRecords)
			campaigns.GET("/:id/contributions/:address", contributeHandler.GetContribution)
			campaigns.POST("/:id/cancel", campaignHandler.Cancel)
			campaigns.POST("/:id/withdrawals", campaignHandler.Withdraw)
			campaigns.POST("/:id/refunds", refundHandler.Refund)
			campaigns.POST("/:id/claims", claimHandler.Claim)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
