package main

import (
	"github.com/blues/cls/internal/campaign"
	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/database"
	"github.com/blues/cls/internal/event"
	"github.com/blues/cls/internal/logger"
	"github.com/blues/cls/internal/logic"
	"github.com/blues/cls/internal/router"
	"github.com/blues/cls/internal/scheduler"
	"github.com/blues/cls/internal/token"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志器
	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithFileRotation(logger.ParseLogLevel(cfg.Log.Level), cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化资金转移与奖励铸造能力。
	// 未配置链时使用内存实现，便于本地开发。
	var transferor campaign.Transferor
	var minter campaign.Minter
	if cfg.Chain.RpcUrl != "" {
		chainClient, err := token.Init(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize chain client: %v", err)
		}
		transferor = chainClient
		minter = chainClient
	} else {
		logger.Warn("Chain RPC not configured, using in-memory vault and badge")
		transferor = token.NewMemoryVault()
		minter = token.NewMemoryBadge()
	}

	// 初始化事件分发器
	dispatcher, err := event.NewDispatcher(cfg.Event.PoolSize)
	if err != nil {
		logger.Fatal("Failed to initialize event dispatcher: %v", err)
	}
	dispatcher.RegisterProcessor(event.NewLogProcessor())
	dispatcher.RegisterProcessor(event.NewPersistProcessor(db))
	defer dispatcher.Release()

	// 初始化业务逻辑
	campaignLogic := logic.NewCampaignLogic(db, dispatcher, transferor, minter)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(campaignLogic)

	// 启动定时任务
	manager := scheduler.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
