package scheduler

import (
	"time"

	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/logger"
	"github.com/blues/cls/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ExpiryReportJob 过期巡检任务。
// 状态不入库，这里只按推导条件筛出已过期且仍持有可退资金的项目并记录，
// 供运营方提醒贡献者申请退款。
type ExpiryReportJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewExpiryReportJob 创建过期巡检任务
func NewExpiryReportJob(db *gorm.DB, cfg *config.Config) *ExpiryReportJob {
	return &ExpiryReportJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ExpiryReportJob) GetName() string {
	return "expiry_reporter"
}

// GetSchedule 获取调度配置
func (j *ExpiryReportJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.ExpiryInterval) * time.Second)
}

// Execute 执行任务
func (j *ExpiryReportJob) Execute() {
	logger.Info("Starting expiry report task")

	now := time.Now()

	// 过期 = 未取消、未达标、已过截止时间
	var campaigns []model.CampaignModel
	err := j.db.Where("cancelled = ?", false).
		Where("total_contributed::numeric < goal::numeric").
		Where("deadline <= ?", now).
		Where("current_funds::numeric > 0").
		Find(&campaigns).Error
	if err != nil {
		logger.Error("Failed to fetch expired campaigns: %v", err)
		return
	}

	for i := range campaigns {
		logger.Warn("Campaign %d (%s) expired with %s wei still refundable",
			campaigns[i].Id, campaigns[i].Name, campaigns[i].CurrentFunds)
	}

	logger.Info("Expiry report finished: %d expired campaigns holding funds", len(campaigns))
}
