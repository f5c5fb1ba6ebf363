package scheduler

import (
	"math/big"
	"time"

	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/logger"
	"github.com/blues/cls/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// LedgerAuditJob 账本审计任务。
// 校验每个项目的快照字段与流水表是否一致：
//   - 累计筹集 = 贡献流水之和
//   - 持有资金 = 累计筹集 - 提现流水之和 - 退款流水之和
//   - 持有资金 ≤ 累计筹集
type LedgerAuditJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewLedgerAuditJob 创建账本审计任务
func NewLedgerAuditJob(db *gorm.DB, cfg *config.Config) *LedgerAuditJob {
	return &LedgerAuditJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *LedgerAuditJob) GetName() string {
	return "ledger_auditor"
}

// GetSchedule 获取调度配置
func (j *LedgerAuditJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.AuditInterval) * time.Second)
}

// Execute 执行任务
func (j *LedgerAuditJob) Execute() {
	logger.Info("Starting ledger audit task")

	var campaigns []model.CampaignModel
	if err := j.db.Find(&campaigns).Error; err != nil {
		logger.Error("Failed to fetch campaigns for audit: %v", err)
		return
	}

	violations := 0
	for i := range campaigns {
		if !j.audit(&campaigns[i]) {
			violations++
		}
	}

	logger.Info("Ledger audit finished: %d campaigns checked, %d violations", len(campaigns), violations)
}

// audit 审计单个项目，返回是否通过
func (j *LedgerAuditJob) audit(campaignModel *model.CampaignModel) bool {
	contributed := j.sumFlow("contribute_record", campaignModel.Id)
	withdrawn := j.sumFlow("withdraw_record", campaignModel.Id)
	refunded := j.sumFlow("refund_record", campaignModel.Id)
	if contributed == nil || withdrawn == nil || refunded == nil {
		return false
	}

	total, ok := new(big.Int).SetString(campaignModel.TotalContributed, 10)
	if !ok {
		logger.Error("Audit: campaign %d has malformed total_contributed %q", campaignModel.Id, campaignModel.TotalContributed)
		return false
	}
	funds, ok := new(big.Int).SetString(campaignModel.CurrentFunds, 10)
	if !ok {
		logger.Error("Audit: campaign %d has malformed current_funds %q", campaignModel.Id, campaignModel.CurrentFunds)
		return false
	}

	passed := true

	if total.Cmp(contributed) != 0 {
		logger.Error("Audit: campaign %d total_contributed %s != contribute flow sum %s",
			campaignModel.Id, total.String(), contributed.String())
		passed = false
	}

	expectedFunds := new(big.Int).Sub(total, withdrawn)
	expectedFunds.Sub(expectedFunds, refunded)
	if funds.Cmp(expectedFunds) != 0 {
		logger.Error("Audit: campaign %d current_funds %s != expected %s",
			campaignModel.Id, funds.String(), expectedFunds.String())
		passed = false
	}

	if funds.Cmp(total) > 0 {
		logger.Error("Audit: campaign %d current_funds %s exceeds total_contributed %s",
			campaignModel.Id, funds.String(), total.String())
		passed = false
	}

	return passed
}

// sumFlow 汇总某流水表的金额
func (j *LedgerAuditJob) sumFlow(table string, campaignId int64) *big.Int {
	var sum string
	err := j.db.Table(table).
		Where("campaign_id = ?", campaignId).
		Select("COALESCE(SUM(amount), 0)::text").
		Scan(&sum).Error
	if err != nil {
		logger.Error("Audit: failed to sum %s for campaign %d: %v", table, campaignId, err)
		return nil
	}

	value, ok := new(big.Int).SetString(sum, 10)
	if !ok {
		logger.Error("Audit: malformed sum %q from %s for campaign %d", sum, table, campaignId)
		return nil
	}
	return value
}
