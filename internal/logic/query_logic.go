package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/cls/internal/campaign"
	"github.com/blues/cls/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// weiPerUnit 每个完整单位的 wei 数，用于展示换算
var weiPerUnit = decimal.New(1, 18)

// CampaignView 项目详情视图，状态为推导值
type CampaignView struct {
	Campaign *model.CampaignModel `json:"campaign"`
	Status   campaign.Status      `json:"status"`
}

// ContributionView 贡献者账本视图
type ContributionView struct {
	Address           string `json:"address"`
	AmountContributed string `json:"amount_contributed"`
	AmountUnits       string `json:"amount_units"`
	TokensClaimed     uint64 `json:"tokens_claimed"`
	TokensOwed        uint64 `json:"tokens_owed"`
}

// GetCampaign 获取项目详情，附带推导状态
func (l *CampaignLogic) GetCampaign(campaignId int64) (*CampaignView, error) {
	var campaignModel model.CampaignModel
	if err := l.db.First(&campaignModel, campaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}

	status, err := l.deriveStatus(&campaignModel)
	if err != nil {
		return nil, err
	}

	return &CampaignView{Campaign: &campaignModel, Status: status}, nil
}

// GetCampaigns 获取项目列表
func (l *CampaignLogic) GetCampaigns() ([]CampaignView, error) {
	var campaigns []model.CampaignModel
	if err := l.db.Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("获取项目列表失败: %w", err)
	}

	views := make([]CampaignView, 0, len(campaigns))
	for i := range campaigns {
		status, err := l.deriveStatus(&campaigns[i])
		if err != nil {
			return nil, err
		}
		views = append(views, CampaignView{Campaign: &campaigns[i], Status: status})
	}
	return views, nil
}

// GetStatus 获取项目推导状态
func (l *CampaignLogic) GetStatus(campaignId int64) (campaign.Status, error) {
	view, err := l.GetCampaign(campaignId)
	if err != nil {
		return "", err
	}
	return view.Status, nil
}

// GetContribution 获取某贡献者在项目下的账本记录
func (l *CampaignLogic) GetContribution(campaignId int64, address common.Address) (*ContributionView, error) {
	c, err := l.load(l.db, campaignId)
	if err != nil {
		return nil, err
	}

	amount := c.AmountContributed(address)
	return &ContributionView{
		Address:           address.Hex(),
		AmountContributed: amount.String(),
		AmountUnits:       decimal.NewFromBigInt(amount, 0).Div(weiPerUnit).String(),
		TokensClaimed:     c.TokensClaimed(address),
		TokensOwed:        c.Owed(address),
	}, nil
}

// GetContributeRecords 获取项目贡献流水（分页）
func (l *CampaignLogic) GetContributeRecords(campaignId int64, page, pageSize int) ([]model.ContributeRecordModel, int64, error) {
	var records []model.ContributeRecordModel
	var total int64

	// 获取总数
	if err := l.db.Model(&model.ContributeRecordModel{}).Where("campaign_id = ?", campaignId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := l.db.Where("campaign_id = ?", campaignId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetCampaignStats 获取项目统计信息
func (l *CampaignLogic) GetCampaignStats(campaignId int64) (map[string]interface{}, error) {
	view, err := l.GetCampaign(campaignId)
	if err != nil {
		return nil, err
	}

	var stats struct {
		ContributorCount  int64 `json:"contributor_count"`
		ContributionCount int64 `json:"contribution_count"`
	}

	err = l.db.Raw(`
		SELECT
			COALESCE(COUNT(DISTINCT address), 0) as contributor_count,
			COALESCE(COUNT(*), 0) as contribution_count
		FROM contribute_record
		WHERE campaign_id = ?
	`, campaignId).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("获取项目统计信息失败: %w", err)
	}

	goal, _ := decimal.NewFromString(view.Campaign.Goal)
	total, _ := decimal.NewFromString(view.Campaign.TotalContributed)
	funds, _ := decimal.NewFromString(view.Campaign.CurrentFunds)

	// 计算完成百分比
	completionPercentage := decimal.Zero
	if goal.IsPositive() {
		completionPercentage = total.Div(goal).Mul(decimal.New(100, 0)).Round(2)
	}

	// 计算剩余时间
	remainingTime := time.Duration(0)
	if view.Status == campaign.StatusActive {
		remainingTime = time.Until(view.Campaign.Deadline)
	}

	return map[string]interface{}{
		"campaign_id":           campaignId,
		"status":                view.Status,
		"goal_units":            goal.Div(weiPerUnit).String(),
		"total_raised_units":    total.Div(weiPerUnit).String(),
		"current_funds_units":   funds.Div(weiPerUnit).String(),
		"completion_percentage": completionPercentage.String(),
		"contributor_count":     stats.ContributorCount,
		"contribution_count":    stats.ContributionCount,
		"remaining_time":        remainingTime.String(),
		"next_token_id":         view.Campaign.NextTokenId,
	}, nil
}

// deriveStatus 通过核心账本推导项目状态，状态永不入库
func (l *CampaignLogic) deriveStatus(campaignModel *model.CampaignModel) (campaign.Status, error) {
	snap, err := toSnapshot(campaignModel, nil)
	if err != nil {
		return "", err
	}
	return campaign.Restore(snap, l.transferor, l.minter, nil).Status(), nil
}
