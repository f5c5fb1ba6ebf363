package logic

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/blues/cls/internal/campaign"
	"github.com/blues/cls/internal/event"
	"github.com/blues/cls/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// CampaignLogic 众筹项目业务逻辑。
// 核心账本规则全部在 campaign 包内，这一层负责加载快照、
// 在事务内执行操作、持久化结果，并保证同一项目的操作串行执行。
type CampaignLogic struct {
	db         *gorm.DB
	dispatcher *event.Dispatcher
	transferor campaign.Transferor
	minter     campaign.Minter

	locks sync.Map // campaignId -> *sync.Mutex
}

// NewCampaignLogic 创建项目业务逻辑
func NewCampaignLogic(db *gorm.DB, dispatcher *event.Dispatcher, transferor campaign.Transferor, minter campaign.Minter) *CampaignLogic {
	return &CampaignLogic{
		db:         db,
		dispatcher: dispatcher,
		transferor: transferor,
		minter:     minter,
	}
}

// CreateCampaign 创建众筹项目
func (l *CampaignLogic) CreateCampaign(owner common.Address, goal *big.Int, name, symbol string) (*model.CampaignModel, error) {
	if goal == nil || goal.Sign() <= 0 {
		return nil, errors.New("目标金额必须大于0")
	}
	if name == "" || symbol == "" {
		return nil, errors.New("项目名称和符号不能为空")
	}

	campaignModel := model.CampaignModel{
		Name:             name,
		Symbol:           symbol,
		OwnerAddress:     owner.Hex(),
		Goal:             goal.String(),
		Deadline:         time.Now().Add(campaign.Timeline),
		TotalContributed: "0",
		CurrentFunds:     "0",
		NextTokenId:      1,
	}
	if err := l.db.Create(&campaignModel).Error; err != nil {
		return nil, fmt.Errorf("创建项目失败: %w", err)
	}

	return &campaignModel, nil
}

// Contribute 接受一笔贡献
func (l *CampaignLogic) Contribute(campaignId int64, contributor common.Address, amount *big.Int) error {
	return l.withCampaign(campaignId, func(tx *gorm.DB, c *campaign.Campaign) error {
		if err := c.Contribute(contributor, amount); err != nil {
			return err
		}

		record := model.ContributeRecordModel{
			CampaignId: campaignId,
			Address:    contributor.Hex(),
			Amount:     amount.String(),
		}
		return tx.Create(&record).Error
	})
}

// Cancel 取消项目
func (l *CampaignLogic) Cancel(campaignId int64, caller common.Address) error {
	return l.withCampaign(campaignId, func(tx *gorm.DB, c *campaign.Campaign) error {
		return c.Cancel(caller)
	})
}

// Withdraw 所有者提现
func (l *CampaignLogic) Withdraw(campaignId int64, caller, to common.Address, amount *big.Int) error {
	return l.withCampaign(campaignId, func(tx *gorm.DB, c *campaign.Campaign) error {
		if err := c.Withdraw(caller, to, amount); err != nil {
			return err
		}

		record := model.WithdrawRecordModel{
			CampaignId: campaignId,
			ToAddress:  to.Hex(),
			Amount:     amount.String(),
		}
		return tx.Create(&record).Error
	})
}

// Refund 退款
func (l *CampaignLogic) Refund(campaignId int64, caller, to common.Address) error {
	return l.withCampaign(campaignId, func(tx *gorm.DB, c *campaign.Campaign) error {
		amount := c.AmountContributed(caller)
		if err := c.Refund(caller, to); err != nil {
			return err
		}

		record := model.RefundRecordModel{
			CampaignId: campaignId,
			Address:    caller.Hex(),
			ToAddress:  to.Hex(),
			Amount:     amount.String(),
		}
		return tx.Create(&record).Error
	})
}

// Claim 领取奖励代币
func (l *CampaignLogic) Claim(campaignId int64, claimer, to common.Address) error {
	return l.withCampaign(campaignId, func(tx *gorm.DB, c *campaign.Campaign) error {
		firstId := c.NextTokenID()
		owedBefore := c.Owed(claimer)
		if err := c.Claim(claimer, to); err != nil {
			return err
		}

		record := model.ClaimRecordModel{
			CampaignId:   campaignId,
			Address:      claimer.Hex(),
			ToAddress:    to.Hex(),
			TokenCount:   owedBefore,
			FirstTokenId: firstId,
			LastTokenId:  firstId + owedBefore - 1,
		}
		return tx.Create(&record).Error
	})
}

// withCampaign 加载项目账本，在事务内执行操作并持久化快照。
// 同一项目的操作由互斥锁串行化，核心账本因此无需自己加锁。
func (l *CampaignLogic) withCampaign(campaignId int64, fn func(tx *gorm.DB, c *campaign.Campaign) error) error {
	mu := l.lockFor(campaignId)
	mu.Lock()
	defer mu.Unlock()

	tx := l.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	c, err := l.load(tx, campaignId)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := fn(tx, c); err != nil {
		tx.Rollback()
		return err
	}

	if err := l.persist(tx, campaignId, c.Snapshot()); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// lockFor 获取项目互斥锁
func (l *CampaignLogic) lockFor(campaignId int64) *sync.Mutex {
	mu, _ := l.locks.LoadOrStore(campaignId, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// load 从数据库加载项目并重建核心账本
func (l *CampaignLogic) load(tx *gorm.DB, campaignId int64) (*campaign.Campaign, error) {
	var campaignModel model.CampaignModel
	if err := tx.First(&campaignModel, campaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("获取项目失败: %w", err)
	}

	var contributions []model.ContributionModel
	if err := tx.Where("campaign_id = ?", campaignId).Find(&contributions).Error; err != nil {
		return nil, fmt.Errorf("获取贡献记录失败: %w", err)
	}

	snap, err := toSnapshot(&campaignModel, contributions)
	if err != nil {
		return nil, err
	}

	return campaign.Restore(snap, l.transferor, l.minter, l.dispatcher.ForCampaign(campaignId)), nil
}

// persist 将账本快照写回数据库
func (l *CampaignLogic) persist(tx *gorm.DB, campaignId int64, snap campaign.Snapshot) error {
	updates := map[string]interface{}{
		"cancelled":         snap.Cancelled,
		"total_contributed": snap.TotalContributed.String(),
		"current_funds":     snap.CurrentFunds.String(),
		"next_token_id":     snap.NextTokenID,
	}
	if err := tx.Model(&model.CampaignModel{}).Where("id = ?", campaignId).Updates(updates).Error; err != nil {
		return fmt.Errorf("更新项目快照失败: %w", err)
	}

	for addr, rec := range snap.Records {
		contribution := model.ContributionModel{
			CampaignId:        campaignId,
			Address:           addr.Hex(),
			AmountContributed: rec.AmountContributed.String(),
			TokensClaimed:     rec.TokensClaimed,
		}
		err := tx.Where("campaign_id = ? AND address = ?", campaignId, addr.Hex()).
			Assign(map[string]interface{}{
				"amount_contributed": rec.AmountContributed.String(),
				"tokens_claimed":     rec.TokensClaimed,
			}).
			FirstOrCreate(&contribution).Error
		if err != nil {
			return fmt.Errorf("更新贡献记录失败: %w", err)
		}
	}

	return nil
}

// toSnapshot 将数据库模型转换为核心账本快照
func toSnapshot(campaignModel *model.CampaignModel, contributions []model.ContributionModel) (campaign.Snapshot, error) {
	goal, err := parseAmount(campaignModel.Goal)
	if err != nil {
		return campaign.Snapshot{}, fmt.Errorf("项目目标金额非法: %w", err)
	}
	total, err := parseAmount(campaignModel.TotalContributed)
	if err != nil {
		return campaign.Snapshot{}, fmt.Errorf("项目累计金额非法: %w", err)
	}
	funds, err := parseAmount(campaignModel.CurrentFunds)
	if err != nil {
		return campaign.Snapshot{}, fmt.Errorf("项目持有资金非法: %w", err)
	}

	records := make(map[common.Address]campaign.Record, len(contributions))
	for _, contribution := range contributions {
		amount, err := parseAmount(contribution.AmountContributed)
		if err != nil {
			return campaign.Snapshot{}, fmt.Errorf("贡献金额非法: %w", err)
		}
		records[common.HexToAddress(contribution.Address)] = campaign.Record{
			AmountContributed: amount,
			TokensClaimed:     contribution.TokensClaimed,
		}
	}

	return campaign.Snapshot{
		Owner:            common.HexToAddress(campaignModel.OwnerAddress),
		Goal:             goal,
		Deadline:         campaignModel.Deadline,
		Name:             campaignModel.Name,
		Symbol:           campaignModel.Symbol,
		Cancelled:        campaignModel.Cancelled,
		TotalContributed: total,
		CurrentFunds:     funds,
		NextTokenID:      campaignModel.NextTokenId,
		Records:          records,
	}, nil
}

// parseAmount 解析 wei 十进制串
func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("无法解析金额 %q", s)
	}
	return amount, nil
}
