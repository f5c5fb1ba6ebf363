package model

import (
	"time"
)

// ContributionModel 每个贡献者在单个项目下的账本记录
type ContributionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId        int64  `json:"campaign_id" gorm:"not null;uniqueIndex:idx_campaign_address"`
	Address           string `json:"address" gorm:"not null;uniqueIndex:idx_campaign_address"`
	AmountContributed string `json:"amount_contributed" gorm:"type:numeric(78,0);default:0"`
	TokensClaimed     uint64 `json:"tokens_claimed" gorm:"default:0"`
}

// TableName 自定义表名
func (ContributionModel) TableName() string {
	return "contribution"
}
