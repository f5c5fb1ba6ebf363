package model

import (
	"time"
)

// ClaimRecordModel 奖励代币领取流水
type ClaimRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId   int64  `json:"campaign_id" gorm:"not null;index"`
	Address      string `json:"address" gorm:"not null;index"`
	ToAddress    string `json:"to_address" gorm:"not null"`
	TokenCount   uint64 `json:"token_count" gorm:"not null"`
	FirstTokenId uint64 `json:"first_token_id" gorm:"not null"`
	LastTokenId  uint64 `json:"last_token_id" gorm:"not null"`
}

// TableName 自定义表名
func (ClaimRecordModel) TableName() string {
	return "claim_record"
}
