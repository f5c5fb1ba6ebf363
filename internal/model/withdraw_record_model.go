package model

import (
	"time"
)

// WithdrawRecordModel 提现流水
type WithdrawRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	ToAddress  string `json:"to_address" gorm:"not null"`
	Amount     string `json:"amount" gorm:"type:numeric(78,0);not null"`
}

// TableName 自定义表名
func (WithdrawRecordModel) TableName() string {
	return "withdraw_record"
}
