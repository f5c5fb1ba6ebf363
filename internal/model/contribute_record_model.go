package model

import (
	"time"
)

// ContributeRecordModel 单笔贡献流水
type ContributeRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	Address    string `json:"address" gorm:"not null;index"`
	Amount     string `json:"amount" gorm:"type:numeric(78,0);not null"`
}

// TableName 自定义表名
func (ContributeRecordModel) TableName() string {
	return "contribute_record"
}
