package model

import (
	"time"
)

// CampaignModel 众筹项目账本快照。
// 状态不入库，始终由 campaign 包按字段与当前时间推导。
type CampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name   string `json:"name" gorm:"not null" binding:"required"`
	Symbol string `json:"symbol" gorm:"not null" binding:"required"`

	// 不可变参数
	OwnerAddress string    `json:"owner_address" gorm:"not null;index"`
	Goal         string    `json:"goal" gorm:"type:numeric(78,0);not null"` // wei 十进制串
	Deadline     time.Time `json:"deadline" gorm:"not null"`

	// 账本累计字段
	Cancelled        bool   `json:"cancelled" gorm:"default:false"`
	TotalContributed string `json:"total_contributed" gorm:"type:numeric(78,0);default:0"`
	CurrentFunds     string `json:"current_funds" gorm:"type:numeric(78,0);default:0"`
	NextTokenId      uint64 `json:"next_token_id" gorm:"default:1"`
}

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
