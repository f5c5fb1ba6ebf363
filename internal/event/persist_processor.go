package event

import (
	"encoding/json"

	"github.com/blues/cls/internal/campaign"
	"github.com/blues/cls/internal/logger"
	"github.com/blues/cls/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PersistProcessor 事件落库处理器
type PersistProcessor struct {
	db *gorm.DB
}

// NewPersistProcessor 创建事件落库处理器
func NewPersistProcessor(db *gorm.DB) *PersistProcessor {
	return &PersistProcessor{db: db}
}

// Process 将事件写入事件表
func (p *PersistProcessor) Process(campaignId int64, event campaign.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	record := model.EventModel{
		EventId:    uuid.NewString(),
		CampaignId: campaignId,
		EventType:  event.EventType(),
		Data:       string(data),
	}
	if err := p.db.Create(&record).Error; err != nil {
		return err
	}

	logger.Debug("Persisted %s event for campaign %d", event.EventType(), campaignId)
	return nil
}

// LogProcessor 事件日志处理器
type LogProcessor struct{}

// NewLogProcessor 创建事件日志处理器
func NewLogProcessor() *LogProcessor {
	return &LogProcessor{}
}

// Process 记录事件日志
func (p *LogProcessor) Process(campaignId int64, event campaign.Event) error {
	logger.Info("Campaign %d emitted %s event", campaignId, event.EventType())
	return nil
}
