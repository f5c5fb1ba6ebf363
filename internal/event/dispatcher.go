package event

import (
	"sync"

	"github.com/blues/cls/internal/campaign"
	"github.com/blues/cls/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// Processor 事件处理器
type Processor interface {
	Process(campaignId int64, event campaign.Event) error
}

// Dispatcher 账本事件分发器。
// 实现 campaign.Recorder，将核心发出的事件投递到协程池异步处理。
type Dispatcher struct {
	pool       *ants.Pool
	processors []Processor
	wg         sync.WaitGroup
}

// NewDispatcher 创建事件分发器
func NewDispatcher(poolSize int) (*Dispatcher, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{pool: pool}, nil
}

// RegisterProcessor 注册事件处理器
func (d *Dispatcher) RegisterProcessor(p Processor) {
	d.processors = append(d.processors, p)
}

// ForCampaign 绑定项目ID，返回可直接注入核心账本的 Recorder
func (d *Dispatcher) ForCampaign(campaignId int64) campaign.Recorder {
	return &campaignRecorder{dispatcher: d, campaignId: campaignId}
}

// dispatch 将事件投递到协程池
func (d *Dispatcher) dispatch(campaignId int64, event campaign.Event) {
	d.wg.Add(1)
	err := d.pool.Submit(func() {
		defer d.wg.Done()
		for _, p := range d.processors {
			if err := p.Process(campaignId, event); err != nil {
				logger.Error("Failed to process %s event for campaign %d: %v",
					event.EventType(), campaignId, err)
			}
		}
	})
	if err != nil {
		// 池已关闭或超载时降级为同步处理，事件不允许丢失
		d.wg.Done()
		for _, p := range d.processors {
			if perr := p.Process(campaignId, event); perr != nil {
				logger.Error("Failed to process %s event for campaign %d: %v",
					event.EventType(), campaignId, perr)
			}
		}
	}
}

// Wait 等待所有在途事件处理完成
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Release 关闭协程池
func (d *Dispatcher) Release() {
	d.wg.Wait()
	d.pool.Release()
}

// campaignRecorder 绑定了项目ID的事件记录器
type campaignRecorder struct {
	dispatcher *Dispatcher
	campaignId int64
}

func (r *campaignRecorder) Record(event campaign.Event) {
	r.dispatcher.dispatch(r.campaignId, event)
}
