package event

import (
	"math/big"
	"sync"
	"testing"

	"github.com/blues/cls/internal/campaign"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureProcessor struct {
	mu     sync.Mutex
	events []struct {
		campaignId int64
		event      campaign.Event
	}
}

func (p *captureProcessor) Process(campaignId int64, event campaign.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, struct {
		campaignId int64
		event      campaign.Event
	}{campaignId, event})
	return nil
}

func (p *captureProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestDispatcherDeliversToAllProcessors(t *testing.T) {
	dispatcher, err := NewDispatcher(4)
	require.NoError(t, err)
	defer dispatcher.Release()

	first := &captureProcessor{}
	second := &captureProcessor{}
	dispatcher.RegisterProcessor(first)
	dispatcher.RegisterProcessor(second)

	recorder := dispatcher.ForCampaign(42)
	recorder.Record(campaign.ContributedEvent{
		Contributor: common.HexToAddress("0x01"),
		Amount:      big.NewInt(1000),
	})
	recorder.Record(campaign.CancelledEvent{})

	dispatcher.Wait()

	assert.Equal(t, 2, first.count())
	assert.Equal(t, 2, second.count())

	first.mu.Lock()
	defer first.mu.Unlock()
	for _, entry := range first.events {
		assert.Equal(t, int64(42), entry.campaignId)
	}
}

func TestDispatcherSeparatesCampaigns(t *testing.T) {
	dispatcher, err := NewDispatcher(2)
	require.NoError(t, err)
	defer dispatcher.Release()

	processor := &captureProcessor{}
	dispatcher.RegisterProcessor(processor)

	dispatcher.ForCampaign(1).Record(campaign.CancelledEvent{})
	dispatcher.ForCampaign(2).Record(campaign.CancelledEvent{})
	dispatcher.Wait()

	processor.mu.Lock()
	defer processor.mu.Unlock()
	ids := map[int64]bool{}
	for _, entry := range processor.events {
		ids[entry.campaignId] = true
	}
	assert.True(t, ids[1])
	assert.True(t, ids[2])
}
