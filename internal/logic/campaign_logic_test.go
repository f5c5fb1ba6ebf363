package logic

import (
	"testing"
	"time"

	"github.com/blues/cls/internal/campaign"
	"github.com/blues/cls/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "empty string is zero", input: "", expected: "0"},
		{name: "zero", input: "0", expected: "0"},
		{name: "wei amount", input: "10000000000000000", expected: "10000000000000000"},
		{name: "beyond uint64", input: "115792089237316195423570985008687907853269984665640564039457", expected: "115792089237316195423570985008687907853269984665640564039457"},
		{name: "garbage", input: "1.5e18", wantErr: true},
		{name: "hex not accepted", input: "0x10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := parseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, amount.String())
		})
	}
}

func TestToSnapshot(t *testing.T) {
	deadline := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	campaignModel := &model.CampaignModel{
		Id:               7,
		Name:             "Crowdfundr Badge",
		Symbol:           "CFB",
		OwnerAddress:     "0x00000000000000000000000000000000000000a1",
		Goal:             "3000000000000000000",
		Deadline:         deadline,
		Cancelled:        false,
		TotalContributed: "1500000000000000000",
		CurrentFunds:     "1500000000000000000",
		NextTokenId:      2,
	}
	contributions := []model.ContributionModel{
		{
			CampaignId:        7,
			Address:           "0x00000000000000000000000000000000000000b2",
			AmountContributed: "1500000000000000000",
			TokensClaimed:     1,
		},
	}

	snap, err := toSnapshot(campaignModel, contributions)
	require.NoError(t, err)

	assert.Equal(t, common.HexToAddress(campaignModel.OwnerAddress), snap.Owner)
	assert.Equal(t, "3000000000000000000", snap.Goal.String())
	assert.Equal(t, deadline, snap.Deadline)
	assert.Equal(t, uint64(2), snap.NextTokenID)

	record, ok := snap.Records[common.HexToAddress("0x00000000000000000000000000000000000000b2")]
	require.True(t, ok)
	assert.Equal(t, "1500000000000000000", record.AmountContributed.String())
	assert.Equal(t, uint64(1), record.TokensClaimed)

	// 快照可直接重建核心账本并推导状态
	c := campaign.Restore(snap, nil, nil, nil)
	c.SetNowFunc(func() time.Time { return deadline.Add(-time.Hour) })
	assert.Equal(t, campaign.StatusActive, c.Status())
	c.SetNowFunc(func() time.Time { return deadline })
	assert.Equal(t, campaign.StatusExpired, c.Status())
}

func TestToSnapshotMalformedAmount(t *testing.T) {
	campaignModel := &model.CampaignModel{
		Goal:             "not-a-number",
		TotalContributed: "0",
		CurrentFunds:     "0",
	}
	_, err := toSnapshot(campaignModel, nil)
	require.Error(t, err)
}
