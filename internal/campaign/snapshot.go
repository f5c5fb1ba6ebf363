package campaign

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Snapshot 账本状态快照，用于持久化与重建
type Snapshot struct {
	Owner            common.Address
	Goal             *big.Int
	Deadline         time.Time
	Name             string
	Symbol           string
	Cancelled        bool
	TotalContributed *big.Int
	CurrentFunds     *big.Int
	NextTokenID      uint64
	Records          map[common.Address]Record
}

// Snapshot 导出当前账本状态
func (c *Campaign) Snapshot() Snapshot {
	records := make(map[common.Address]Record, len(c.records))
	for addr, rec := range c.records {
		records[addr] = Record{
			AmountContributed: new(big.Int).Set(rec.AmountContributed),
			TokensClaimed:     rec.TokensClaimed,
		}
	}
	return Snapshot{
		Owner:            c.owner,
		Goal:             new(big.Int).Set(c.goal),
		Deadline:         c.deadline,
		Name:             c.name,
		Symbol:           c.symbol,
		Cancelled:        c.cancelled,
		TotalContributed: new(big.Int).Set(c.totalContributed),
		CurrentFunds:     new(big.Int).Set(c.currentFunds),
		NextTokenID:      c.nextTokenID,
		Records:          records,
	}
}

// Restore 从快照重建账本
func Restore(snap Snapshot, transferor Transferor, minter Minter, recorder Recorder) *Campaign {
	records := make(map[common.Address]*Record, len(snap.Records))
	for addr, rec := range snap.Records {
		records[addr] = &Record{
			AmountContributed: new(big.Int).Set(rec.AmountContributed),
			TokensClaimed:     rec.TokensClaimed,
		}
	}
	nextID := snap.NextTokenID
	if nextID == 0 {
		nextID = 1
	}
	return &Campaign{
		owner:            snap.Owner,
		goal:             new(big.Int).Set(snap.Goal),
		deadline:         snap.Deadline,
		name:             snap.Name,
		symbol:           snap.Symbol,
		cancelled:        snap.Cancelled,
		totalContributed: new(big.Int).Set(snap.TotalContributed),
		currentFunds:     new(big.Int).Set(snap.CurrentFunds),
		nextTokenID:      nextID,
		records:          records,
		transferor:       transferor,
		minter:           minter,
		recorder:         recorder,
		nowFn:            time.Now,
	}
}
