package token

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// MemoryVault 内存版资金转移能力，开发模式与测试使用
type MemoryVault struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
}

// NewMemoryVault 创建内存资金库
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{balances: make(map[common.Address]*big.Int)}
}

// TransferValue 向目标地址记账
func (v *MemoryVault) TransferValue(to common.Address, amount *big.Int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	balance, ok := v.balances[to]
	if !ok {
		balance = new(big.Int)
		v.balances[to] = balance
	}
	balance.Add(balance, amount)
	return nil
}

// BalanceOf 查询地址已收到的资金
func (v *MemoryVault) BalanceOf(addr common.Address) *big.Int {
	v.mu.Lock()
	defer v.mu.Unlock()

	if balance, ok := v.balances[addr]; ok {
		return new(big.Int).Set(balance)
	}
	return new(big.Int)
}

// MemoryBadge 内存版奖励代币能力，开发模式与测试使用
type MemoryBadge struct {
	mu     sync.Mutex
	owners map[uint64]common.Address
}

// NewMemoryBadge 创建内存奖励代币
func NewMemoryBadge() *MemoryBadge {
	return &MemoryBadge{owners: make(map[uint64]common.Address)}
}

// Mint 铸造一枚代币。ID不允许复用。
func (b *MemoryBadge) Mint(owner common.Address, tokenID uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.owners[tokenID]; exists {
		return fmt.Errorf("token %d already minted", tokenID)
	}
	b.owners[tokenID] = owner
	return nil
}

// OwnerOf 查询代币归属
func (b *MemoryBadge) OwnerOf(tokenID uint64) (common.Address, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	owner, ok := b.owners[tokenID]
	return owner, ok
}

// TotalMinted 已铸造代币总数
func (b *MemoryBadge) TotalMinted() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.owners)
}
