package token

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// 奖励代币合约ABI定义（简化版）
const badgeABI = `[
	{
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "tokenId", "type": "uint256"}
		],
		"name": "mint",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// Client 链上资金转移与奖励铸造客户端。
// 实现 campaign.Transferor 与 campaign.Minter。
type Client struct {
	client       *ethclient.Client
	privateKey   *ecdsa.PrivateKey
	fromAddress  common.Address
	badgeAddress common.Address
	chainId      *big.Int
	badgeABI     abi.ABI
}

// Init 初始化链客户端
func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	fromAddress := crypto.PubkeyToAddress(privateKey.PublicKey)

	// 解析ABI
	parsedABI, err := abi.JSON(strings.NewReader(badgeABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse badge ABI: %w", err)
	}

	return &Client{
		client:       client,
		privateKey:   privateKey,
		fromAddress:  fromAddress,
		badgeAddress: common.HexToAddress(cfg.BadgeAddress),
		chainId:      big.NewInt(cfg.ChainId),
		badgeABI:     parsedABI,
	}, nil
}

// TransferValue 向目标地址转移资金
func (c *Client) TransferValue(to common.Address, amount *big.Int) error {
	nonce, err := c.client.PendingNonceAt(context.Background(), c.fromAddress)
	if err != nil {
		return fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, to, amount, 21000, gasPrice, nil)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainId), c.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(context.Background(), signedTx); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.Info("Sent value transfer %s wei to %s, tx %s", amount.String(), to.Hex(), signedTx.Hash().Hex())
	return nil
}

// Mint 铸造一枚奖励代币
func (c *Client) Mint(owner common.Address, tokenID uint64) error {
	data, err := c.badgeABI.Pack("mint", owner, new(big.Int).SetUint64(tokenID))
	if err != nil {
		return fmt.Errorf("failed to pack mint call: %w", err)
	}

	nonce, err := c.client.PendingNonceAt(context.Background(), c.fromAddress)
	if err != nil {
		return fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, c.badgeAddress, big.NewInt(0), 200000, gasPrice, data)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainId), c.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign mint transaction: %w", err)
	}

	if err := c.client.SendTransaction(context.Background(), signedTx); err != nil {
		return fmt.Errorf("failed to send mint transaction: %w", err)
	}

	logger.Info("Minted badge %d to %s, tx %s", tokenID, owner.Hex(), signedTx.Hash().Hex())
	return nil
}
