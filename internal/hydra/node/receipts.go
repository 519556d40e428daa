package node

import (
	"math/big"
	"strings"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/shopspring/decimal"
)

// transferTopic is keccak256("Transfer(address,address,uint256)").
const transferTopic = "ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

const zeroAddress = "0000000000000000000000000000000000000000"

// TransfersFromReceipts decodes QRC20 and QRC721 Transfer logs. Values are raw
// integers; callers scale them by the token decimals.
func TransfersFromReceipts(receipts []TransactionReceipt) []model.TokenTransfer {
	var out []model.TokenTransfer
	for _, receipt := range receipts {
		for _, log := range receipt.Log {
			if len(log.Topics) < 3 || !strings.EqualFold(strip0x(log.Topics[0]), transferTopic) {
				continue
			}
			transfer := model.TokenTransfer{
				Contract: strings.ToLower(strip0x(log.Address)),
				From:     topicAddress(log.Topics[1]),
				To:       topicAddress(log.Topics[2]),
			}
			if len(log.Topics) == 4 {
				transfer.TokenID = hexInt(log.Topics[3]).String()
			} else {
				transfer.Value = decimal.NewFromBigInt(hexInt(log.Data), 0)
			}
			out = append(out, transfer)
		}
	}
	return out
}

func topicAddress(topic string) string {
	topic = strip0x(topic)
	if len(topic) < 40 {
		return ""
	}
	addr := strings.ToLower(topic[len(topic)-40:])
	if addr == zeroAddress {
		return ""
	}
	return addr
}

func hexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(strip0x(s), 16)
	if !ok {
		return new(big.Int)
	}
	return v
}

func strip0x(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
}
