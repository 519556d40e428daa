package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coin is the number of base units in one HYDRA.
const Coin = 100_000_000

// RewardTxIndex is the position of the coinstake transaction inside a block.
const RewardTxIndex = 1

// Block is a chain block retained because at least one transaction touched a tracked address.
type Block struct {
	ID           int64          `json:"-"`
	Height       uint64         `json:"height"`
	Hash         string         `json:"hash"`
	Time         time.Time      `json:"time"`
	Miner        string         `json:"miner,omitempty"`
	Reward       int64          `json:"reward"` // nominal, display only
	TxCount      int            `json:"txCount"`
	Transactions []Transaction  `json:"transactions"`
	Aux          map[string]any `json:"aux,omitempty"`
}

// RewardTx returns the coinstake transaction when it was retained.
func (b Block) RewardTx() (Transaction, bool) {
	for _, tx := range b.Transactions {
		if tx.Index == RewardTxIndex {
			return tx, true
		}
	}
	return Transaction{}, false
}

// Flow is one input or output of a transaction attributed to an address.
type Flow struct {
	Address string `json:"address"`
	Value   int64  `json:"value"`
}

// Transaction carries the decoded value flows of a transaction.
type Transaction struct {
	ID             int64           `json:"-"`
	TxID           string          `json:"txid"`
	Index          int             `json:"index"`
	Inputs         []Flow          `json:"inputs"`
	Outputs        []Flow          `json:"outputs"`
	Fee            int64           `json:"fee"`
	TokenTransfers []TokenTransfer `json:"tokenTransfers,omitempty"`
}

// IsReward reports whether tx is the block's coinstake transaction.
func (t Transaction) IsReward() bool {
	return t.Index == RewardTxIndex
}

// Touches reports whether any flow or token transfer of tx involves addr.
func (t Transaction) Touches(addr Address) bool {
	for _, f := range t.Inputs {
		if addr.Matches(f.Address) {
			return true
		}
	}
	for _, f := range t.Outputs {
		if addr.Matches(f.Address) {
			return true
		}
	}
	for _, tt := range t.TokenTransfers {
		if addr.Matches(tt.Contract) || addr.Matches(tt.From) || addr.Matches(tt.To) {
			return true
		}
	}
	return false
}

// Addresses returns every address string the transaction mentions, deduplicated.
func (t Transaction) Addresses() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(t.Inputs)+len(t.Outputs))
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, f := range t.Inputs {
		add(f.Address)
	}
	for _, f := range t.Outputs {
		add(f.Address)
	}
	for _, tt := range t.TokenTransfers {
		add(tt.Contract)
		add(tt.From)
		add(tt.To)
	}
	return out
}

// TokenTransfer is a decoded Transfer log. Empty From means mint, empty To means burn.
type TokenTransfer struct {
	Contract string          `json:"contract"`
	Name     string          `json:"name,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	From     string          `json:"from,omitempty"`
	To       string          `json:"to,omitempty"`
	Value    decimal.Decimal `json:"value"`
	TokenID  string          `json:"tokenId,omitempty"`
}

// IsNFT reports whether the transfer moves a non-fungible token id instead of an amount.
func (t TokenTransfer) IsNFT() bool {
	return t.TokenID != ""
}

// AddressTransactionLink joins a tracked address to a transaction that touched it.
type AddressTransactionLink struct {
	AddressID     int64
	TransactionID int64
	Mined         bool
}

// Cursor is the ingestion position persisted between runs.
type Cursor struct {
	Height uint64
	Hash   string
}
