package notify

import (
	"math/big"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

// UTXOKind describes how a stake reshaped the outputs of an address.
type UTXOKind string

var (
	UTXOMerge  UTXOKind = "merge"
	UTXOSplit  UTXOKind = "split"
	UTXOUpdate UTXOKind = "update"
)

// UTXOChange counts the non-zero inputs spent and outputs created for an
// address by one transaction.
type UTXOChange struct {
	Inputs  int
	Outputs int
	Total   int64
}

// Kind classifies the change by comparing spent and created counts.
func (c UTXOChange) Kind() UTXOKind {
	switch {
	case c.Inputs > c.Outputs:
		return UTXOMerge
	case c.Outputs > c.Inputs:
		return UTXOSplit
	default:
		return UTXOUpdate
	}
}

// UTXOs summarizes the flows of tx that belong to addr.
func UTXOs(tx model.Transaction, addr model.AddressRef) UTXOChange {
	var c UTXOChange
	for _, in := range tx.Inputs {
		if in.Value != 0 && matches(addr, in.Address) {
			c.Inputs++
		}
	}
	for _, out := range tx.Outputs {
		if out.Value != 0 && matches(addr, out.Address) {
			c.Outputs++
			c.Total += out.Value
		}
	}
	return c
}

// Reward is the net value addr received from tx: outputs minus inputs. On the
// coinstake this is the stake reward actually earned.
func Reward(tx model.Transaction, addr model.AddressRef) int64 {
	in, out := flows(tx, addr)
	return out - in
}

// TxDelta is the effect of one transaction on one address. Net is positive
// when value left the address. Fee is the share of the fee the address paid;
// negative fees are refunds.
type TxDelta struct {
	TxID string
	N    int
	In   int64
	Out  int64
	Fee  int64
	Net  int64
}

// Delta computes the effect of tx on addr. mined is set when addr staked the
// block; its reward is then removed from the coinstake.
func Delta(tx model.Transaction, addr model.AddressRef, mined bool) TxDelta {
	in, out := flows(tx, addr)
	d := TxDelta{TxID: tx.TxID, N: tx.Index, In: in, Out: out}

	if tx.IsReward() {
		if mined {
			d.Out -= Reward(tx, addr)
		} else {
			d.Fee = -out
		}
	} else {
		d.Fee = FeeShares(tx)[key(addr, tx)]
	}

	d.Net = d.In - d.Out - d.Fee
	return d
}

// FeeShares splits the fee of tx across its paying addresses in proportion to
// the value each one put in. Shares sum to tx.Fee exactly; the rounding
// remainder goes to the first payer.
func FeeShares(tx model.Transaction) map[string]int64 {
	shares := make(map[string]int64)
	if tx.Fee == 0 {
		return shares
	}

	var (
		order []string
		paid  = make(map[string]int64)
		total int64
	)
	for _, in := range tx.Inputs {
		if in.Value <= 0 {
			continue
		}
		if _, ok := paid[in.Address]; !ok {
			order = append(order, in.Address)
		}
		paid[in.Address] += in.Value
		total += in.Value
	}
	if total == 0 {
		return shares
	}

	fee := big.NewInt(tx.Fee)
	sum := big.NewInt(total)
	var assigned int64
	for _, a := range order {
		share := new(big.Int).Mul(fee, big.NewInt(paid[a]))
		share.Quo(share, sum)
		shares[a] = share.Int64()
		assigned += shares[a]
	}
	shares[order[0]] += tx.Fee - assigned
	return shares
}

// TokenAction names what a token transfer did from the point of view of one
// address.
type TokenAction string

var (
	TokenMint     TokenAction = "mint"
	TokenBurn     TokenAction = "burn"
	TokenSend     TokenAction = "send"
	TokenReceive  TokenAction = "receive"
	TokenTransfer TokenAction = "transfer"
)

// ClassifyTransfer names tt for addr. Mint and burn win over the side addr
// is on; the token contract itself sees a plain transfer.
func ClassifyTransfer(tt model.TokenTransfer, addr model.AddressRef) TokenAction {
	switch {
	case tt.From == "":
		return TokenMint
	case tt.To == "":
		return TokenBurn
	case matches(addr, tt.To):
		return TokenReceive
	case matches(addr, tt.From):
		return TokenSend
	default:
		return TokenTransfer
	}
}

// Activity is what a created block did to one address outside staking.
type Activity struct {
	Txs       []TxDelta
	Tokens    []TokenLine
	Net       int64
	FeesTotal int64
}

// TokenLine is one token transfer seen by an address.
type TokenLine struct {
	TxID     string
	Action   TokenAction
	Transfer model.TokenTransfer
}

// Empty reports whether there is nothing to tell the subscriber.
func (a Activity) Empty() bool {
	return len(a.Txs) == 0 && len(a.Tokens) == 0
}

// BlockActivity aggregates every transaction of block that touches addr.
// Coinstake deltas reduced to nothing are skipped.
func BlockActivity(block model.Block, addr model.AddressRef, mined bool) Activity {
	var act Activity
	target := model.Address{Hex: addr.Hex, Native: addr.Native}
	for _, tx := range block.Transactions {
		if !tx.Touches(target) {
			continue
		}
		d := Delta(tx, addr, mined && tx.IsReward())
		var lines []TokenLine
		for _, tt := range tx.TokenTransfers {
			if matches(addr, tt.Contract) || matches(addr, tt.From) || matches(addr, tt.To) {
				lines = append(lines, TokenLine{TxID: tx.TxID, Action: ClassifyTransfer(tt, addr), Transfer: tt})
			}
		}
		if tx.IsReward() && mined && d.Net == 0 && d.Fee == 0 && len(lines) == 0 {
			continue
		}
		act.Tokens = append(act.Tokens, lines...)
		if d.Net == 0 && d.Fee == 0 {
			continue
		}
		act.Txs = append(act.Txs, d)
		act.Net += d.Net
		act.FeesTotal += d.Fee
	}
	return act
}

func flows(tx model.Transaction, addr model.AddressRef) (in, out int64) {
	for _, f := range tx.Inputs {
		if matches(addr, f.Address) {
			in += f.Value
		}
	}
	for _, f := range tx.Outputs {
		if matches(addr, f.Address) {
			out += f.Value
		}
	}
	return in, out
}

// key returns the form addr takes among the inputs of tx.
func key(addr model.AddressRef, tx model.Transaction) string {
	for _, f := range tx.Inputs {
		if matches(addr, f.Address) {
			return f.Address
		}
	}
	return addr.Native
}

func matches(addr model.AddressRef, s string) bool {
	return model.Address{Hex: addr.Hex, Native: addr.Native}.Matches(s)
}
