// Package tracker keeps (token, holder) balances current.
package tracker

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/goodnatureofminers/hydrawatch/pkg/workerpool"
	"github.com/shopspring/decimal"
)

const selectorBalanceOf = "70a08231"

const defaultWorkers = 4

// Tracker reads token balances from the account snapshot or from balanceOf.
type Tracker struct {
	chain   Chain
	workers int
	now     func() time.Time
}

// New creates a Tracker. workers bounds concurrent balanceOf calls.
func New(chain Chain, workers int) *Tracker {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Tracker{chain: chain, workers: workers, now: time.Now}
}

// BalanceOf returns the holder balance of token scaled by the token decimals.
func (t *Tracker) BalanceOf(ctx context.Context, token, holder model.Address) (decimal.Decimal, error) {
	if !token.IsToken() {
		return decimal.Zero, fmt.Errorf("%s is not a token", token.Hex)
	}
	if v, ok := holder.Info.TokenBalance(token.Hex); ok {
		return v, nil
	}

	ok, out, err := t.chain.CallReadOnly(ctx, token.Hex, BalanceOfCall(holder.Hex))
	if err != nil {
		return decimal.Zero, fmt.Errorf("call balanceOf %s on %s: %w", holder.Hex, token.Hex, err)
	}
	if !ok {
		return decimal.Zero, fmt.Errorf("balanceOf %s on %s reverted", holder.Hex, token.Hex)
	}
	raw, good := new(big.Int).SetString(out, 16)
	if out == "" {
		raw, good = new(big.Int), true
	}
	if !good {
		return decimal.Zero, fmt.Errorf("balanceOf %s on %s: bad output %q", holder.Hex, token.Hex, out)
	}
	return decimal.NewFromBigInt(raw, -int32(token.Token.Decimals)), nil
}

// Refresh fetches balances for every pair. Any failure aborts the whole batch.
func (t *Tracker) Refresh(ctx context.Context, pairs []model.TokenHolder) ([]model.TokenAddressBalance, error) {
	return workerpool.Map(ctx, t.workers, pairs, func(ctx context.Context, pair model.TokenHolder) (model.TokenAddressBalance, error) {
		balance, err := t.BalanceOf(ctx, pair.Token, pair.Holder)
		if err != nil {
			return model.TokenAddressBalance{}, err
		}
		return model.TokenAddressBalance{
			TokenID:   pair.Token.ID,
			AddressID: pair.Holder.ID,
			Balance:   &balance,
			UpdatedAt: t.now().UTC(),
		}, nil
	})
}

// BalanceOfCall encodes balanceOf(holder) call data.
func BalanceOfCall(holderHex string) string {
	h := strings.ToLower(strings.TrimPrefix(holderHex, "0x"))
	if len(h) < 64 {
		h = strings.Repeat("0", 64-len(h)) + h
	}
	return selectorBalanceOf + h
}
