package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

// TokenHolders returns the (token, holder) rows where the holder is one of
// addressIDs or the token is one of tokenHexes.
func (r *Repository) TokenHolders(ctx context.Context, addressIDs []int64, tokenHexes []string) (pairs []model.TokenHolder, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("token_holders", err, start)
	}()

	if len(addressIDs) == 0 && len(tokenHexes) == 0 {
		return nil, nil
	}
	if addressIDs == nil {
		addressIDs = []int64{}
	}

	query := `
SELECT ` + addressColumns("t") + `, ` + addressColumns("h") + `
FROM token_balances tb
JOIN addresses t ON t.id = tb.token_id
JOIN addresses h ON h.id = tb.address_id
WHERE tb.address_id = ANY($1) OR t.hex = ANY($2)
ORDER BY t.id, h.id`

	rows, err := r.db.Query(ctx, query, addressIDs, lowerAll(tokenHexes))
	if err != nil {
		return nil, fmt.Errorf("query token holders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var token, holder addressScan
		if err = rows.Scan(append(token.dest(), holder.dest()...)...); err != nil {
			return nil, fmt.Errorf("scan token holder: %w", err)
		}
		var pair model.TokenHolder
		if pair.Token, err = token.address(); err != nil {
			return nil, err
		}
		if pair.Holder, err = holder.address(); err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token holders: %w", err)
	}
	return pairs, nil
}

// UpsertTokenBalances creates or refreshes (token, holder) balance rows.
func (r *Repository) UpsertTokenBalances(ctx context.Context, balances []model.TokenAddressBalance) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("upsert_token_balances", err, start)
	}()

	if len(balances) == 0 {
		return nil
	}

	tokenIDs := make([]int64, len(balances))
	addressIDs := make([]int64, len(balances))
	values := make([]*string, len(balances))
	updated := make([]*time.Time, len(balances))
	for i, b := range balances {
		tokenIDs[i], addressIDs[i] = b.TokenID, b.AddressID
		values[i] = decimalString(b.Balance)
		if !b.UpdatedAt.IsZero() {
			at := b.UpdatedAt
			updated[i] = &at
		}
	}

	const query = `
INSERT INTO token_balances (token_id, address_id, balance, updated_at)
SELECT x.token_id, x.address_id, x.balance::numeric, x.updated_at
FROM unnest($1::bigint[], $2::bigint[], $3::text[], $4::timestamptz[]) AS x(token_id, address_id, balance, updated_at)
ON CONFLICT (token_id, address_id) DO UPDATE
SET balance = COALESCE(EXCLUDED.balance, token_balances.balance),
    updated_at = COALESCE(EXCLUDED.updated_at, token_balances.updated_at)`

	if _, err = r.db.Exec(ctx, query, tokenIDs, addressIDs, values, updated); err != nil {
		return fmt.Errorf("upsert token balances: %w", err)
	}
	return nil
}

// TokenBalances returns the cached balances held by addressID.
func (r *Repository) TokenBalances(ctx context.Context, addressID int64) (balances []model.TokenAddressBalance, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("token_balances", err, start)
	}()

	const query = `
SELECT b.token_id, t.hex, b.address_id, b.balance::text, b.updated_at
FROM token_balances b
JOIN addresses t ON t.id = b.token_id
WHERE b.address_id = $1
ORDER BY b.token_id`

	rows, err := r.db.Query(ctx, query, addressID)
	if err != nil {
		return nil, fmt.Errorf("query token balances of %d: %w", addressID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			b       model.TokenAddressBalance
			balance *string
			updated *time.Time
		)
		if err = rows.Scan(&b.TokenID, &b.TokenHex, &b.AddressID, &balance, &updated); err != nil {
			return nil, fmt.Errorf("scan token balance: %w", err)
		}
		if balance != nil {
			v, parseErr := decimalFromString(*balance)
			if parseErr != nil {
				err = parseErr
				return nil, err
			}
			b.Balance = &v
		}
		if updated != nil {
			b.UpdatedAt = *updated
		}
		balances = append(balances, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token balances: %w", err)
	}
	return balances, nil
}
