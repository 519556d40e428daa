package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/jackc/pgx/v5"
)

// GCAddress deletes an address without subscribers and with an empty cached
// snapshot, together with the transactions only it referenced and the blocks
// left without transactions or aux data. It reports whether the address was
// deleted.
func (r *Repository) GCAddress(ctx context.Context, addressID int64) (deleted bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("gc_address", err, start)
	}()

	var (
		count int64
		info  model.AccountInfo
	)
	err = r.db.QueryRow(ctx, `SELECT subscriber_count, info FROM addresses WHERE id = $1 FOR UPDATE`, addressID).
		Scan(&count, &info)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lock address %d: %w", addressID, err)
	}
	if count > 0 || !info.IsEmpty() {
		return false, nil
	}

	txIDs, err := collectIDs(ctx, r.db, `DELETE FROM address_transactions WHERE address_id = $1 RETURNING transaction_id`, addressID)
	if err != nil {
		return false, fmt.Errorf("unlink address %d: %w", addressID, err)
	}

	const orphanTxs = `
DELETE FROM transactions t
WHERE t.id = ANY($1)
  AND NOT EXISTS (SELECT 1 FROM address_transactions at WHERE at.transaction_id = t.id)
RETURNING t.block_id`
	blockIDs, err := collectIDs(ctx, r.db, orphanTxs, txIDs)
	if err != nil {
		return false, fmt.Errorf("delete orphan transactions: %w", err)
	}

	const orphanBlocks = `
DELETE FROM blocks b
WHERE b.id = ANY($1)
  AND b.aux = '{}'::jsonb
  AND NOT EXISTS (SELECT 1 FROM transactions t WHERE t.block_id = b.id)`
	if _, err = r.db.Exec(ctx, orphanBlocks, blockIDs); err != nil {
		return false, fmt.Errorf("delete orphan blocks: %w", err)
	}

	if _, err = r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, addressID); err != nil {
		return false, fmt.Errorf("delete address %d: %w", addressID, err)
	}
	return true, nil
}

func collectIDs(ctx context.Context, db querier, query string, args ...any) ([]int64, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
