package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/jackc/pgx/v5"
)

// InsertTransaction stores tx under blockID and returns its id.
func (r *Repository) InsertTransaction(ctx context.Context, blockID int64, tx model.Transaction) (id int64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_transaction", err, start)
	}()

	flows := txFlows{Inputs: tx.Inputs, Outputs: tx.Outputs, Fee: tx.Fee, TokenTransfers: tx.TokenTransfers}

	const query = `
INSERT INTO transactions (block_id, txid, idx, flows)
VALUES ($1, $2, $3, $4)
ON CONFLICT (block_id, txid) DO NOTHING
RETURNING id`

	err = r.db.QueryRow(ctx, query, blockID, tx.TxID, tx.Index, flows).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = r.db.QueryRow(ctx, `SELECT id FROM transactions WHERE block_id = $1 AND txid = $2`, blockID, tx.TxID).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("insert transaction %s: %w", tx.TxID, err)
	}
	return id, nil
}
