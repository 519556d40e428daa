package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/jackc/pgx/v5"
)

// InsertBlock stores block metadata and returns its id. An existing block
// with the same hash is left untouched and its id is returned.
func (r *Repository) InsertBlock(ctx context.Context, block model.Block) (id int64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_block", err, start)
	}()

	aux := block.Aux
	if aux == nil {
		aux = map[string]any{}
	}
	info := blockInfo{Time: block.Time, Reward: block.Reward, TxCount: block.TxCount}

	const query = `
INSERT INTO blocks (height, hash, miner, info, aux)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (hash) DO NOTHING
RETURNING id`

	err = r.db.QueryRow(ctx, query, block.Height, block.Hash, block.Miner, info, aux).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = r.db.QueryRow(ctx, `SELECT id FROM blocks WHERE hash = $1`, block.Hash).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("insert block %d: %w", block.Height, err)
	}
	return id, nil
}
