package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

// MinedBlock is a stored block together with the tracked address that staked it.
type MinedBlock struct {
	Block model.Block
	Miner model.Address
}

// MinedBlocksAt returns the stored block at height with hash whose reward went
// to a stored address. Blocks orphaned at that height are skipped. Only the
// reward transaction is loaded.
func (r *Repository) MinedBlocksAt(ctx context.Context, height uint64, hash string) (blocks []MinedBlock, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("mined_blocks_at", err, start)
	}()

	query := `
SELECT b.id, b.height, b.hash, b.miner, b.info, t.id, t.txid, t.idx, t.flows, ` + addressColumns("a") + `
FROM blocks b
JOIN transactions t ON t.block_id = b.id
JOIN address_transactions at ON at.transaction_id = t.id AND at.mined
JOIN addresses a ON a.id = at.address_id
WHERE b.height = $1 AND b.hash = $2
ORDER BY b.id`

	rows, err := r.db.Query(ctx, query, height, hash)
	if err != nil {
		return nil, fmt.Errorf("query mined blocks at %d: %w", height, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			block model.Block
			info  blockInfo
			tx    model.Transaction
			flows txFlows
			miner addressScan
		)
		dest := append([]any{
			&block.ID, &block.Height, &block.Hash, &block.Miner, &info,
			&tx.ID, &tx.TxID, &tx.Index, &flows,
		}, miner.dest()...)
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan mined block: %w", err)
		}
		addr, convErr := miner.address()
		if convErr != nil {
			err = convErr
			return nil, err
		}

		block.Time, block.Reward, block.TxCount = info.Time, info.Reward, info.TxCount
		tx.Inputs, tx.Outputs, tx.Fee, tx.TokenTransfers = flows.Inputs, flows.Outputs, flows.Fee, flows.TokenTransfers
		block.Transactions = []model.Transaction{tx}
		blocks = append(blocks, MinedBlock{Block: block, Miner: addr})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mined blocks: %w", err)
	}
	return blocks, nil
}
