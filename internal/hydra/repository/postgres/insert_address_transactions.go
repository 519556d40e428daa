package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

// InsertAddressTransactions links addresses to transactions. Existing links are kept.
func (r *Repository) InsertAddressTransactions(ctx context.Context, links []model.AddressTransactionLink) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_address_transactions", err, start)
	}()

	if len(links) == 0 {
		return nil
	}

	addressIDs := make([]int64, len(links))
	txIDs := make([]int64, len(links))
	mined := make([]bool, len(links))
	for i, l := range links {
		addressIDs[i], txIDs[i], mined[i] = l.AddressID, l.TransactionID, l.Mined
	}

	const query = `
INSERT INTO address_transactions (address_id, transaction_id, mined)
SELECT * FROM unnest($1::bigint[], $2::bigint[], $3::boolean[])
ON CONFLICT (address_id, transaction_id) DO NOTHING`

	if _, err = r.db.Exec(ctx, query, addressIDs, txIDs, mined); err != nil {
		return fmt.Errorf("insert address transactions: %w", err)
	}
	return nil
}
