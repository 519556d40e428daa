package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

const insertNotificationsQuery = `
INSERT INTO hydra_notifications (
	event_id,
	event,
	height,
	block_hash,
	address,
	user_id,
	chat_id,
	sink,
	status,
	text,
	created_at
) VALUES`

// InsertNotifications appends delivery records to the archive.
func (r *Repository) InsertNotifications(ctx context.Context, records []model.Notification) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_notifications", err, start)
		if err == nil {
			r.metrics.ObserveRows("insert_notifications", len(records))
		}
	}()

	if len(records) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertNotificationsQuery)
	if err != nil {
		return fmt.Errorf("prepare notifications batch: %w", err)
	}

	for _, rec := range records {
		createdAt := rec.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if err = batch.Append(
			rec.EventID,
			string(rec.Event),
			rec.Height,
			rec.BlockHash,
			rec.Address,
			rec.UserID,
			rec.ChatID,
			rec.Sink,
			string(rec.Status),
			rec.Text,
			createdAt.UTC(),
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append notification: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	return nil
}
