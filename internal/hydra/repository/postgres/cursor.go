package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/jackc/pgx/v5"
)

// Cursor returns the persisted ingestion cursor or model.ErrNotFound.
func (r *Repository) Cursor(ctx context.Context) (cursor model.Cursor, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("cursor", err, start)
	}()

	err = r.db.QueryRow(ctx, `SELECT height, hash FROM ingest_cursor WHERE id = 1`).Scan(&cursor.Height, &cursor.Hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Cursor{}, model.ErrNotFound
	}
	if err != nil {
		return model.Cursor{}, fmt.Errorf("select ingest cursor: %w", err)
	}
	return cursor, nil
}

// MaxBlock returns the height and hash of the highest stored block or model.ErrNotFound.
func (r *Repository) MaxBlock(ctx context.Context) (cursor model.Cursor, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_block", err, start)
	}()

	const query = `SELECT height, hash FROM blocks ORDER BY height DESC, id DESC LIMIT 1`
	err = r.db.QueryRow(ctx, query).Scan(&cursor.Height, &cursor.Hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Cursor{}, model.ErrNotFound
	}
	if err != nil {
		return model.Cursor{}, fmt.Errorf("select max block: %w", err)
	}
	return cursor, nil
}

// SaveCursor persists the ingestion cursor.
func (r *Repository) SaveCursor(ctx context.Context, cursor model.Cursor) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_cursor", err, start)
	}()

	const query = `
INSERT INTO ingest_cursor (id, height, hash, updated_at)
VALUES (1, $1, $2, now())
ON CONFLICT (id) DO UPDATE SET height = EXCLUDED.height, hash = EXCLUDED.hash, updated_at = EXCLUDED.updated_at`

	if _, err = r.db.Exec(ctx, query, cursor.Height, cursor.Hash); err != nil {
		return fmt.Errorf("save ingest cursor: %w", err)
	}
	return nil
}
