package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/jackc/pgx/v5"
)

// AddressByHex returns the stored address with the given hex form or model.ErrNotFound.
func (r *Repository) AddressByHex(ctx context.Context, hexAddr string) (addr model.Address, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("address_by_hex", err, start)
	}()

	query := `SELECT ` + addressColumns("a") + ` FROM addresses a WHERE a.hex = $1`
	addr, err = scanAddress(r.db.QueryRow(ctx, query, strings.ToLower(hexAddr)))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Address{}, model.ErrNotFound
	}
	if err != nil {
		return model.Address{}, fmt.Errorf("select address %s: %w", hexAddr, err)
	}
	return addr, nil
}

// CreateAddress inserts a classified address. A concurrent insert of the same
// hex form is resolved by re-reading the stored row.
func (r *Repository) CreateAddress(ctx context.Context, addr model.Address) (stored model.Address, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("create_address", err, start)
	}()

	var (
		symbol   *string
		decimals *int16
		supply   *string
	)
	if addr.Token != nil {
		d := int16(addr.Token.Decimals)
		s := addr.Token.TotalSupply.String()
		symbol, decimals, supply = &addr.Token.Symbol, &d, &s
	}

	query := `
INSERT INTO addresses AS a (type, hex, native, name, token_symbol, token_decimals, token_total_supply, info, height)
VALUES ($1, $2, $3, $4, $5, $6, $7::text::numeric, $8, $9)
RETURNING ` + addressColumns("a")

	err = r.savepoint(ctx, func(q querier) error {
		var scanErr error
		stored, scanErr = scanAddress(q.QueryRow(ctx, query,
			string(addr.Type), strings.ToLower(addr.Hex), addr.Native, addr.Name,
			symbol, decimals, supply, addr.Info, addr.Height,
		))
		return scanErr
	})
	if isUniqueViolation(err) {
		stored, err = r.AddressByHex(ctx, addr.Hex)
	}
	if err != nil {
		return model.Address{}, fmt.Errorf("create address %s: %w", addr.Hex, err)
	}
	return stored, nil
}

// TrackedAddresses returns subscribed addresses matching any of forms, native or hex.
func (r *Repository) TrackedAddresses(ctx context.Context, forms []string) (addrs []model.Address, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("tracked_addresses", err, start)
	}()

	if len(forms) == 0 {
		return nil, nil
	}

	query := `
SELECT ` + addressColumns("a") + `
FROM addresses a
WHERE a.subscriber_count > 0 AND (a.native = ANY($1) OR a.hex = ANY($2))
ORDER BY a.id`

	rows, err := r.db.Query(ctx, query, forms, lowerAll(forms))
	if err != nil {
		return nil, fmt.Errorf("query tracked addresses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var addr model.Address
		if addr, err = scanAddress(rows); err != nil {
			return nil, fmt.Errorf("scan tracked address: %w", err)
		}
		addrs = append(addrs, addr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracked addresses: %w", err)
	}
	return addrs, nil
}

// UpdateAddressInfo stores a refreshed account snapshot and the height it was taken at.
func (r *Repository) UpdateAddressInfo(ctx context.Context, addressID int64, info model.AccountInfo, height uint64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("update_address_info", err, start)
	}()

	const query = `UPDATE addresses SET info = $2, height = GREATEST(height, $3) WHERE id = $1`
	if _, err = r.db.Exec(ctx, query, addressID, info, height); err != nil {
		return fmt.Errorf("update address %d info: %w", addressID, err)
	}
	return nil
}

// AdjustSubscriberCount changes the reference count of an address and returns the new value.
func (r *Repository) AdjustSubscriberCount(ctx context.Context, addressID, delta int64) (count int64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("adjust_subscriber_count", err, start)
	}()

	const query = `UPDATE addresses SET subscriber_count = subscriber_count + $2 WHERE id = $1 RETURNING subscriber_count`
	err = r.db.QueryRow(ctx, query, addressID, delta).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, model.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("adjust subscriber count of %d: %w", addressID, err)
	}
	return count, nil
}
