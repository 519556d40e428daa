package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

// subscriptionTable picks user_tokens for tokens and user_addresses otherwise.
func subscriptionTable(addr model.Address) (table, column string) {
	if addr.IsToken() {
		return "user_tokens", "token_id"
	}
	return "user_addresses", "address_id"
}

// InsertSubscription links a user to addr. It reports false when the link already existed.
func (r *Repository) InsertSubscription(ctx context.Context, userID int64, addr model.Address, name string, cfg model.Config) (created bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_subscription", err, start)
	}()

	table, column := subscriptionTable(addr)
	query := fmt.Sprintf(`
INSERT INTO %s (user_id, %s, name, config)
VALUES ($1, $2, $3, $4)
ON CONFLICT DO NOTHING`, table, column)

	tag, err := r.db.Exec(ctx, query, userID, addr.ID, name, cfg)
	if err != nil {
		return false, fmt.Errorf("insert subscription of user %d to %s: %w", userID, addr.Hex, err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteSubscription unlinks a user from addr. It reports false when there was no link.
func (r *Repository) DeleteSubscription(ctx context.Context, userID int64, addr model.Address) (deleted bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("delete_subscription", err, start)
	}()

	table, column := subscriptionTable(addr)
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND %s = $2`, table, column)

	tag, err := r.db.Exec(ctx, query, userID, addr.ID)
	if err != nil {
		return false, fmt.Errorf("delete subscription of user %d to %s: %w", userID, addr.Hex, err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateSubscriptionConfig replaces the override config of one subscription.
func (r *Repository) UpdateSubscriptionConfig(ctx context.Context, userID int64, addr model.Address, cfg model.Config) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("update_subscription_config", err, start)
	}()

	table, column := subscriptionTable(addr)
	query := fmt.Sprintf(`UPDATE %s SET config = $3 WHERE user_id = $1 AND %s = $2`, table, column)

	tag, err := r.db.Exec(ctx, query, userID, addr.ID, cfg)
	if err != nil {
		return fmt.Errorf("update subscription config of user %d to %s: %w", userID, addr.Hex, err)
	}
	if tag.RowsAffected() == 0 {
		err = model.ErrNotFound
		return err
	}
	return nil
}

// UserSubscriptions returns the addresses and tokens a user follows.
func (r *Repository) UserSubscriptions(ctx context.Context, userID int64) (addrs, tokens []model.Address, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("user_subscriptions", err, start)
	}()

	query := `
SELECT false, ` + addressColumns("a") + `
FROM user_addresses s JOIN addresses a ON a.id = s.address_id
WHERE s.user_id = $1
UNION ALL
SELECT true, ` + addressColumns("a") + `
FROM user_tokens s JOIN addresses a ON a.id = s.token_id
WHERE s.user_id = $1
ORDER BY 1, 2`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("query subscriptions of user %d: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			isToken bool
			s       addressScan
		)
		if err = rows.Scan(append([]any{&isToken}, s.dest()...)...); err != nil {
			return nil, nil, fmt.Errorf("scan subscription: %w", err)
		}
		addr, convErr := s.address()
		if convErr != nil {
			err = convErr
			return nil, nil, err
		}
		if isToken {
			tokens = append(tokens, addr)
		} else {
			addrs = append(addrs, addr)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return addrs, tokens, nil
}

// Subscribers resolves every subscription, address or token, following any of hexes.
func (r *Repository) Subscribers(ctx context.Context, hexes []string) (subs []model.Subscriber, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("subscribers", err, start)
	}()

	if len(hexes) == 0 {
		return nil, nil
	}

	query := `
SELECT a.hex, a.native, ` + userColumns + `, s.address_id, s.name, s.config, s.block_count, s.last_block_at
FROM (
	SELECT user_id, address_id, name, config, block_count, last_block_at FROM user_addresses
	UNION ALL
	SELECT user_id, token_id, name, config, 0, NULL FROM user_tokens
) s
JOIN addresses a ON a.id = s.address_id
JOIN users u ON u.id = s.user_id
WHERE a.hex = ANY($1)
ORDER BY u.id, a.id`

	rows, err := r.db.Query(ctx, query, lowerAll(hexes))
	if err != nil {
		return nil, fmt.Errorf("query subscribers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sub model.Subscriber
		u := &sub.Subscription.User
		if err = rows.Scan(
			&sub.Address.Hex, &sub.Address.Native,
			&u.ID, &u.ExternalID, &u.Config, &u.Fiat, &u.CreatedAt,
			&sub.Subscription.AddressID, &sub.Subscription.Name, &sub.Subscription.Config,
			&sub.Subscription.BlockCount, &sub.Subscription.LastBlockAt,
		); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}
	return subs, nil
}

// RecordMinedBlock bumps the mined-block counters of every subscription to
// addressID and returns the latest block time recorded before this one, nil
// when the address had none.
func (r *Repository) RecordMinedBlock(ctx context.Context, addressID int64, at time.Time) (prev *time.Time, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("record_mined_block", err, start)
	}()

	const query = `
WITH prev AS (
	SELECT MAX(last_block_at) AS at FROM user_addresses WHERE address_id = $1
), bumped AS (
	UPDATE user_addresses
	SET block_count = block_count + 1, last_block_at = GREATEST(COALESCE(last_block_at, $2), $2)
	WHERE address_id = $1
)
SELECT at FROM prev`
	if err = r.db.QueryRow(ctx, query, addressID, at).Scan(&prev); err != nil {
		return nil, fmt.Errorf("record mined block for %d: %w", addressID, err)
	}
	return prev, nil
}
