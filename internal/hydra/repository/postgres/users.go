package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/jackc/pgx/v5"
)

const userColumns = `u.id, u.external_id, u.config, u.fiat, u.created_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.ExternalID, &u.Config, &u.Fiat, &u.CreatedAt)
	return u, err
}

// UserByExternalID returns the user with the given chat id or model.ErrNotFound.
func (r *Repository) UserByExternalID(ctx context.Context, externalID int64) (user model.User, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("user_by_external_id", err, start)
	}()

	user, err = scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.external_id = $1`, externalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("select user %d: %w", externalID, err)
	}
	return user, nil
}

// CreateUser inserts a user with default config. A concurrent insert of the
// same external id is resolved by re-reading the stored row.
func (r *Repository) CreateUser(ctx context.Context, externalID int64, fiat string) (user model.User, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("create_user", err, start)
	}()

	if fiat == "" {
		fiat = "USD"
	}
	query := `INSERT INTO users AS u (external_id, fiat) VALUES ($1, $2) RETURNING ` + userColumns

	err = r.savepoint(ctx, func(q querier) error {
		var scanErr error
		user, scanErr = scanUser(q.QueryRow(ctx, query, externalID, fiat))
		return scanErr
	})
	if isUniqueViolation(err) {
		user, err = r.UserByExternalID(ctx, externalID)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user %d: %w", externalID, err)
	}
	return user, nil
}

// UpdateUserConfig replaces the default config of a user.
func (r *Repository) UpdateUserConfig(ctx context.Context, userID int64, cfg model.Config) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("update_user_config", err, start)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE users SET config = $2 WHERE id = $1`, userID, cfg)
	if err != nil {
		return fmt.Errorf("update user %d config: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		err = model.ErrNotFound
		return err
	}
	return nil
}

// DeleteUser removes the user row. Subscriptions cascade; callers release
// address references first.
func (r *Repository) DeleteUser(ctx context.Context, userID int64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("delete_user", err, start)
	}()

	if _, err = r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("delete user %d: %w", userID, err)
	}
	return nil
}
