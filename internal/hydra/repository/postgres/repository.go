// Package postgres is the relational store and the single source of truth for
// blocks, transactions, addresses, users and their subscriptions.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository runs queries against the pool, or against a transaction when
// obtained through InTx.
type Repository struct {
	pool    *pgxpool.Pool
	db      querier
	metrics Metrics
}

func NewRepository(ctx context.Context, dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Repository{pool: pool, db: pool, metrics: metrics}, nil
}

// Close releases the pool. It is a no-op on transaction-bound repositories.
func (r *Repository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// InTx runs fn against a repository bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise. Calls
// on an already transaction-bound repository join the outer transaction.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) (err error) {
	if r.pool == nil {
		return fn(r)
	}

	start := time.Now()
	defer func() {
		r.metrics.Observe("transaction", err, start)
	}()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err = fn(&Repository{db: tx, metrics: r.metrics}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// savepoint isolates fn so a failed statement does not abort the enclosing
// transaction.
func (r *Repository) savepoint(ctx context.Context, fn func(q querier) error) error {
	tx, ok := r.db.(pgx.Tx)
	if !ok {
		return fn(r.db)
	}
	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin savepoint: %w", err)
	}
	if err := fn(sp); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
