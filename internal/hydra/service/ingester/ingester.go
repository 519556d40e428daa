// Package ingester follows the chain tip, keeps the blocks that touch tracked
// addresses and publishes block events for them.
package ingester

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/hydrawatch/internal/clock"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/repository/postgres"
)

// Config tunes the ingestion loop. Zero values fall back to defaults.
type Config struct {
	Interval time.Duration
	Maturity uint64
}

// Service processes new chain heights strictly in order.
type Service struct {
	logger      *zap.Logger
	source      Source
	store       Store
	correlator  *Correlator
	publisher   Publisher
	metrics     Metrics
	sleep       func(context.Context, time.Duration) error
	interval    time.Duration
	maturity    uint64
	blockSignal <-chan struct{}

	cursor *model.Cursor
}

// NewService builds a Service. blockSignal may be nil; when set, every receive
// wakes the loop before the interval elapses.
func NewService(
	cfg Config,
	source Source,
	store Store,
	correlator *Correlator,
	publisher Publisher,
	metrics Metrics,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Service, error) {
	if metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}
	if correlator == nil {
		return nil, errors.New("ingester correlator is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Maturity == 0 {
		cfg.Maturity = defaultMaturity
	}

	return &Service{
		logger:      logger,
		source:      source,
		store:       store,
		correlator:  correlator,
		publisher:   publisher,
		metrics:     metrics,
		sleep:       clock.SleepWithContext,
		interval:    cfg.Interval,
		maturity:    cfg.Maturity,
		blockSignal: blockSignal,
	}, nil
}

// Run follows the chain until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.Sync(ctx); err != nil {
			s.logger.Warn("sync iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.interval))
			if sleepErr := s.sleep(ctx, s.interval); sleepErr != nil {
				return sleepErr
			}
			continue
		}
		if err := s.wait(ctx, s.interval); err != nil {
			return err
		}
	}
}

// Sync brings the local cursor up to the chain tip once.
func (s *Service) Sync(ctx context.Context) (err error) {
	started := time.Now()
	processed := 0
	defer func() {
		s.metrics.ObserveSync(err, processed, started)
	}()

	local, err := s.localCursor(ctx)
	if err != nil {
		return err
	}
	chainHeight, err := s.source.ChainHeight(ctx)
	if err != nil {
		return fmt.Errorf("get chain height: %w", err)
	}

	if chainHeight <= local.Height {
		chainHash, err := s.source.BlockHash(ctx, chainHeight)
		if err != nil {
			return fmt.Errorf("get block hash %d: %w", chainHeight, err)
		}
		if chainHeight == local.Height && chainHash == local.Hash {
			return nil
		}
		s.logger.Warn("fork detected, rescanning chain head",
			zap.Uint64("local_height", local.Height),
			zap.String("local_hash", local.Hash),
			zap.Uint64("chain_height", chainHeight),
			zap.String("chain_hash", chainHash),
		)
		s.metrics.ObserveFork()
		processed++
		return s.processHeight(ctx, chainHeight, chainHash)
	}

	for height := local.Height + 1; height <= chainHeight; height++ {
		if err = s.processHeight(ctx, height, ""); err != nil {
			return err
		}
		processed++
	}
	return nil
}

func (s *Service) localCursor(ctx context.Context) (model.Cursor, error) {
	if s.cursor != nil {
		return *s.cursor, nil
	}

	cursor, err := s.store.Cursor(ctx)
	if errors.Is(err, model.ErrNotFound) {
		cursor, err = s.store.MaxBlock(ctx)
	}
	if errors.Is(err, model.ErrNotFound) {
		cursor, err = s.startCursor(ctx)
	}
	if err != nil {
		return model.Cursor{}, fmt.Errorf("load cursor: %w", err)
	}

	s.logger.Info("ingestion cursor loaded", zap.Uint64("height", cursor.Height), zap.String("hash", cursor.Hash))
	s.cursor = &cursor
	return cursor, nil
}

// startCursor places a fresh store one block below the tip; there is no backfill.
func (s *Service) startCursor(ctx context.Context) (model.Cursor, error) {
	height, err := s.source.ChainHeight(ctx)
	if err != nil {
		return model.Cursor{}, fmt.Errorf("get chain height: %w", err)
	}
	if height > 0 {
		height--
	}
	hash, err := s.source.BlockHash(ctx, height)
	if err != nil {
		return model.Cursor{}, fmt.Errorf("get block hash %d: %w", height, err)
	}
	return model.Cursor{Height: height, Hash: hash}, nil
}

func (s *Service) processHeight(ctx context.Context, height uint64, hash string) (err error) {
	started := time.Now()
	retained := 0
	defer func() {
		s.metrics.ObserveProcessHeight(err, height, retained, started)
	}()

	if hash == "" {
		if hash, err = s.source.BlockHash(ctx, height); err != nil {
			return fmt.Errorf("get block hash %d: %w", height, err)
		}
	}
	block, err := s.source.Block(ctx, hash)
	if err != nil {
		return fmt.Errorf("get block %d: %w", height, err)
	}

	tracked, err := s.store.TrackedAddresses(ctx, blockForms(block))
	if err != nil {
		return fmt.Errorf("lookup tracked addresses: %w", err)
	}
	block.Transactions = retain(block.Transactions, tracked)
	retained = len(block.Transactions)

	var matured []postgres.MinedBlock
	if height >= s.maturity {
		if matured, err = s.maturedAt(ctx, height-s.maturity); err != nil {
			return err
		}
	}

	cursor := model.Cursor{Height: height, Hash: hash}
	if retained == 0 && len(matured) == 0 {
		if err = s.store.SaveCursor(ctx, cursor); err != nil {
			return err
		}
		s.cursor = &cursor
		return nil
	}

	correlated, err := s.correlator.Correlate(ctx, block, tracked, matured)
	if err != nil {
		return fmt.Errorf("correlate block %d: %w", height, err)
	}
	if err = s.store.InTx(ctx, func(tx Store) error {
		return correlated.Commit(ctx, tx, cursor)
	}); err != nil {
		return fmt.Errorf("commit block %d: %w", height, err)
	}
	s.cursor = &cursor

	s.logger.Info("block ingested",
		zap.Uint64("height", height),
		zap.String("hash", hash),
		zap.Int("transactions", retained),
		zap.Int("matured", len(matured)),
	)
	s.publish(ctx, correlated.Events())
	return nil
}

// maturedAt returns the stored blocks mined at height on the current chain.
func (s *Service) maturedAt(ctx context.Context, height uint64) ([]postgres.MinedBlock, error) {
	hash, err := s.source.BlockHash(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("get matured block hash %d: %w", height, err)
	}
	matured, err := s.store.MinedBlocksAt(ctx, height, hash)
	if err != nil {
		return nil, fmt.Errorf("lookup matured blocks: %w", err)
	}
	return matured, nil
}

// publish runs after commit, so failures are logged and not retried.
func (s *Service) publish(ctx context.Context, events []model.BlockEvent) {
	if s.publisher == nil {
		return
	}
	for _, event := range events {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish block event failed",
				zap.String("event", string(event.Kind)),
				zap.Uint64("height", event.Block.Height),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}
	return clock.WaitOrWake(ctx, d, s.blockSignal)
}

func blockForms(block model.Block) []string {
	seen := make(map[string]struct{})
	var forms []string
	for _, tx := range block.Transactions {
		for _, a := range tx.Addresses() {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			forms = append(forms, a)
		}
	}
	return forms
}

func retain(txs []model.Transaction, tracked []model.Address) []model.Transaction {
	kept := make([]model.Transaction, 0)
	for _, tx := range txs {
		for _, addr := range tracked {
			if tx.Touches(addr) {
				kept = append(kept, tx)
				break
			}
		}
	}
	return kept
}
