package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/repository/postgres"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		ChainHeight(ctx context.Context) (uint64, error)
		BlockHash(ctx context.Context, height uint64) (string, error)
		Block(ctx context.Context, hash string) (model.Block, error)
		AccountInfo(ctx context.Context, native string) (model.AccountInfo, error)
	}

	Classifier interface {
		Normalize(ctx context.Context, raw string) (model.Address, error)
	}

	Tracker interface {
		Refresh(ctx context.Context, pairs []model.TokenHolder) ([]model.TokenAddressBalance, error)
	}

	// Store is the relational store as seen by the ingester. InTx hands fn a
	// Store bound to one database transaction.
	Store interface {
		InTx(ctx context.Context, fn func(tx Store) error) error
		Cursor(ctx context.Context) (model.Cursor, error)
		MaxBlock(ctx context.Context) (model.Cursor, error)
		SaveCursor(ctx context.Context, cursor model.Cursor) error
		TrackedAddresses(ctx context.Context, forms []string) ([]model.Address, error)
		TokenHolders(ctx context.Context, addressIDs []int64, tokenHexes []string) ([]model.TokenHolder, error)
		MinedBlocksAt(ctx context.Context, height uint64, hash string) ([]postgres.MinedBlock, error)
		InsertBlock(ctx context.Context, block model.Block) (int64, error)
		InsertTransaction(ctx context.Context, blockID int64, tx model.Transaction) (int64, error)
		InsertAddressTransactions(ctx context.Context, links []model.AddressTransactionLink) error
		UpdateAddressInfo(ctx context.Context, addressID int64, info model.AccountInfo, height uint64) error
		UpsertTokenBalances(ctx context.Context, balances []model.TokenAddressBalance) error
		RecordMinedBlock(ctx context.Context, addressID int64, at time.Time) (*time.Time, error)
	}

	Publisher interface {
		Publish(ctx context.Context, event model.BlockEvent) error
	}

	Metrics interface {
		ObserveSync(err error, heights int, started time.Time)
		ObserveProcessHeight(err error, height uint64, retained int, started time.Time)
		ObserveFork()
	}
)
