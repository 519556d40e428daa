package registry

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Normalizer interface {
		Normalize(ctx context.Context, raw string) (model.Address, error)
	}

	Tracker interface {
		BalanceOf(ctx context.Context, token, holder model.Address) (decimal.Decimal, error)
	}

	// Store is the relational store as seen by the registry. InTx hands fn a
	// Store bound to one database transaction.
	Store interface {
		InTx(ctx context.Context, fn func(tx Store) error) error
		UserByExternalID(ctx context.Context, externalID int64) (model.User, error)
		CreateUser(ctx context.Context, externalID int64, fiat string) (model.User, error)
		UpdateUserConfig(ctx context.Context, userID int64, cfg model.Config) error
		DeleteUser(ctx context.Context, userID int64) error
		AddressByHex(ctx context.Context, hexAddr string) (model.Address, error)
		CreateAddress(ctx context.Context, addr model.Address) (model.Address, error)
		AdjustSubscriberCount(ctx context.Context, addressID, delta int64) (int64, error)
		GCAddress(ctx context.Context, addressID int64) (bool, error)
		InsertSubscription(ctx context.Context, userID int64, addr model.Address, name string, cfg model.Config) (bool, error)
		DeleteSubscription(ctx context.Context, userID int64, addr model.Address) (bool, error)
		UpdateSubscriptionConfig(ctx context.Context, userID int64, addr model.Address, cfg model.Config) error
		UserSubscriptions(ctx context.Context, userID int64) ([]model.Address, []model.Address, error)
		Subscribers(ctx context.Context, hexes []string) ([]model.Subscriber, error)
		UpsertTokenBalances(ctx context.Context, balances []model.TokenAddressBalance) error
	}
)
