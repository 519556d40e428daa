package notify

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Sink delivers one message to one chat.
	Sink interface {
		Name() string
		Send(ctx context.Context, chatID int64, msg Message) error
	}

	// Oracle converts an amount of HYDRA into currency.
	Oracle interface {
		Value(ctx context.Context, currency string, amount decimal.Decimal) (decimal.Decimal, error)
	}

	Store interface {
		Subscribers(ctx context.Context, hexes []string) ([]model.Subscriber, error)
		TokenBalances(ctx context.Context, addressID int64) ([]model.TokenAddressBalance, error)
	}

	Archive interface {
		Add(ctx context.Context, record model.Notification) error
	}

	DispatcherMetrics interface {
		ObserveSend(status string, started time.Time)
		ObserveEvent(event, status string)
	}
)
