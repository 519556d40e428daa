package feed

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Handler processes one feed event. Errors are logged and counted; the feed
// keeps going.
type Handler func(ctx context.Context, ev model.BlockEvent) error

type (
	Metrics interface {
		ObserveReceived(err error)
		ObservePublished(err error)
		ObserveReconnect()
	}

	Publisher interface {
		Publish(ctx context.Context, ev model.BlockEvent) error
	}

	// Conn is the part of *nats.Conn the feed uses.
	Conn interface {
		Publish(subject string, data []byte) error
		QueueSubscribe(subject, queue string, cb nats.MsgHandler) (*nats.Subscription, error)
	}
)
