// Package natsink hands rendered notifications to an external delivery
// service over NATS.
package natsink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/notify"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

const DefaultSubject = "hydra.notifications"

// Publisher is the part of *nats.Conn the sink uses.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Envelope is the wire format of one notification.
type Envelope struct {
	ChatID    int64  `json:"chatId"`
	Text      string `json:"text"`
	ParseMode string `json:"parseMode,omitempty"`
}

type Sink struct {
	conn    Publisher
	subject string
}

func New(conn Publisher, subject string) *Sink {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Sink{conn: conn, subject: subject}
}

func (s *Sink) Name() string {
	return "nats"
}

// Send publishes msg. A slow consumer on the server side is reported as a
// rate limit so the dispatcher backs off once.
func (s *Sink) Send(_ context.Context, chatID int64, msg notify.Message) error {
	data, err := json.Marshal(Envelope{ChatID: chatID, Text: msg.Text, ParseMode: msg.ParseMode})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	err = s.conn.Publish(s.subject, data)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, nats.ErrSlowConsumer), errors.Is(err, nats.ErrReconnectBufExceeded):
		return &notify.RateLimitedError{RetryAfter: nats.DefaultReconnectWait}
	default:
		return fmt.Errorf("publish notification: %w", err)
	}
}
