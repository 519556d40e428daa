// Package notify turns block events into per-subscriber notifications: it
// resolves each subscriber's policy, accounts the address deltas, renders the
// messages and hands them to a sink.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

const (
	seenTTL     = 6 * time.Hour
	seenCleanup = 30 * time.Minute
)

// Engine handles feed events. Handling has no side effects apart from sends,
// so redelivered events are harmless; recently seen ids are skipped anyway.
type Engine struct {
	store      Store
	oracle     Oracle
	formatter  *Formatter
	dispatcher *Dispatcher
	metrics    DispatcherMetrics
	seen       *cache.Cache
	logger     *zap.Logger
}

// NewEngine wires an Engine. oracle may be nil, which disables fiat values.
func NewEngine(store Store, oracle Oracle, formatter *Formatter, dispatcher *Dispatcher, metrics DispatcherMetrics, logger *zap.Logger) (*Engine, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is nil")
	}
	if metrics == nil {
		return nil, errors.New("metrics is nil")
	}
	return &Engine{
		store:      store,
		oracle:     oracle,
		formatter:  formatter,
		dispatcher: dispatcher,
		metrics:    metrics,
		seen:       cache.New(seenTTL, seenCleanup),
		logger:     logger,
	}, nil
}

// Handle notifies every subscriber of every address the event touched.
func (e *Engine) Handle(ctx context.Context, ev model.BlockEvent) error {
	if _, dup := e.seen.Get(ev.ID); dup {
		e.metrics.ObserveEvent(string(ev.Kind), "duplicate")
		e.logger.Debug("skip duplicate event", zap.String("event_id", ev.ID))
		return nil
	}

	hexes := make([]string, 0, len(ev.Deltas))
	for _, d := range ev.Deltas {
		hexes = append(hexes, strings.ToLower(d.Address.Hex))
	}
	subs, err := e.store.Subscribers(ctx, hexes)
	if err != nil {
		e.metrics.ObserveEvent(string(ev.Kind), "error")
		return fmt.Errorf("load subscribers of block %d: %w", ev.Block.Height, err)
	}

	byHex := make(map[string][]model.Subscriber, len(subs))
	for _, s := range subs {
		hex := strings.ToLower(s.Address.Hex)
		byHex[hex] = append(byHex[hex], s)
	}

	quotes := make(map[string]Quote)
	sent := 0
	for _, d := range ev.Deltas {
		for _, sub := range byHex[strings.ToLower(d.Address.Hex)] {
			sent += e.notify(ctx, ev, d, sub, quotes)
		}
	}

	e.seen.SetDefault(ev.ID, struct{}{})
	e.metrics.ObserveEvent(string(ev.Kind), "success")
	e.logger.Info("block event handled",
		zap.String("event_id", ev.ID),
		zap.String("event", string(ev.Kind)),
		zap.Uint64("height", ev.Block.Height),
		zap.Int("messages", sent),
	)
	return nil
}

// notify renders and dispatches everything one subscriber gets for one
// address delta and returns the number of messages dispatched.
func (e *Engine) notify(ctx context.Context, ev model.BlockEvent, d model.AddressDelta, sub model.Subscriber, quotes map[string]Quote) int {
	user := sub.Subscription.User
	p := Resolve(user.Config, sub.Subscription.Config)
	subj := Subject{Ref: d.Address, Subscription: sub.Subscription}
	record := model.Notification{
		EventID:   ev.ID,
		Event:     ev.Kind,
		Height:    ev.Block.Height,
		BlockHash: ev.Block.Hash,
		Address:   d.Address.Native,
		UserID:    user.ID,
	}

	var sent int
	send := func(chats []int64, msg Message) {
		if len(chats) == 0 {
			return
		}
		e.dispatcher.Dispatch(ctx, record, chats, msg)
		sent += len(chats)
	}

	switch ev.Kind {
	case model.EventCreate:
		if d.Mined {
			chats := Destinations(p.Notify, user.ExternalID)
			send(chats, e.formatter.Block(ev.Block, d, subj, p, e.quote(ctx, user.Fiat, quotes)))
			if p.Bal == model.Full {
				send(chats, e.formatter.Summary(e.summaryInfo(ctx, d, sub), subj, e.quote(ctx, user.Fiat, quotes)))
			}
		}

		if p.TX == model.Hide {
			break
		}
		act := BlockActivity(ev.Block, d.Address, d.Mined)
		if act.Empty() {
			break
		}
		chats := Destinations(p.TxNotify, user.ExternalID)
		send(chats, e.formatter.Tx(ev.Block, act, subj, e.quote(ctx, user.Fiat, quotes)))
		if p.TX == model.Full {
			send(chats, e.formatter.Summary(e.summaryInfo(ctx, d, sub), subj, e.quote(ctx, user.Fiat, quotes)))
		}

	case model.EventMature:
		if p.Mature == model.Hide {
			break
		}
		chats := Destinations(p.Notify, user.ExternalID)
		send(chats, e.formatter.Mature(ev.Block, d, subj))
		if p.Mature == model.Full {
			send(chats, e.formatter.Summary(e.summaryInfo(ctx, d, sub), subj, e.quote(ctx, user.Fiat, quotes)))
		}

	default:
		e.logger.Warn("unknown event kind", zap.String("event", string(ev.Kind)))
	}
	return sent
}

// summaryInfo completes the token balances of d with the ones cached for the
// subscribed address. Balances carried by the event win.
func (e *Engine) summaryInfo(ctx context.Context, d model.AddressDelta, sub model.Subscriber) model.AccountInfo {
	info := d.InfoNew
	stored, err := e.store.TokenBalances(ctx, sub.Subscription.AddressID)
	if err != nil {
		e.logger.Debug("cached token balances unavailable",
			zap.Int64("address_id", sub.Subscription.AddressID), zap.Error(err))
		return info
	}
	if len(stored) == 0 {
		return info
	}
	merged := make(map[string]decimal.Decimal, len(info.TokenBalances)+len(stored))
	for _, b := range stored {
		if b.Balance != nil && b.TokenHex != "" {
			merged[strings.ToLower(b.TokenHex)] = *b.Balance
		}
	}
	for hex, v := range info.TokenBalances {
		merged[hex] = v
	}
	if len(merged) > 0 {
		info.TokenBalances = merged
	}
	return info
}

// quote fetches the unit price once per currency and event. Oracle failures
// only drop the fiat values.
func (e *Engine) quote(ctx context.Context, currency string, quotes map[string]Quote) Quote {
	if e.oracle == nil || currency == "" {
		return Quote{}
	}
	if q, ok := quotes[currency]; ok {
		return q
	}
	price, err := e.oracle.Value(ctx, currency, decimal.NewFromInt(1))
	if err != nil {
		e.logger.Debug("fiat price unavailable", zap.String("currency", currency), zap.Error(err))
		price = decimal.Zero
	}
	q := Quote{Currency: currency, Price: price}
	quotes[currency] = q
	return q
}
