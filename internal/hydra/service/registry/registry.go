// Package registry manages users and their address and token subscriptions.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

const (
	defaultFiat = "USD"

	userCacheTTL     = time.Hour
	userCacheCleanup = 10 * time.Minute
)

// Registry is the single entry point for subscription changes. Each change
// runs in one database transaction.
type Registry struct {
	normalizer Normalizer
	tracker    Tracker
	store      Store
	users      *cache.Cache
	logger     *zap.Logger
	now        func() time.Time
}

func New(normalizer Normalizer, tracker Tracker, store Store, logger *zap.Logger) *Registry {
	return &Registry{
		normalizer: normalizer,
		tracker:    tracker,
		store:      store,
		users:      cache.New(userCacheTTL, userCacheCleanup),
		logger:     logger,
		now:        time.Now,
	}
}

// Subscribe starts following raw for the user, creating the user and the
// address on first use. An empty name defaults to a shortened address.
func (r *Registry) Subscribe(ctx context.Context, externalID int64, raw, name string) (model.Address, error) {
	candidate, err := r.normalizer.Normalize(ctx, raw)
	if err != nil {
		return model.Address{}, fmt.Errorf("normalize %q: %w", raw, err)
	}
	if name == "" {
		name = DisplayName(candidate)
	}

	var (
		user    model.User
		addr    model.Address
		pending []model.TokenHolder
	)
	err = r.store.InTx(ctx, func(tx Store) error {
		var err error
		if user, err = r.ensureUser(ctx, tx, externalID); err != nil {
			return err
		}
		if addr, err = ensureAddress(ctx, tx, candidate); err != nil {
			return err
		}

		created, err := tx.InsertSubscription(ctx, user.ID, addr, name, model.Config{})
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		if addr.SubscriberCount, err = tx.AdjustSubscriberCount(ctx, addr.ID, 1); err != nil {
			return err
		}

		if pending, err = holderPairs(ctx, tx, user.ID, addr); err != nil {
			return err
		}
		rows := make([]model.TokenAddressBalance, 0, len(pending))
		for _, p := range pending {
			rows = append(rows, model.TokenAddressBalance{TokenID: p.Token.ID, AddressID: p.Holder.ID})
		}
		return tx.UpsertTokenBalances(ctx, rows)
	})
	if err != nil {
		return model.Address{}, fmt.Errorf("subscribe %d to %s: %w", externalID, candidate.Hex, err)
	}
	r.users.SetDefault(cacheKey(externalID), user.ID)

	r.fetchBalances(ctx, pending)
	r.logger.Info("subscribed",
		zap.Int64("user", externalID),
		zap.String("address", addr.Native),
		zap.String("type", string(addr.Type)),
	)
	return addr, nil
}

// Unsubscribe stops following raw and collects the address once nothing
// references it.
func (r *Registry) Unsubscribe(ctx context.Context, externalID int64, raw string) error {
	candidate, err := r.normalizer.Normalize(ctx, raw)
	if err != nil {
		return fmt.Errorf("normalize %q: %w", raw, err)
	}

	err = r.store.InTx(ctx, func(tx Store) error {
		userID, err := r.userID(ctx, tx, externalID)
		if err != nil {
			return err
		}
		addr, err := tx.AddressByHex(ctx, candidate.Hex)
		if err != nil {
			return err
		}
		return unlink(ctx, tx, userID, addr)
	})
	if err != nil {
		return fmt.Errorf("unsubscribe %d from %s: %w", externalID, candidate.Hex, err)
	}
	return nil
}

// SetConfig sets one config key. An empty raw address targets the user
// default, otherwise the override of that subscription. here is the chat the
// command came from.
func (r *Registry) SetConfig(ctx context.Context, externalID int64, raw, key, value string, here int64) error {
	if raw == "" {
		return r.store.InTx(ctx, func(tx Store) error {
			user, err := tx.UserByExternalID(ctx, externalID)
			if err != nil {
				return fmt.Errorf("load user %d: %w", externalID, err)
			}
			cfg := user.Config
			if err = cfg.Set(key, value, here); err != nil {
				return err
			}
			return tx.UpdateUserConfig(ctx, user.ID, cfg)
		})
	}

	candidate, err := r.normalizer.Normalize(ctx, raw)
	if err != nil {
		return fmt.Errorf("normalize %q: %w", raw, err)
	}
	return r.store.InTx(ctx, func(tx Store) error {
		userID, err := r.userID(ctx, tx, externalID)
		if err != nil {
			return err
		}
		addr, err := tx.AddressByHex(ctx, candidate.Hex)
		if err != nil {
			return err
		}
		subs, err := tx.Subscribers(ctx, []string{addr.Hex})
		if err != nil {
			return err
		}
		for _, sub := range subs {
			if sub.Subscription.User.ID != userID {
				continue
			}
			cfg := sub.Subscription.Config
			if err = cfg.Set(key, value, here); err != nil {
				return err
			}
			return tx.UpdateSubscriptionConfig(ctx, userID, addr, cfg)
		}
		return fmt.Errorf("subscription of %d to %s: %w", externalID, addr.Hex, model.ErrNotFound)
	})
}

// Subscriptions lists what the user follows.
func (r *Registry) Subscriptions(ctx context.Context, externalID int64) (addrs, tokens []model.Address, err error) {
	userID, err := r.userID(ctx, r.store, externalID)
	if err != nil {
		return nil, nil, err
	}
	return r.store.UserSubscriptions(ctx, userID)
}

// DeleteUser removes the user with every subscription, collecting addresses
// that become unreferenced.
func (r *Registry) DeleteUser(ctx context.Context, externalID int64) error {
	err := r.store.InTx(ctx, func(tx Store) error {
		user, err := tx.UserByExternalID(ctx, externalID)
		if err != nil {
			return err
		}
		addrs, tokens, err := tx.UserSubscriptions(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, addr := range append(addrs, tokens...) {
			if err = unlink(ctx, tx, user.ID, addr); err != nil {
				return err
			}
		}
		return tx.DeleteUser(ctx, user.ID)
	})
	r.users.Delete(cacheKey(externalID))
	if err != nil {
		return fmt.Errorf("delete user %d: %w", externalID, err)
	}
	return nil
}

func (r *Registry) userID(ctx context.Context, store Store, externalID int64) (int64, error) {
	if id, ok := r.users.Get(cacheKey(externalID)); ok {
		return id.(int64), nil
	}
	user, err := store.UserByExternalID(ctx, externalID)
	if err != nil {
		return 0, fmt.Errorf("load user %d: %w", externalID, err)
	}
	r.users.SetDefault(cacheKey(externalID), user.ID)
	return user.ID, nil
}

func (r *Registry) ensureUser(ctx context.Context, tx Store, externalID int64) (model.User, error) {
	user, err := tx.UserByExternalID(ctx, externalID)
	if errors.Is(err, model.ErrNotFound) {
		user, err = tx.CreateUser(ctx, externalID, defaultFiat)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("ensure user %d: %w", externalID, err)
	}
	return user, nil
}

func ensureAddress(ctx context.Context, tx Store, candidate model.Address) (model.Address, error) {
	addr, err := tx.AddressByHex(ctx, candidate.Hex)
	if errors.Is(err, model.ErrNotFound) {
		addr, err = tx.CreateAddress(ctx, candidate)
	}
	if err != nil {
		return model.Address{}, fmt.Errorf("ensure address %s: %w", candidate.Hex, err)
	}
	return addr, nil
}

// holderPairs lists the balance rows a new subscription needs: the new token
// against every address the user follows, or every followed token against
// the new address.
func holderPairs(ctx context.Context, tx Store, userID int64, addr model.Address) ([]model.TokenHolder, error) {
	addrs, tokens, err := tx.UserSubscriptions(ctx, userID)
	if err != nil {
		return nil, err
	}
	var pairs []model.TokenHolder
	if addr.IsToken() {
		for _, holder := range addrs {
			pairs = append(pairs, model.TokenHolder{Token: addr, Holder: holder})
		}
		return pairs, nil
	}
	for _, token := range tokens {
		pairs = append(pairs, model.TokenHolder{Token: token, Holder: addr})
	}
	return pairs, nil
}

func unlink(ctx context.Context, tx Store, userID int64, addr model.Address) error {
	deleted, err := tx.DeleteSubscription(ctx, userID, addr)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("subscription to %s: %w", addr.Hex, model.ErrNotFound)
	}
	count, err := tx.AdjustSubscriberCount(ctx, addr.ID, -1)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = tx.GCAddress(ctx, addr.ID)
	return err
}

// fetchBalances fills rows created by Subscribe. Rows that fail keep a nil
// balance until the ingester refreshes them.
func (r *Registry) fetchBalances(ctx context.Context, pairs []model.TokenHolder) {
	if len(pairs) == 0 {
		return
	}
	rows := make([]model.TokenAddressBalance, 0, len(pairs))
	for _, p := range pairs {
		balance, err := r.tracker.BalanceOf(ctx, p.Token, p.Holder)
		if err != nil {
			r.logger.Warn("fetch token balance failed",
				zap.String("token", p.Token.Hex),
				zap.String("holder", p.Holder.Hex),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, model.TokenAddressBalance{
			TokenID:   p.Token.ID,
			AddressID: p.Holder.ID,
			Balance:   &balance,
			UpdatedAt: r.now().UTC(),
		})
	}
	if err := r.store.UpsertTokenBalances(ctx, rows); err != nil {
		r.logger.Warn("store token balances failed", zap.Error(err))
	}
}

// DisplayName shortens an address for use as a default subscription name.
func DisplayName(addr model.Address) string {
	if addr.IsToken() && addr.Token.Symbol != "" {
		return addr.Token.Symbol
	}
	if addr.Name != "" {
		return addr.Name
	}
	s := addr.Native
	if s == "" {
		s = addr.Hex
	}
	if len(s) <= 12 {
		return s
	}
	return s[:6] + ".." + s[len(s)-4:]
}

func cacheKey(externalID int64) string {
	return strconv.FormatInt(externalID, 10)
}
