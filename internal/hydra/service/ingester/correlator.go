package ingester

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/repository/postgres"
)

// Correlated is a block joined with the tracked addresses it touched, ready to
// be committed. All chain lookups have already been made.
type Correlated struct {
	Block    model.Block
	Links    []link
	Touched  []model.AddressDelta
	Matured  []model.BlockEvent
	Balances []model.TokenAddressBalance

	refreshed []refreshedAddress
	miners    []minedBy
}

// minedBy points a miner at its entry in Touched.
type minedBy struct {
	addressID int64
	delta     int
}

type link struct {
	addressID int64
	txIndex   int
	mined     bool
}

type refreshedAddress struct {
	id   int64
	info model.AccountInfo
}

// Correlator links retained transactions to tracked addresses and refreshes
// the state of every address that saw new activity.
type Correlator struct {
	source     Source
	classifier Classifier
	tracker    Tracker
	store      Store
	logger     *zap.Logger
}

func NewCorrelator(source Source, classifier Classifier, tracker Tracker, store Store, logger *zap.Logger) *Correlator {
	return &Correlator{
		source:     source,
		classifier: classifier,
		tracker:    tracker,
		store:      store,
		logger:     logger,
	}
}

// Correlate builds the links and refreshed snapshots for block. block must only
// carry retained transactions. matured are stored blocks whose reward matures
// at this height; their miners are refreshed as well.
func (c *Correlator) Correlate(ctx context.Context, block model.Block, tracked []model.Address, matured []postgres.MinedBlock) (Correlated, error) {
	out := Correlated{Block: block}

	c.annotateTransfers(ctx, out.Block.Transactions, tracked)

	type touch struct {
		addr  model.Address
		mined bool
	}
	var (
		order   []int64
		touched = make(map[int64]*touch)
		tokens  []string
	)
	for _, tx := range out.Block.Transactions {
		for _, tt := range tx.TokenTransfers {
			tokens = append(tokens, tt.Contract)
		}
		for _, addr := range tracked {
			if !tx.Touches(addr) {
				continue
			}
			mined := tx.IsReward() && addr.Matches(block.Miner)
			out.Links = append(out.Links, link{addressID: addr.ID, txIndex: tx.Index, mined: mined})
			t, ok := touched[addr.ID]
			if !ok {
				t = &touch{addr: addr}
				touched[addr.ID] = t
				order = append(order, addr.ID)
			}
			if mined {
				t.mined = true
			}
		}
	}

	fresh := make(map[int64]model.AccountInfo)
	refresh := func(addr model.Address) error {
		if _, ok := fresh[addr.ID]; ok {
			return nil
		}
		info, err := c.accountInfo(ctx, addr)
		if err != nil {
			return err
		}
		fresh[addr.ID] = info
		return nil
	}

	for _, id := range order {
		if err := refresh(touched[id].addr); err != nil {
			return Correlated{}, err
		}
	}
	for _, mb := range matured {
		if err := refresh(mb.Miner); err != nil {
			return Correlated{}, err
		}
	}

	holders, err := c.store.TokenHolders(ctx, keys(fresh), tokens)
	if err != nil {
		return Correlated{}, fmt.Errorf("load token holders: %w", err)
	}
	for i := range holders {
		if info, ok := fresh[holders[i].Holder.ID]; ok {
			holders[i].Holder.Info = info
		} else {
			holders[i].Holder.Info = model.AccountInfo{}
		}
	}
	if len(holders) > 0 {
		if out.Balances, err = c.tracker.Refresh(ctx, holders); err != nil {
			return Correlated{}, fmt.Errorf("refresh token balances: %w", err)
		}
	}

	oldInfo := make(map[int64]model.AccountInfo)
	for _, id := range order {
		oldInfo[id] = touched[id].addr.Info
	}
	for _, mb := range matured {
		oldInfo[mb.Miner.ID] = mb.Miner.Info
	}
	for id := range fresh {
		info := fresh[id]
		old := oldInfo[id]
		info.BlocksMined = old.BlocksMined
		if t, ok := touched[id]; ok && t.mined {
			info.BlocksMined++
		}
		info.TokenBalances = mergeBalances(old.TokenBalances, holders, out.Balances, id)
		fresh[id] = info
	}

	for _, id := range order {
		t := touched[id]
		out.Touched = append(out.Touched, model.AddressDelta{
			Address: t.addr.Ref(),
			Mined:   t.mined,
			InfoOld: t.addr.Info,
			InfoNew: fresh[id],
		})
		out.refreshed = append(out.refreshed, refreshedAddress{id: id, info: fresh[id]})
		if t.mined {
			out.miners = append(out.miners, minedBy{addressID: id, delta: len(out.Touched) - 1})
		}
	}
	for _, mb := range matured {
		if _, ok := touched[mb.Miner.ID]; !ok {
			out.refreshed = append(out.refreshed, refreshedAddress{id: mb.Miner.ID, info: fresh[mb.Miner.ID]})
		}
		out.Matured = append(out.Matured, model.NewBlockEvent(model.EventMature, mb.Block, []model.AddressDelta{{
			Address: mb.Miner.Ref(),
			Mined:   true,
			InfoOld: mb.Miner.Info,
			InfoNew: fresh[mb.Miner.ID],
		}}))
	}

	return out, nil
}

// Commit writes c and the new cursor through tx. Mined deltas in Touched get
// the time of the previous block their address mined.
func (c *Correlated) Commit(ctx context.Context, tx Store, cursor model.Cursor) error {
	if len(c.Block.Transactions) > 0 {
		blockID, err := tx.InsertBlock(ctx, c.Block)
		if err != nil {
			return err
		}
		txIDs := make(map[int]int64, len(c.Block.Transactions))
		for _, t := range c.Block.Transactions {
			id, err := tx.InsertTransaction(ctx, blockID, t)
			if err != nil {
				return err
			}
			txIDs[t.Index] = id
		}
		links := make([]model.AddressTransactionLink, 0, len(c.Links))
		for _, l := range c.Links {
			links = append(links, model.AddressTransactionLink{
				AddressID:     l.addressID,
				TransactionID: txIDs[l.txIndex],
				Mined:         l.mined,
			})
		}
		if err := tx.InsertAddressTransactions(ctx, links); err != nil {
			return err
		}
	}

	for _, r := range c.refreshed {
		if err := tx.UpdateAddressInfo(ctx, r.id, r.info, c.Block.Height); err != nil {
			return err
		}
	}
	for _, m := range c.miners {
		prev, err := tx.RecordMinedBlock(ctx, m.addressID, c.Block.Time)
		if err != nil {
			return err
		}
		c.Touched[m.delta].PrevBlockAt = prev
	}
	if err := tx.UpsertTokenBalances(ctx, c.Balances); err != nil {
		return err
	}
	return tx.SaveCursor(ctx, cursor)
}

// Events returns the feed events to publish once c is committed.
func (c *Correlated) Events() []model.BlockEvent {
	events := make([]model.BlockEvent, 0, 1+len(c.Matured))
	if len(c.Block.Transactions) > 0 {
		events = append(events, model.NewBlockEvent(model.EventCreate, c.Block, c.Touched))
	}
	return append(events, c.Matured...)
}

func (c *Correlator) accountInfo(ctx context.Context, addr model.Address) (model.AccountInfo, error) {
	if addr.IsContract() {
		return model.AccountInfo{}, nil
	}
	info, err := c.source.AccountInfo(ctx, addr.Native)
	if err != nil {
		return model.AccountInfo{}, fmt.Errorf("refresh account %s: %w", addr.Native, err)
	}
	return info, nil
}

// annotateTransfers scales raw transfer amounts by the token decimals and
// attaches name and symbol. Unknown contracts keep raw values.
func (c *Correlator) annotateTransfers(ctx context.Context, txs []model.Transaction, tracked []model.Address) {
	for i := range txs {
		for j := range txs[i].TokenTransfers {
			tt := &txs[i].TokenTransfers[j]
			token, ok := trackedToken(tracked, tt.Contract)
			if !ok {
				addr, err := c.classifier.Normalize(ctx, tt.Contract)
				if err != nil {
					c.logger.Debug("classify transfer contract failed", zap.String("contract", tt.Contract), zap.Error(err))
					continue
				}
				token = addr
			}
			tt.Name = token.Name
			if !token.IsToken() {
				continue
			}
			tt.Symbol = token.Token.Symbol
			if !tt.IsNFT() {
				tt.Value = tt.Value.Shift(-int32(token.Token.Decimals))
			}
		}
	}
}

func trackedToken(tracked []model.Address, contract string) (model.Address, bool) {
	for _, addr := range tracked {
		if addr.IsContract() && strings.EqualFold(addr.Hex, contract) {
			return addr, true
		}
	}
	return model.Address{}, false
}

func mergeBalances(old map[string]decimal.Decimal, holders []model.TokenHolder, balances []model.TokenAddressBalance, holderID int64) map[string]decimal.Decimal {
	merged := make(map[string]decimal.Decimal, len(old))
	for k, v := range old {
		merged[k] = v
	}
	for i, b := range balances {
		if b.AddressID != holderID || b.Balance == nil || i >= len(holders) {
			continue
		}
		merged[strings.ToLower(holders[i].Token.Hex)] = *b.Balance
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func keys(m map[int64]model.AccountInfo) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
