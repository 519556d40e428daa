package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func addressColumns(alias string) string {
	cols := []string{
		"id", "type", "hex", "native", "name",
		"token_symbol", "token_decimals", "token_total_supply::text",
		"info", "height", "subscriber_count", "created_at",
	}
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// addressScan holds scan targets for addressColumns.
type addressScan struct {
	addr     model.Address
	typ      string
	symbol   *string
	decimals *int16
	supply   *string
}

func (s *addressScan) dest() []any {
	return []any{
		&s.addr.ID, &s.typ, &s.addr.Hex, &s.addr.Native, &s.addr.Name,
		&s.symbol, &s.decimals, &s.supply,
		&s.addr.Info, &s.addr.Height, &s.addr.SubscriberCount, &s.addr.CreatedAt,
	}
}

func (s *addressScan) address() (model.Address, error) {
	addr := s.addr
	addr.Type = model.AddressType(s.typ)
	if addr.Type != model.AddressToken || s.symbol == nil || s.decimals == nil {
		return addr, nil
	}
	facet := &model.TokenFacet{Symbol: *s.symbol, Decimals: uint8(*s.decimals)}
	if s.supply != nil {
		supply, err := decimal.NewFromString(*s.supply)
		if err != nil {
			return model.Address{}, fmt.Errorf("parse total supply of %s: %w", addr.Hex, err)
		}
		facet.TotalSupply = supply
	}
	addr.Token = facet
	return addr, nil
}

func scanAddress(row pgx.Row) (model.Address, error) {
	var s addressScan
	if err := row.Scan(s.dest()...); err != nil {
		return model.Address{}, err
	}
	return s.address()
}

// blockInfo is the chain metadata kept in blocks.info.
type blockInfo struct {
	Time    time.Time `json:"time"`
	Reward  int64     `json:"reward"`
	TxCount int       `json:"txCount"`
}

// txFlows is the payload kept in transactions.flows.
type txFlows struct {
	Inputs         []model.Flow          `json:"inputs"`
	Outputs        []model.Flow          `json:"outputs"`
	Fee            int64                 `json:"fee"`
	TokenTransfers []model.TokenTransfer `json:"tokenTransfers,omitempty"`
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func decimalFromString(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse numeric %q: %w", s, err)
	}
	return v, nil
}
