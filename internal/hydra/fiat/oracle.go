// Package fiat converts HYDRA amounts to fiat currencies.
package fiat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// StaticOracle prices HYDRA from a fixed table of unit prices.
type StaticOracle struct {
	prices map[string]decimal.Decimal
}

func NewStaticOracle(prices map[string]decimal.Decimal) *StaticOracle {
	table := make(map[string]decimal.Decimal, len(prices))
	for currency, price := range prices {
		table[strings.ToUpper(currency)] = price
	}
	return &StaticOracle{prices: table}
}

// ParseTable reads "USD=0.12,EUR=0.11".
func ParseTable(s string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		currency, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(currency) == "" {
			return nil, fmt.Errorf("parse price %q: want CUR=price", pair)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parse price %q: %w", pair, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("parse price %q: negative price", pair)
		}
		prices[strings.ToUpper(strings.TrimSpace(currency))] = price
	}
	return prices, nil
}

// Value returns amount HYDRA in currency, unrounded.
func (o *StaticOracle) Value(_ context.Context, currency string, amount decimal.Decimal) (decimal.Decimal, error) {
	price, ok := o.prices[strings.ToUpper(currency)]
	if !ok {
		return decimal.Zero, fmt.Errorf("price of %s: %w", currency, ErrUnknownCurrency)
	}
	return price.Mul(amount), nil
}
