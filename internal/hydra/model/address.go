package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AddressType discriminates native accounts, smart contracts and tokens.
type AddressType string

var (
	// AddressNative is a plain account, reachable in both native and hex form.
	AddressNative AddressType = "native"
	// AddressContract is a hex address occupied by contract code.
	AddressContract AddressType = "contract"
	// AddressToken is a contract exposing symbol, decimals and totalSupply.
	AddressToken AddressType = "token"
)

// Address lengths by form.
const (
	NativeAddressLen = 34
	HexAddressLen    = 40
)

// TokenFacet carries the metadata captured when a contract is promoted to a token.
type TokenFacet struct {
	Symbol      string          `json:"symbol"`
	Decimals    uint8           `json:"decimals"`
	TotalSupply decimal.Decimal `json:"totalSupply"`
}

// Address is the canonical identity of anything a user can subscribe to.
type Address struct {
	ID              int64
	Type            AddressType
	Hex             string
	Native          string
	Name            string
	Token           *TokenFacet
	Info            AccountInfo
	Height          uint64
	SubscriberCount int64
	CreatedAt       time.Time
}

// IsContract reports whether the address holds contract code (tokens included).
func (a Address) IsContract() bool {
	return a.Type == AddressContract || a.Type == AddressToken
}

// IsToken reports whether the address carries a token facet.
func (a Address) IsToken() bool {
	return a.Type == AddressToken && a.Token != nil
}

// Matches reports whether s is either form of the address.
func (a Address) Matches(s string) bool {
	if s == "" {
		return false
	}
	return s == a.Native || strings.EqualFold(s, a.Hex)
}

// Ref returns the wire identity of the address.
func (a Address) Ref() AddressRef {
	return AddressRef{Hex: a.Hex, Native: a.Native}
}

func (a Address) String() string {
	return a.Native
}

// AddressRef identifies an address on the wire without its cached state.
type AddressRef struct {
	Hex    string `json:"hex"`
	Native string `json:"native"`
}

// AccountInfo is the cached account snapshot of an address. Amounts are base units.
type AccountInfo struct {
	Balance       int64                      `json:"balance,omitempty"`
	Staking       int64                      `json:"staking,omitempty"`
	Mature        int64                      `json:"mature,omitempty"`
	BlocksMined   int64                      `json:"blocksMined,omitempty"`
	TokenBalances map[string]decimal.Decimal `json:"tokenBalances,omitempty"`
}

// IsEmpty reports whether nothing was ever cached for the address.
func (i AccountInfo) IsEmpty() bool {
	return i.Balance == 0 && i.Staking == 0 && i.Mature == 0 && i.BlocksMined == 0 && len(i.TokenBalances) == 0
}

// TokenBalance reports the cached balance for token hex, if the snapshot carries one.
func (i AccountInfo) TokenBalance(tokenHex string) (decimal.Decimal, bool) {
	if i.TokenBalances == nil {
		return decimal.Zero, false
	}
	v, ok := i.TokenBalances[strings.ToLower(tokenHex)]
	return v, ok
}

// TokenAddressBalance is the cached balance of a holder address for a token.
// TokenHex is filled on reads only.
type TokenAddressBalance struct {
	TokenID   int64
	TokenHex  string
	AddressID int64
	Balance   *decimal.Decimal
	UpdatedAt time.Time
}

// TokenHolder pairs a token with a holder address for balance refreshes.
type TokenHolder struct {
	Token  Address
	Holder Address
}
