// Package classifier resolves user-supplied address strings into canonical,
// typed addresses by asking the node and introspecting contracts.
package classifier

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ERC20 selectors called during introspection.
const (
	selectorName        = "06fdde03"
	selectorSymbol      = "95d89b41"
	selectorDecimals    = "313ce567"
	selectorTotalSupply = "18160ddd"
)

// abiStringHeader is the offset and length words preceding an ABI string.
const abiStringHeader = 128

// Normalizer classifies addresses. Results are memoized by input string and by
// hex form since an address type never changes once resolved.
type Normalizer struct {
	chain  Chain
	memo   *cache.Cache
	logger *zap.Logger
}

// NewNormalizer creates a Normalizer backed by chain.
func NewNormalizer(chain Chain, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		chain:  chain,
		memo:   cache.New(cache.NoExpiration, 0),
		logger: logger.Named("classifier"),
	}
}

// Normalize resolves raw into a typed address. Unknown shapes and addresses
// rejected by the node yield model.ErrInvalidAddress.
func (n *Normalizer) Normalize(ctx context.Context, raw string) (model.Address, error) {
	raw = strings.TrimSpace(raw)
	if cached, ok := n.memo.Get(raw); ok {
		return cached.(model.Address), nil
	}

	var (
		addr model.Address
		err  error
	)
	switch len(raw) {
	case model.NativeAddressLen:
		addr, err = n.native(ctx, raw)
	case model.HexAddressLen:
		addr, err = n.hex(ctx, raw)
	default:
		return model.Address{}, fmt.Errorf("%w: %q has bad length", model.ErrInvalidAddress, raw)
	}
	if err != nil {
		return model.Address{}, err
	}

	n.memo.SetDefault(raw, addr)
	n.memo.SetDefault(addr.Hex, addr)
	return addr, nil
}

func (n *Normalizer) native(ctx context.Context, raw string) (model.Address, error) {
	canonical, valid, err := n.chain.Validate(ctx, raw)
	if err != nil {
		return model.Address{}, fmt.Errorf("validate address %s: %w", raw, err)
	}
	if !valid {
		return model.Address{}, fmt.Errorf("%w: %q rejected by node", model.ErrInvalidAddress, raw)
	}
	if canonical == "" {
		canonical = raw
	}
	hexAddr, err := n.chain.HexForm(ctx, canonical)
	if err != nil {
		return model.Address{}, fmt.Errorf("get hex address %s: %w", canonical, err)
	}
	return model.Address{Type: model.AddressNative, Native: canonical, Hex: strings.ToLower(hexAddr)}, nil
}

func (n *Normalizer) hex(ctx context.Context, raw string) (model.Address, error) {
	hexAddr, err := parseHex(raw)
	if err != nil {
		return model.Address{}, err
	}
	if cached, ok := n.memo.Get(hexAddr); ok {
		return cached.(model.Address), nil
	}

	native, err := n.chain.NativeForm(ctx, hexAddr)
	if err != nil {
		return model.Address{}, fmt.Errorf("get native address %s: %w", hexAddr, err)
	}
	addr := model.Address{Type: model.AddressNative, Hex: hexAddr, Native: native}
	n.introspect(ctx, &addr)
	return addr, nil
}

// introspect promotes addr to Contract when name() answers over RPC and to
// Token when symbol, decimals and totalSupply all succeed.
func (n *Normalizer) introspect(ctx context.Context, addr *model.Address) {
	ok, out, err := n.chain.CallReadOnly(ctx, addr.Hex, selectorName)
	if err != nil {
		// No contract at this address: a hex-form account.
		return
	}
	addr.Type = model.AddressContract
	log := n.logger.With(zap.String("contract", addr.Hex))
	if ok {
		name, err := decodeString(out)
		if err != nil {
			log.Warn("contract name undecodable", zap.Error(err))
		}
		addr.Name = name
	}

	token, err := n.token(ctx, addr.Hex)
	switch {
	case err != nil:
		log.Warn("token introspection failed, keeping contract", zap.Error(err))
	case token != nil:
		addr.Type = model.AddressToken
		addr.Token = token
	}
}

var errNotToken = errors.New("not a token")

func (n *Normalizer) token(ctx context.Context, hexAddr string) (*model.TokenFacet, error) {
	call := func(selector string) (string, error) {
		ok, out, err := n.chain.CallReadOnly(ctx, hexAddr, selector)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errNotToken
		}
		return out, nil
	}

	symbolOut, err := call(selectorSymbol)
	if errors.Is(err, errNotToken) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("call symbol: %w", err)
	}
	decimalsOut, err := call(selectorDecimals)
	if errors.Is(err, errNotToken) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("call decimals: %w", err)
	}
	supplyOut, err := call(selectorTotalSupply)
	if errors.Is(err, errNotToken) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("call totalSupply: %w", err)
	}

	symbol, err := decodeString(symbolOut)
	if err != nil {
		return nil, fmt.Errorf("decode symbol: %w", err)
	}
	decimals, err := decodeUint(decimalsOut)
	if err != nil {
		return nil, fmt.Errorf("decode decimals: %w", err)
	}
	if !decimals.IsUint64() || decimals.Uint64() > 255 {
		return nil, fmt.Errorf("decimals %s out of range", decimals)
	}
	supply, err := decodeUint(supplyOut)
	if err != nil {
		return nil, fmt.Errorf("decode totalSupply: %w", err)
	}

	d := uint8(decimals.Uint64())
	return &model.TokenFacet{
		Symbol:      symbol,
		Decimals:    d,
		TotalSupply: decimal.NewFromBigInt(supply, -int32(d)),
	}, nil
}

// parseHex accepts any hex integer that fits in 20 bytes and left-pads it.
func parseHex(raw string) (string, error) {
	v, ok := new(big.Int).SetString(strings.TrimPrefix(strings.ToLower(raw), "0x"), 16)
	if !ok || v.Sign() < 0 || v.BitLen() > 160 {
		return "", fmt.Errorf("%w: %q is not a hex address", model.ErrInvalidAddress, raw)
	}
	return fmt.Sprintf("%040x", v), nil
}

func decodeString(out string) (string, error) {
	if len(out) <= abiStringHeader {
		return "", nil
	}
	b, err := hex.DecodeString(out[abiStringHeader:])
	if err != nil {
		return "", err
	}
	s := strings.ReplaceAll(string(b), "\x00", "")
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("invalid utf-8 in %q", s)
	}
	return s, nil
}

func decodeUint(out string) (*big.Int, error) {
	if out == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(out, 16)
	if !ok {
		return nil, fmt.Errorf("bad integer output %q", out)
	}
	return v, nil
}
