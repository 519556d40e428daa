package node

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

// AddressCodec converts between native and hex address forms without a node round-trip.
type AddressCodec struct {
	params *chaincfg.Params
}

// NewAddressCodec builds a codec for the given chain params.
func NewAddressCodec(params *chaincfg.Params) *AddressCodec {
	return &AddressCodec{params: params}
}

// NativeToHex returns the lowercase hash160 of a native P2PKH address.
func (c *AddressCodec) NativeToHex(native string) (string, error) {
	addr, err := btcutil.DecodeAddress(native, c.params)
	if err != nil {
		return "", fmt.Errorf("%w: decode %q: %v", model.ErrInvalidAddress, native, err)
	}
	pkh, ok := addr.(*btcutil.AddressPubKeyHash)
	if !ok || !pkh.IsForNet(c.params) {
		return "", fmt.Errorf("%w: %q is not a %s key hash address", model.ErrInvalidAddress, native, c.params.Name)
	}
	return hex.EncodeToString(pkh.ScriptAddress()), nil
}

// HexToNative encodes a 40-char hash160 as a native P2PKH address.
func (c *AddressCodec) HexToNative(hexAddr string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(hexAddr), "0x"))
	if err != nil {
		return "", fmt.Errorf("%w: decode hex %q: %v", model.ErrInvalidAddress, hexAddr, err)
	}
	addr, err := btcutil.NewAddressPubKeyHash(raw, c.params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidAddress, err)
	}
	return addr.EncodeAddress(), nil
}
