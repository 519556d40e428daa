package node

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

// MainNetParams carries the Hydra mainnet address prefixes.
var MainNetParams = chaincfg.Params{
	Name:             "hydra-mainnet",
	Net:              wire.BitcoinNet(0xafeae9f7),
	PubKeyHashAddrID: 0x28,
	ScriptHashAddrID: 0x3f,
	PrivateKeyID:     0x80,
	HDCoinType:       2301,
}

// TestNetParams carries the Hydra testnet address prefixes. Regtest shares them.
var TestNetParams = chaincfg.Params{
	Name:             "hydra-testnet",
	Net:              wire.BitcoinNet(0x07131f03),
	PubKeyHashAddrID: 0x42,
	ScriptHashAddrID: 0x80,
	PrivateKeyID:     0xef,
	HDCoinType:       1,
}

// ParamsForNetwork resolves a network flag value to chain params.
func ParamsForNetwork(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "main", "mainnet":
		return &MainNetParams, nil
	case "test", "testnet", "regtest":
		return &TestNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
