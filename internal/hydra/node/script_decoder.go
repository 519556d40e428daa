package node

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// Contract output opcodes.
const (
	opCreate = 0xc1
	opCall   = 0xc2
)

// ScriptDecoder extracts the owning address of an output.
type ScriptDecoder struct {
	params *chaincfg.Params
}

// NewScriptDecoder initializes a decoder for the given chain params.
func NewScriptDecoder(params *chaincfg.Params) *ScriptDecoder {
	return &ScriptDecoder{params: params}
}

// Address returns the first address paid by vout. Contract calls resolve to the
// 40-char hex of the called contract. Unknown scripts yield "".
func (d *ScriptDecoder) Address(vout btcjson.Vout) (string, error) {
	if len(vout.ScriptPubKey.Addresses) > 0 {
		return vout.ScriptPubKey.Addresses[0], nil
	}
	if vout.ScriptPubKey.Address != "" {
		return vout.ScriptPubKey.Address, nil
	}
	if vout.ScriptPubKey.Hex == "" {
		return "", nil
	}

	script, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return "", err
	}
	if contract, ok := calledContract(script); ok {
		return contract, nil
	}

	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return "", err
	}
	if len(addrs) == 0 {
		return "", nil
	}
	return addrs[0].EncodeAddress(), nil
}

// IsContractOutput reports whether vout creates or calls a contract.
func IsContractOutput(vout btcjson.Vout) bool {
	switch vout.ScriptPubKey.Type {
	case "call", "create", "call_sender", "create_sender":
		return true
	}
	script, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil || len(script) == 0 {
		return false
	}
	last := script[len(script)-1]
	return last == opCall || last == opCreate
}

// calledContract finds the 20-byte push that precedes OP_CALL.
func calledContract(script []byte) (string, bool) {
	var last []byte
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		if tokenizer.Opcode() == opCall {
			if len(last) == 20 {
				return hex.EncodeToString(last), true
			}
			return "", false
		}
		last = tokenizer.Data()
	}
	return "", false
}
