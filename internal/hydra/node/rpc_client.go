package node

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// RPCClient wraps the btcd rpc client with metrics instrumentation and the
// Hydra-specific methods that btcd has no typed helpers for.
type RPCClient struct {
	client     RawCaller
	rpcMetrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client.
func NewRPCClient(client RawCaller, rpcMetrics RPCMetrics) *RPCClient {
	return &RPCClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// GetBlockCount returns the latest block height.
func (r *RPCClient) GetBlockCount() (count int64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

// GetBlockHash returns the block hash for a height.
func (r *RPCClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

// GetBlockVerboseTx returns a block with decoded transactions (verbosity 2).
func (r *RPCClient) GetBlockVerboseTx(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_verbose_tx", err, started)
	}()
	return r.client.GetBlockVerboseTx(blockHash)
}

// GetRawTransaction returns the serialized transaction as hex.
func (r *RPCClient) GetRawTransaction(txid string) (raw string, err error) {
	err = r.raw("get_raw_transaction", "getrawtransaction", &raw, txid, false)
	return raw, err
}

// DecodeRawTransaction asks the node to decode a serialized transaction.
func (r *RPCClient) DecodeRawTransaction(serializedTx []byte) (res *btcjson.TxRawResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("decode_raw_transaction", err, started)
	}()
	return r.client.DecodeRawTransaction(serializedTx)
}

// ValidateAddress validates a native address.
func (r *RPCClient) ValidateAddress(address string) (*ValidateAddressResult, error) {
	var res ValidateAddressResult
	if err := r.raw("validate_address", "validateaddress", &res, address); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetHexAddress converts a native address to its hex form.
func (r *RPCClient) GetHexAddress(address string) (hex string, err error) {
	err = r.raw("get_hex_address", "gethexaddress", &hex, address)
	return hex, err
}

// FromHexAddress converts a hex address to its native form.
func (r *RPCClient) FromHexAddress(hexAddress string) (native string, err error) {
	err = r.raw("from_hex_address", "fromhexaddress", &native, hexAddress)
	return native, err
}

// CallContract runs a read-only contract call.
func (r *RPCClient) CallContract(hexAddress, data string) (*CallContractResult, error) {
	var res CallContractResult
	if err := r.raw("call_contract", "callcontract", &res, hexAddress, data); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetAddressBalance returns the address index balance of a native address.
func (r *RPCClient) GetAddressBalance(address string) (*AddressBalanceResult, error) {
	var res AddressBalanceResult
	if err := r.raw("get_address_balance", "getaddressbalance", &res, map[string][]string{"addresses": {address}}); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetTransactionReceipt returns the EVM receipts of a transaction.
func (r *RPCClient) GetTransactionReceipt(txid string) ([]TransactionReceipt, error) {
	var res []TransactionReceipt
	if err := r.raw("get_transaction_receipt", "gettransactionreceipt", &res, txid); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *RPCClient) raw(operation, method string, out any, params ...any) (err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe(operation, err, started)
	}()

	rawParams := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		b, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal %s param: %w", method, err)
		}
		rawParams = append(rawParams, b)
	}

	res, err := r.client.RawRequest(method, rawParams)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if err = json.Unmarshal(res, out); err != nil {
		return fmt.Errorf("decode %s reply: %w", method, err)
	}
	return nil
}
