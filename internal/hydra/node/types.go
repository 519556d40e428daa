package node

import (
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// RawCaller is the subset of rpcclient.Client used by RPCClient.
	RawCaller interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		DecodeRawTransaction(serializedTx []byte) (*btcjson.TxRawResult, error)
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
	}

	// RPC is the node surface consumed by Source.
	RPC interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransaction(txid string) (string, error)
		DecodeRawTransaction(serializedTx []byte) (*btcjson.TxRawResult, error)
		ValidateAddress(address string) (*ValidateAddressResult, error)
		GetHexAddress(address string) (string, error)
		FromHexAddress(hexAddress string) (string, error)
		CallContract(hexAddress, data string) (*CallContractResult, error)
		GetAddressBalance(address string) (*AddressBalanceResult, error)
		GetTransactionReceipt(txid string) ([]TransactionReceipt, error)
	}
)

// ValidateAddressResult is the validateaddress reply.
type ValidateAddressResult struct {
	IsValid bool   `json:"isvalid"`
	Address string `json:"address"`
}

// ExecutionResult is the EVM outcome of a read-only call.
type ExecutionResult struct {
	Excepted string `json:"excepted"`
	Output   string `json:"output"`
}

// Succeeded reports whether the call finished without an EVM exception.
func (r ExecutionResult) Succeeded() bool {
	return r.Excepted == "None"
}

// CallContractResult is the callcontract reply.
type CallContractResult struct {
	Address         string          `json:"address"`
	ExecutionResult ExecutionResult `json:"executionResult"`
}

// AddressBalanceResult is the getaddressbalance reply, in base units.
type AddressBalanceResult struct {
	Balance  int64 `json:"balance"`
	Received int64 `json:"received"`
	Immature int64 `json:"immature"`
}

// ReceiptLog is one EVM log entry.
type ReceiptLog struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

// TransactionReceipt is one element of the gettransactionreceipt reply.
type TransactionReceipt struct {
	TransactionHash  string       `json:"transactionHash"`
	TransactionIndex int          `json:"transactionIndex"`
	ContractAddress  string       `json:"contractAddress"`
	Excepted         string       `json:"excepted"`
	Log              []ReceiptLog `json:"log"`
}
