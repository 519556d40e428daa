package node

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
	"github.com/goodnatureofminers/hydrawatch/pkg/safe"
	"github.com/goodnatureofminers/hydrawatch/pkg/workerpool"
)

const defaultWorkers = 8

// Source exposes the node as context-aware, model-typed operations.
type Source struct {
	rpc     RPC
	decoder *ScriptDecoder
	codec   *AddressCodec
	workers int
}

// NewSource creates a Source. workers bounds concurrent prevout and receipt lookups.
func NewSource(rpc RPC, decoder *ScriptDecoder, workers int) *Source {
	if workers <= 0 {
		workers = defaultWorkers
	}
	src := &Source{rpc: rpc, decoder: decoder, workers: workers}
	if decoder != nil {
		src.codec = NewAddressCodec(decoder.params)
	}
	return src
}

// ChainHeight returns the current chain height.
func (s *Source) ChainHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// BlockHash returns the hash of the block at height.
func (s *Source) BlockHash(ctx context.Context, height uint64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h, err := safe.Int64(height)
	if err != nil {
		return "", fmt.Errorf("block height %d exceeds rpc limit: %w", height, err)
	}
	hash, err := s.rpc.GetBlockHash(h)
	if err != nil {
		return "", fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	return hash.String(), nil
}

// Block fetches the block with every transaction decoded into value flows.
// Prevouts are resolved through getrawtransaction and decoderawtransaction.
func (s *Source) Block(ctx context.Context, hash string) (model.Block, error) {
	h, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return model.Block{}, fmt.Errorf("parse block hash %q: %w", hash, err)
	}
	src, err := s.rpc.GetBlockVerboseTx(h)
	if err != nil {
		return model.Block{}, fmt.Errorf("get block %s: %w", hash, err)
	}
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %s height: %w", hash, err)
	}

	prevouts, err := s.resolvePrevouts(ctx, src.Tx)
	if err != nil {
		return model.Block{}, err
	}
	transfers, err := s.transfers(ctx, src.Tx)
	if err != nil {
		return model.Block{}, err
	}

	block := model.Block{
		Height:       height,
		Hash:         src.Hash,
		Time:         time.Unix(src.Time, 0).UTC(),
		TxCount:      len(src.Tx),
		Transactions: make([]model.Transaction, 0, len(src.Tx)),
	}
	for i, raw := range src.Tx {
		tx, err := s.convertTx(i, raw, prevouts)
		if err != nil {
			return model.Block{}, err
		}
		tx.TokenTransfers = transfers[raw.Txid]
		block.Transactions = append(block.Transactions, tx)
	}

	if len(block.Transactions) > model.RewardTxIndex {
		reward := block.Transactions[model.RewardTxIndex]
		if len(reward.Outputs) > 1 {
			block.Miner = reward.Outputs[1].Address
		}
		block.Reward = -reward.Fee
	}
	return block, nil
}

type outpoint struct {
	txid string
	vout uint32
}

func (s *Source) resolvePrevouts(ctx context.Context, txs []btcjson.TxRawResult) (map[outpoint]model.Flow, error) {
	var txids []string
	seen := make(map[string]struct{})
	for _, tx := range txs {
		for _, vin := range tx.Vin {
			if vin.IsCoinBase() || vin.Txid == "" {
				continue
			}
			if _, ok := seen[vin.Txid]; ok {
				continue
			}
			seen[vin.Txid] = struct{}{}
			txids = append(txids, vin.Txid)
		}
	}

	decoded, err := workerpool.Map(ctx, s.workers, txids, s.decodeTransaction)
	if err != nil {
		return nil, err
	}

	out := make(map[outpoint]model.Flow)
	for i, tx := range decoded {
		for _, vout := range tx.Vout {
			flow, err := s.flow(vout)
			if err != nil {
				return nil, fmt.Errorf("prevout %s:%d: %w", txids[i], vout.N, err)
			}
			out[outpoint{txid: txids[i], vout: vout.N}] = flow
		}
	}
	return out, nil
}

func (s *Source) decodeTransaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rawHex, err := s.rpc.GetRawTransaction(txid)
	if err != nil {
		return nil, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, fmt.Errorf("decode raw transaction %s hex: %w", txid, err)
	}
	tx, err := s.rpc.DecodeRawTransaction(raw)
	if err != nil {
		return nil, fmt.Errorf("decode raw transaction %s: %w", txid, err)
	}
	return tx, nil
}

func (s *Source) transfers(ctx context.Context, txs []btcjson.TxRawResult) (map[string][]model.TokenTransfer, error) {
	var txids []string
	for _, tx := range txs {
		for _, vout := range tx.Vout {
			if IsContractOutput(vout) {
				txids = append(txids, tx.Txid)
				break
			}
		}
	}

	decoded, err := workerpool.Map(ctx, s.workers, txids, func(ctx context.Context, txid string) ([]model.TokenTransfer, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		receipts, err := s.rpc.GetTransactionReceipt(txid)
		if err != nil {
			return nil, fmt.Errorf("get receipt %s: %w", txid, err)
		}
		return TransfersFromReceipts(receipts), nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string][]model.TokenTransfer, len(txids))
	for i, transfers := range decoded {
		if len(transfers) > 0 {
			out[txids[i]] = transfers
		}
	}
	return out, nil
}

func (s *Source) convertTx(index int, raw btcjson.TxRawResult, prevouts map[outpoint]model.Flow) (model.Transaction, error) {
	tx := model.Transaction{
		TxID:    raw.Txid,
		Index:   index,
		Inputs:  make([]model.Flow, 0, len(raw.Vin)),
		Outputs: make([]model.Flow, 0, len(raw.Vout)),
	}

	var in, out int64
	coinbase := false
	for _, vin := range raw.Vin {
		if vin.IsCoinBase() {
			coinbase = true
			continue
		}
		flow, ok := prevouts[outpoint{txid: vin.Txid, vout: vin.Vout}]
		if !ok {
			return model.Transaction{}, fmt.Errorf("tx %s: unresolved prevout %s:%d", raw.Txid, vin.Txid, vin.Vout)
		}
		tx.Inputs = append(tx.Inputs, flow)
		in += flow.Value
	}
	for _, vout := range raw.Vout {
		flow, err := s.flow(vout)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s vout %d: %w", raw.Txid, vout.N, err)
		}
		tx.Outputs = append(tx.Outputs, flow)
		out += flow.Value
	}
	if !coinbase {
		tx.Fee = in - out
	}
	return tx, nil
}

func (s *Source) flow(vout btcjson.Vout) (model.Flow, error) {
	address, err := s.decoder.Address(vout)
	if err != nil {
		return model.Flow{}, fmt.Errorf("decode script: %w", err)
	}
	if vout.Value < 0 || vout.Value > math.MaxInt64/model.Coin {
		return model.Flow{}, fmt.Errorf("output value %v out of range", vout.Value)
	}
	amount, err := btcutil.NewAmount(vout.Value)
	if err != nil {
		return model.Flow{}, fmt.Errorf("convert output value: %w", err)
	}
	return model.Flow{Address: address, Value: int64(amount)}, nil
}

// Validate checks a native address with the node and returns its canonical form.
func (s *Source) Validate(ctx context.Context, native string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	res, err := s.rpc.ValidateAddress(native)
	if err != nil {
		return "", false, err
	}
	return res.Address, res.IsValid, nil
}

// HexForm returns the hex form of a native address. Key hash addresses are
// converted locally; anything else goes through gethexaddress.
func (s *Source) HexForm(ctx context.Context, native string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.codec != nil {
		if hexAddr, err := s.codec.NativeToHex(native); err == nil {
			return hexAddr, nil
		}
	}
	hexAddr, err := s.rpc.GetHexAddress(native)
	if err != nil {
		return "", err
	}
	return strings.ToLower(hexAddr), nil
}

// NativeForm returns the native form of a hex address.
func (s *Source) NativeForm(ctx context.Context, hexAddr string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.codec != nil {
		if native, err := s.codec.HexToNative(hexAddr); err == nil {
			return native, nil
		}
	}
	return s.rpc.FromHexAddress(hexAddr)
}

// CallReadOnly runs a zero-state contract call. An RPC error means the address
// holds no contract; succeeded reports the EVM outcome otherwise.
func (s *Source) CallReadOnly(ctx context.Context, hexAddr, data string) (succeeded bool, output string, err error) {
	if err := ctx.Err(); err != nil {
		return false, "", err
	}
	res, err := s.rpc.CallContract(hexAddr, data)
	if err != nil {
		return false, "", err
	}
	return res.ExecutionResult.Succeeded(), res.ExecutionResult.Output, nil
}

// AccountInfo fetches the balance snapshot of a native address.
func (s *Source) AccountInfo(ctx context.Context, native string) (model.AccountInfo, error) {
	if err := ctx.Err(); err != nil {
		return model.AccountInfo{}, err
	}
	res, err := s.rpc.GetAddressBalance(native)
	if err != nil {
		return model.AccountInfo{}, fmt.Errorf("get address balance %s: %w", native, err)
	}
	return model.AccountInfo{
		Balance: res.Balance,
		Staking: res.Immature,
		Mature:  res.Balance - res.Immature,
	}, nil
}
