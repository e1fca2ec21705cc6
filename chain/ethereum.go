package chain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/stratatech/strata/core"
)

// rpcMaxRetries bounds the exponential backoff applied to every upstream
// call. Exhausted retries surface core.ErrRpc to the caller.
const rpcMaxRetries = 8

// EthereumProvider implements Provider over the standard EVM JSON-RPC.
type EthereumProvider struct {
	client *rpc.Client
	logger *zap.Logger
}

func NewEthereumProvider(ctx context.Context, url string, logger *zap.Logger) (*EthereumProvider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dialing ethereum provider: %w", err)
	}
	return &EthereumProvider{client: client, logger: logger.Named("ethereum")}, nil
}

func (p *EthereumProvider) Close() {
	p.client.Close()
}

// retryRPC runs op with bounded exponential backoff, stopping early on
// context cancellation.
func retryRPC(ctx context.Context, op func() error) error {
	policy := backoff.WithMaxRetries(backoff.WithContext(backoff.NewExponentialBackOff(), ctx), rpcMaxRetries)
	if err := backoff.Retry(op, policy); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s", core.ErrRpc, err)
	}
	return nil
}

type rpcHeader struct {
	Number     *hexutil.Big   `json:"number"`
	Hash       common.Hash    `json:"hash"`
	ParentHash common.Hash    `json:"parentHash"`
	StateRoot  common.Hash    `json:"stateRoot"`
	Timestamp  hexutil.Uint64 `json:"timestamp"`
	Miner      common.Address `json:"miner"`
	GasLimit   hexutil.Uint64 `json:"gasLimit"`
	GasUsed    hexutil.Uint64 `json:"gasUsed"`
	BaseFee    *hexutil.Big   `json:"baseFeePerGas"`
	ExtraData  hexutil.Bytes  `json:"extraData"`
	Uncles     []common.Hash  `json:"uncles"`
}

type rpcTransaction struct {
	Hash             common.Hash     `json:"hash"`
	TransactionIndex hexutil.Uint64  `json:"transactionIndex"`
	Nonce            hexutil.Uint64  `json:"nonce"`
	From             common.Address  `json:"from"`
	To               *common.Address `json:"to"`
	Value            *hexutil.Big    `json:"value"`
	Gas              hexutil.Uint64  `json:"gas"`
	GasPrice         *hexutil.Big    `json:"gasPrice"`
	Input            hexutil.Bytes   `json:"input"`
	Type             hexutil.Uint64  `json:"type"`
}

type rpcReceipt struct {
	TransactionHash   common.Hash     `json:"transactionHash"`
	TransactionIndex  hexutil.Uint64  `json:"transactionIndex"`
	Status            hexutil.Uint64  `json:"status"`
	GasUsed           hexutil.Uint64  `json:"gasUsed"`
	CumulativeGasUsed hexutil.Uint64  `json:"cumulativeGasUsed"`
	ContractAddress   *common.Address `json:"contractAddress"`
	Logs              []rpcLog        `json:"logs"`
}

type rpcLog struct {
	Address          common.Address `json:"address"`
	Topics           []common.Hash  `json:"topics"`
	Data             hexutil.Bytes  `json:"data"`
	TransactionHash  common.Hash    `json:"transactionHash"`
	TransactionIndex hexutil.Uint64 `json:"transactionIndex"`
	LogIndex         hexutil.Uint64 `json:"logIndex"`
}

func (p *EthereumProvider) cursorByTag(ctx context.Context, tag string) (core.Cursor, error) {
	var header *rpcHeader
	err := retryRPC(ctx, func() error {
		header = nil
		if err := p.client.CallContext(ctx, &header, "eth_getBlockByNumber", tag, false); err != nil {
			return err
		}
		if header == nil {
			return fmt.Errorf("no %q block", tag)
		}
		return nil
	})
	if err != nil {
		return core.Cursor{}, err
	}
	return core.NewCursor(header.Number.ToInt().Uint64(), header.Hash), nil
}

func (p *EthereumProvider) HeadCursor(ctx context.Context) (core.Cursor, error) {
	return p.cursorByTag(ctx, "latest")
}

func (p *EthereumProvider) FinalizedCursor(ctx context.Context) (core.Cursor, error) {
	return p.cursorByTag(ctx, "finalized")
}

func (p *EthereumProvider) BlockByNumber(ctx context.Context, number uint64, withTransactions bool) (*Block, error) {
	type rawBlock struct {
		rpcHeader
		Transactions []json.RawMessage `json:"transactions"`
	}
	var raw *rawBlock
	err := retryRPC(ctx, func() error {
		raw = nil
		if err := p.client.CallContext(ctx, &raw, "eth_getBlockByNumber", hexutil.Uint64(number), withTransactions); err != nil {
			return err
		}
		if raw == nil {
			return fmt.Errorf("block %d not found", number)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	block := &Block{Header: raw.toHeader()}
	for _, item := range raw.Transactions {
		if len(item) > 0 && item[0] == '"' {
			var hash common.Hash
			if err := json.Unmarshal(item, &hash); err != nil {
				return nil, fmt.Errorf("decoding transaction hash: %w", err)
			}
			block.TxHashes = append(block.TxHashes, hash)
			continue
		}
		var tx rpcTransaction
		if err := json.Unmarshal(item, &tx); err != nil {
			return nil, fmt.Errorf("decoding transaction: %w", err)
		}
		block.Transactions = append(block.Transactions, tx.toTransaction())
	}
	return block, nil
}

func (p *EthereumProvider) ReceiptsByBlockNumber(ctx context.Context, number uint64) ([]Receipt, error) {
	var receipts []rpcReceipt
	err := retryRPC(ctx, func() error {
		receipts = nil
		return p.client.CallContext(ctx, &receipts, "eth_getBlockReceipts", hexutil.Uint64(number))
	})
	if err != nil {
		return nil, err
	}
	out := make([]Receipt, len(receipts))
	for i := range receipts {
		out[i] = receipts[i].toReceipt()
	}
	return out, nil
}

func (p *EthereumProvider) TransactionsByHash(ctx context.Context, hashes []common.Hash) ([]Transaction, error) {
	out := make([]Transaction, 0, len(hashes))
	for _, hash := range hashes {
		var tx *rpcTransaction
		err := retryRPC(ctx, func() error {
			tx = nil
			if err := p.client.CallContext(ctx, &tx, "eth_getTransactionByHash", hash); err != nil {
				return err
			}
			if tx == nil {
				return fmt.Errorf("transaction %s not found", hash)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		out = append(out, tx.toTransaction())
	}
	return out, nil
}

func (p *EthereumProvider) ReceiptsByTransactionHash(ctx context.Context, hashes []common.Hash) ([]Receipt, error) {
	out := make([]Receipt, 0, len(hashes))
	for _, hash := range hashes {
		var receipt *rpcReceipt
		err := retryRPC(ctx, func() error {
			receipt = nil
			if err := p.client.CallContext(ctx, &receipt, "eth_getTransactionReceipt", hash); err != nil {
				return err
			}
			if receipt == nil {
				return fmt.Errorf("receipt for %s not found", hash)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		out = append(out, receipt.toReceipt())
	}
	return out, nil
}

func (h *rpcHeader) toHeader() Header {
	header := Header{
		Hash:       h.Hash,
		ParentHash: h.ParentHash,
		StateRoot:  h.StateRoot,
		Timestamp:  uint64(h.Timestamp),
		Sequencer:  h.Miner,
		GasLimit:   uint64(h.GasLimit),
		GasUsed:    uint64(h.GasUsed),
		ExtraData:  h.ExtraData,
	}
	if h.Number != nil {
		header.Number = h.Number.ToInt().Uint64()
	}
	if h.BaseFee != nil {
		header.BaseFee = h.BaseFee.ToInt()
	}
	return header
}

func (t *rpcTransaction) toTransaction() Transaction {
	tx := Transaction{
		Hash:             t.Hash,
		TransactionIndex: uint64(t.TransactionIndex),
		Nonce:            uint64(t.Nonce),
		From:             t.From,
		To:               t.To,
		GasLimit:         uint64(t.Gas),
		Input:            t.Input,
		Type:             uint64(t.Type),
	}
	if t.Value != nil {
		tx.Value = t.Value.ToInt()
	}
	if t.GasPrice != nil {
		tx.GasPrice = t.GasPrice.ToInt()
	}
	return tx
}

func (r *rpcReceipt) toReceipt() Receipt {
	receipt := Receipt{
		TransactionHash:   r.TransactionHash,
		TransactionIndex:  uint64(r.TransactionIndex),
		Status:            uint64(r.Status),
		GasUsed:           uint64(r.GasUsed),
		CumulativeGasUsed: uint64(r.CumulativeGasUsed),
		ContractAddress:   r.ContractAddress,
	}
	receipt.Logs = make([]Log, len(r.Logs))
	for i, l := range r.Logs {
		receipt.Logs[i] = Log{
			Address:          l.Address,
			Topics:           l.Topics,
			Data:             l.Data,
			TransactionHash:  l.TransactionHash,
			TransactionIndex: uint64(l.TransactionIndex),
			LogIndex:         uint64(l.LogIndex),
		}
	}
	return receipt
}
