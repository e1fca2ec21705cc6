package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/stratatech/strata/core"
)

// StarkNetProvider implements Provider over the StarkNet JSON-RPC (v0.7).
// StarkNet has no uncle or hash-only block shapes, so BlockByNumber always
// returns full transactions; felts are truncated to 32 bytes, which is their
// canonical width.
type StarkNetProvider struct {
	client *rpc.Client
	logger *zap.Logger
}

func NewStarkNetProvider(ctx context.Context, url string, logger *zap.Logger) (*StarkNetProvider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dialing starknet provider: %w", err)
	}
	return &StarkNetProvider{client: client, logger: logger.Named("starknet")}, nil
}

func (p *StarkNetProvider) Close() {
	p.client.Close()
}

type starknetBlockID struct {
	Number uint64 `json:"block_number"`
}

type starknetHeader struct {
	BlockHash        common.Hash    `json:"block_hash"`
	BlockNumber      uint64         `json:"block_number"`
	ParentHash       common.Hash    `json:"parent_hash"`
	NewRoot          common.Hash    `json:"new_root"`
	Timestamp        uint64         `json:"timestamp"`
	SequencerAddress common.Address `json:"sequencer_address"`
	StarknetVersion  string         `json:"starknet_version"`
}

type starknetTransaction struct {
	Hash     common.Hash `json:"transaction_hash"`
	Type     string      `json:"type"`
	Nonce    string      `json:"nonce"`
	Calldata []string    `json:"calldata"`
}

type starknetBlock struct {
	starknetHeader
	Transactions []starknetTransaction `json:"transactions"`
}

type starknetReceipt struct {
	TransactionHash common.Hash `json:"transaction_hash"`
	ExecutionStatus string      `json:"execution_status"`
	ActualFee       struct {
		Amount string `json:"amount"`
	} `json:"actual_fee"`
	Events []struct {
		FromAddress common.Address `json:"from_address"`
		Keys        []common.Hash  `json:"keys"`
		Data        []string       `json:"data"`
	} `json:"events"`
}

func (p *StarkNetProvider) cursorByID(ctx context.Context, id any) (core.Cursor, error) {
	var header starknetHeader
	err := retryRPC(ctx, func() error {
		return p.client.CallContext(ctx, &header, "starknet_getBlockWithTxHashes", id)
	})
	if err != nil {
		return core.Cursor{}, err
	}
	return core.NewCursor(header.BlockNumber, header.BlockHash), nil
}

func (p *StarkNetProvider) HeadCursor(ctx context.Context) (core.Cursor, error) {
	return p.cursorByID(ctx, "latest")
}

func (p *StarkNetProvider) FinalizedCursor(ctx context.Context) (core.Cursor, error) {
	// "l1_accepted" is the strongest finality the gateway reports.
	return p.cursorByID(ctx, "l1_accepted")
}

func (p *StarkNetProvider) BlockByNumber(ctx context.Context, number uint64, withTransactions bool) (*Block, error) {
	var raw starknetBlock
	err := retryRPC(ctx, func() error {
		return p.client.CallContext(ctx, &raw, "starknet_getBlockWithTxs", starknetBlockID{Number: number})
	})
	if err != nil {
		return nil, err
	}

	block := &Block{
		Header: Header{
			Number:          raw.BlockNumber,
			Hash:            raw.BlockHash,
			ParentHash:      raw.ParentHash,
			StateRoot:       raw.NewRoot,
			Timestamp:       raw.Timestamp,
			Sequencer:       raw.SequencerAddress,
			ProtocolVersion: raw.StarknetVersion,
		},
	}
	for i, tx := range raw.Transactions {
		block.Transactions = append(block.Transactions, Transaction{
			Hash:             tx.Hash,
			TransactionIndex: uint64(i),
		})
	}
	return block, nil
}

func (p *StarkNetProvider) ReceiptsByBlockNumber(ctx context.Context, number uint64) ([]Receipt, error) {
	var raw struct {
		starknetHeader
		Transactions []struct {
			Receipt starknetReceipt `json:"receipt"`
		} `json:"transactions"`
	}
	err := retryRPC(ctx, func() error {
		return p.client.CallContext(ctx, &raw, "starknet_getBlockWithReceipts", starknetBlockID{Number: number})
	})
	if err != nil {
		return nil, err
	}

	out := make([]Receipt, 0, len(raw.Transactions))
	for i, tx := range raw.Transactions {
		out = append(out, tx.Receipt.toReceipt(uint64(i)))
	}
	return out, nil
}

func (p *StarkNetProvider) TransactionsByHash(ctx context.Context, hashes []common.Hash) ([]Transaction, error) {
	out := make([]Transaction, 0, len(hashes))
	for i, hash := range hashes {
		var tx starknetTransaction
		err := retryRPC(ctx, func() error {
			return p.client.CallContext(ctx, &tx, "starknet_getTransactionByHash", hash)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, Transaction{Hash: tx.Hash, TransactionIndex: uint64(i)})
	}
	return out, nil
}

func (p *StarkNetProvider) ReceiptsByTransactionHash(ctx context.Context, hashes []common.Hash) ([]Receipt, error) {
	out := make([]Receipt, 0, len(hashes))
	for i, hash := range hashes {
		var receipt starknetReceipt
		err := retryRPC(ctx, func() error {
			return p.client.CallContext(ctx, &receipt, "starknet_getTransactionReceipt", hash)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, receipt.toReceipt(uint64(i)))
	}
	return out, nil
}

func (r *starknetReceipt) toReceipt(index uint64) Receipt {
	receipt := Receipt{
		TransactionHash:  r.TransactionHash,
		TransactionIndex: index,
	}
	if r.ExecutionStatus == "SUCCEEDED" {
		receipt.Status = 1
	}
	for i, ev := range r.Events {
		receipt.Logs = append(receipt.Logs, Log{
			Address:          ev.FromAddress,
			Topics:           ev.Keys,
			TransactionHash:  r.TransactionHash,
			TransactionIndex: index,
			LogIndex:         uint64(i),
		})
	}
	return receipt
}
