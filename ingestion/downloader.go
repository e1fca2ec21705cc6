package ingestion

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/stratatech/strata/chain"
	"github.com/stratatech/strata/core"
	"github.com/stratatech/strata/segment"
	"github.com/stratatech/strata/storage"
)

// RpcIngestionOptions selects how block bodies and receipts are fetched.
type RpcIngestionOptions struct {
	// GetBlockByNumberWithTransactions requests full transaction bodies in
	// the block fetch instead of resolving hashes one by one.
	GetBlockByNumberWithTransactions bool
	// GetBlockReceiptsByNumber fetches all of a block's receipts in one
	// call instead of per transaction.
	GetBlockReceiptsByNumber bool
}

// Downloader consumes ChainChange, fetches blocks in order with exactly one
// fetch in flight, writes each block to staging storage and emits
// BlockEvent.
type Downloader struct {
	provider chain.Provider
	staging  storage.Backend
	options  RpcIngestionOptions
	logger   *zap.Logger
}

func NewDownloader(provider chain.Provider, staging storage.Backend, options RpcIngestionOptions, logger *zap.Logger) *Downloader {
	return &Downloader{
		provider: provider,
		staging:  staging,
		options:  options,
		logger:   logger.Named("downloader"),
	}
}

type fetchResult struct {
	cursor core.Cursor
	err    error
}

// Run drives the download loop until ctx is cancelled or a fatal error
// occurs. The events channel is closed on return; a consumer abandoning the
// channel terminates the loop silently.
func (d *Downloader) Run(ctx context.Context, firstBlockNumber uint64, changes <-chan chain.ChainChange, events chan<- BlockEvent) error {
	defer close(events)

	var head, finalized core.Cursor
	select {
	case <-ctx.Done():
		return nil
	case change, ok := <-changes:
		if !ok {
			return fmt.Errorf("%w: chain changes stream ended unexpectedly", core.ErrFatal)
		}
		init, ok := change.(chain.Initialize)
		if !ok {
			return fmt.Errorf("%w: expected chain initialization", core.ErrFatal)
		}
		head, finalized = init.Head, init.Finalized
	}

	if finalized.Number < firstBlockNumber {
		return fmt.Errorf("%w: finalized block is behind the starting block", core.ErrFatal)
	}

	d.logger.Info("starting block downloader",
		zap.Uint64("first_block_number", firstBlockNumber),
		zap.Stringer("head", head),
		zap.Stringer("finalized", finalized))

	builder := segment.NewBlockBuilder()
	currentBlockNumber := firstBlockNumber
	// currentIngested reports whether currentBlockNumber has been staged.
	currentIngested := false

	// Exactly one fetch in flight: results is non-nil iff downloading.
	var results chan fetchResult
	startFetch := func(number uint64) {
		results = make(chan fetchResult, 1)
		out := results
		go func() {
			cursor, err := d.downloadBlock(ctx, builder, number)
			out <- fetchResult{cursor: cursor, err: err}
		}()
	}

	if currentBlockNumber < head.Number {
		startFetch(currentBlockNumber)
	}

	if !send(ctx, events, BlockEvent(Started{Finalized: finalized})) {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case result := <-results:
			if result.err != nil {
				return fmt.Errorf("block download failed: %w", result.err)
			}
			if !send(ctx, events, BlockEvent(Ingested{Cursor: result.cursor})) {
				return nil
			}
			blocksIngested.Inc()
			currentIngested = true
			if currentBlockNumber < head.Number {
				currentBlockNumber++
				startFetch(currentBlockNumber)
			} else {
				results = nil
			}

		case change, ok := <-changes:
			if !ok {
				return fmt.Errorf("%w: chain changes stream ended unexpectedly", core.ErrFatal)
			}
			switch change := change.(type) {
			case chain.NewHead:
				head = change.Cursor
				if results == nil && currentBlockNumber < head.Number {
					if currentIngested {
						currentBlockNumber++
					}
					startFetch(currentBlockNumber)
				}
			case chain.NewFinalized:
				if !send(ctx, events, BlockEvent(Finalized{Cursor: change.Cursor})) {
					return nil
				}
			case chain.Invalidate:
				if !send(ctx, events, BlockEvent(Invalidate{Cursor: change.Cursor})) {
					return nil
				}
			case chain.Initialize:
				return fmt.Errorf("%w: chain initialized twice", core.ErrFatal)
			}
		}
	}
}

// downloadBlock fetches one block with its transactions, receipts and logs,
// and writes the staged single-block record.
func (d *Downloader) downloadBlock(ctx context.Context, builder *segment.BlockBuilder, number uint64) (core.Cursor, error) {
	d.logger.Debug("ingesting block by number", zap.Uint64("number", number))

	block, err := d.provider.BlockByNumber(ctx, number, d.options.GetBlockByNumberWithTransactions)
	if err != nil {
		return core.Cursor{}, err
	}

	cursor, ok := block.Header.Cursor()
	if !ok {
		return core.Cursor{}, fmt.Errorf("%w: block header is missing hash", core.ErrFatal)
	}
	if cursor.Number != number {
		return core.Cursor{}, fmt.Errorf("%w: requested block %d, got %d", core.ErrFatal, number, cursor.Number)
	}

	transactions := block.Transactions
	if len(transactions) == 0 && len(block.TxHashes) > 0 {
		transactions, err = d.provider.TransactionsByHash(ctx, block.TxHashes)
		if err != nil {
			return core.Cursor{}, err
		}
	}

	var receipts []chain.Receipt
	if d.options.GetBlockReceiptsByNumber {
		receipts, err = d.provider.ReceiptsByBlockNumber(ctx, number)
	} else {
		hashes := block.TxHashes
		if len(hashes) == 0 {
			hashes = make([]common.Hash, len(transactions))
			for i := range transactions {
				hashes[i] = transactions[i].Hash
			}
		}
		receipts, err = d.provider.ReceiptsByTransactionHash(ctx, hashes)
	}
	if err != nil {
		return core.Cursor{}, err
	}

	builder.AddBlockHeader(block.Header)
	builder.AddTransactions(transactions)
	builder.AddReceipts(receipts)
	builder.AddLogs(receipts)

	record, err := builder.Encode()
	builder.Reset()
	if err != nil {
		return core.Cursor{}, err
	}

	prefix := StagedBlockPrefix(cursor)
	if err := storage.WriteAll(ctx, d.staging, prefix, StagedBlockName, record); err != nil {
		return core.Cursor{}, err
	}
	d.logger.Debug("wrote single block",
		zap.String("prefix", prefix),
		zap.Int("data_size", len(record)))

	return cursor, nil
}

func send[T any](ctx context.Context, out chan<- T, value T) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- value:
		return true
	}
}
