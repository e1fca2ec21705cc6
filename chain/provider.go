package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratatech/strata/core"
)

// Provider is the capability set the pipeline needs from a chain node. One
// provider per pipeline; implementations are chosen at startup by network
// kind.
type Provider interface {
	// HeadCursor returns the cursor of the latest block.
	HeadCursor(ctx context.Context) (core.Cursor, error)
	// FinalizedCursor returns the cursor of the latest finalized block.
	FinalizedCursor(ctx context.Context) (core.Cursor, error)
	// BlockByNumber fetches a block. With withTransactions the block carries
	// full transaction bodies; otherwise only transaction hashes are
	// populated (in Block.TxHashes).
	BlockByNumber(ctx context.Context, number uint64, withTransactions bool) (*Block, error)
	// ReceiptsByBlockNumber fetches all receipts of a block in one call.
	ReceiptsByBlockNumber(ctx context.Context, number uint64) ([]Receipt, error)
	// TransactionsByHash resolves full transaction bodies.
	TransactionsByHash(ctx context.Context, hashes []common.Hash) ([]Transaction, error)
	// ReceiptsByTransactionHash fetches receipts one transaction at a time.
	ReceiptsByTransactionHash(ctx context.Context, hashes []common.Hash) ([]Receipt, error)
}

// Header is the chain-neutral block header retained by the pipeline. EVM
// fills the gas fields, StarkNet fills ProtocolVersion; both fill the rest.
type Header struct {
	Number     uint64
	Hash       common.Hash
	ParentHash common.Hash
	StateRoot  common.Hash
	Timestamp  uint64
	// Sequencer is the miner (EVM) or sequencer address (StarkNet).
	Sequencer       common.Address
	GasLimit        uint64
	GasUsed         uint64
	BaseFee         *big.Int `rlp:"nil"`
	ExtraData       []byte
	ProtocolVersion string
}

// Cursor returns the header's cursor. The second return is false when the
// header carries no hash (pending block), which callers treat as fatal.
func (h *Header) Cursor() (core.Cursor, bool) {
	if h.Hash == (common.Hash{}) {
		return core.Cursor{}, false
	}
	return core.NewCursor(h.Number, h.Hash), true
}

type Transaction struct {
	Hash             common.Hash
	TransactionIndex uint64
	Nonce            uint64
	From             common.Address
	To               *common.Address `rlp:"nil"`
	Value            *big.Int        `rlp:"nil"`
	GasLimit         uint64
	GasPrice         *big.Int `rlp:"nil"`
	Input            []byte
	Type             uint64
}

type Receipt struct {
	TransactionHash   common.Hash
	TransactionIndex  uint64
	Status            uint64
	GasUsed           uint64
	CumulativeGasUsed uint64
	ContractAddress   *common.Address `rlp:"nil"`
	Logs              []Log
}

type Log struct {
	Address          common.Address
	Topics           []common.Hash
	Data             []byte
	TransactionHash  common.Hash
	TransactionIndex uint64
	LogIndex         uint64
}

// Block bundles everything the pipeline stores for one block. TxHashes is
// only populated when the block was fetched without transaction bodies and
// is never serialized.
type Block struct {
	Header       Header
	Transactions []Transaction
	Receipts     []Receipt
	Logs         []Log

	TxHashes []common.Hash `rlp:"-" json:"-"`
}
