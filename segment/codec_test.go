package segment

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratatech/strata/chain"
)

func testBlock(number uint64) *chain.Block {
	hash := common.BytesToHash([]byte{0xaa, byte(number)})
	to := common.BytesToAddress([]byte{0x01})
	contract := common.BytesToAddress([]byte{0x02, byte(number)})
	topic := common.BytesToHash([]byte{0xcc, byte(number % 2)})

	return &chain.Block{
		Header: chain.Header{
			Number:     number,
			Hash:       hash,
			ParentHash: common.BytesToHash([]byte{0xaa, byte(number - 1)}),
			StateRoot:  common.BytesToHash([]byte{0xbb, byte(number)}),
			Timestamp:  1700000000 + number,
			Sequencer:  common.BytesToAddress([]byte{0x03}),
			GasLimit:   30_000_000,
			GasUsed:    21_000,
			BaseFee:    big.NewInt(7),
			ExtraData:  []byte{0x01, 0x02},
		},
		Transactions: []chain.Transaction{{
			Hash:     common.BytesToHash([]byte{0xdd, byte(number)}),
			Nonce:    number,
			From:     common.BytesToAddress([]byte{0x04}),
			To:       &to,
			Value:    big.NewInt(1000),
			GasLimit: 21_000,
			GasPrice: big.NewInt(12),
			Input:    []byte{0xfe},
			Type:     2,
		}},
		Receipts: []chain.Receipt{{
			TransactionHash:   common.BytesToHash([]byte{0xdd, byte(number)}),
			Status:            1,
			GasUsed:           21_000,
			CumulativeGasUsed: 21_000,
			ContractAddress:   &contract,
		}},
		Logs: []chain.Log{{
			Address:         contract,
			Topics:          []common.Hash{topic},
			Data:            []byte{0x01},
			TransactionHash: common.BytesToHash([]byte{0xdd, byte(number)}),
			LogIndex:        0,
		}},
	}
}

func encodeTestBlock(t *testing.T, number uint64) []byte {
	t.Helper()
	return encodeTestBlockWith(t, NewBlockBuilder(), number)
}

// encodeTestBlockWith encodes the test block with the given builder and
// resets it afterwards.
func encodeTestBlockWith(t *testing.T, builder *BlockBuilder, number uint64) []byte {
	t.Helper()
	block := testBlock(number)

	builder.AddBlockHeader(block.Header)
	builder.AddTransactions(block.Transactions)
	receipts := block.Receipts
	receipts[0].Logs = block.Logs
	builder.AddReceipts(receipts)
	builder.AddLogs(receipts)

	record, err := builder.Encode()
	require.NoError(t, err)
	builder.Reset()
	return record
}

func TestSingleBlockRoundTrip(t *testing.T) {
	record := encodeTestBlock(t, 7)
	require.NoError(t, VerifySingleBlock(record))

	decoded, err := DecodeSingleBlock(record)
	require.NoError(t, err)

	want := testBlock(7)
	assert.Equal(t, want.Header.Number, decoded.Header.Number)
	assert.Equal(t, want.Header.Hash, decoded.Header.Hash)
	assert.Equal(t, want.Header.ParentHash, decoded.Header.ParentHash)
	assert.Equal(t, want.Header.BaseFee, decoded.Header.BaseFee)
	require.Len(t, decoded.Transactions, 1)
	assert.Equal(t, want.Transactions[0].Hash, decoded.Transactions[0].Hash)
	assert.Equal(t, want.Transactions[0].To, decoded.Transactions[0].To)
	assert.Equal(t, want.Transactions[0].Value, decoded.Transactions[0].Value)
	require.Len(t, decoded.Receipts, 1)
	assert.Equal(t, want.Receipts[0].TransactionHash, decoded.Receipts[0].TransactionHash)
	require.Len(t, decoded.Logs, 1)
	assert.Equal(t, want.Logs[0].Address, decoded.Logs[0].Address)
	assert.Equal(t, want.Logs[0].Topics, decoded.Logs[0].Topics)
}

func TestBuilderReuseIsByteIdentical(t *testing.T) {
	first := encodeTestBlock(t, 3)

	// Encode another block first, so the second encoding of block 3 runs on
	// a builder that has already been used and reset.
	builder := NewBlockBuilder()
	_ = encodeTestBlockWith(t, builder, 5)
	second := encodeTestBlockWith(t, builder, 3)
	assert.Equal(t, first, second)
}

func TestSingleBlockRejectsCorruption(t *testing.T) {
	record := encodeTestBlock(t, 1)

	corrupted := append([]byte{}, record...)
	corrupted[len(corrupted)/2] ^= 0xff
	_, err := DecodeSingleBlock(corrupted)
	assert.Error(t, err)

	trailing := append(append([]byte{}, record...), 0x00)
	_, err = DecodeSingleBlock(trailing)
	assert.Error(t, err)

	_, err = DecodeSingleBlock(record[:8])
	assert.Error(t, err)
}

func TestSegmentBodyIsRecordConcatenation(t *testing.T) {
	builder := NewSegmentBuilder()
	var concat []byte
	for n := uint64(0); n < 4; n++ {
		record := encodeTestBlock(t, n)
		require.NoError(t, builder.AddSingleBlock(n, record))
		concat = append(concat, record...)
	}
	require.Equal(t, 4, builder.HeaderCount())

	artifact, err := builder.Encode()
	require.NoError(t, err)

	payload, err := decodeWholeFrame(artifact, segmentMagic)
	require.NoError(t, err)
	assert.Equal(t, concat, payload[4:], "segment body must be the exact concatenation of single-block records")

	reader, err := NewSegmentReader(artifact)
	require.NoError(t, err)
	require.Equal(t, 4, reader.Count())
	for i := 0; i < 4; i++ {
		block, err := reader.Block(i)
		require.NoError(t, err)
		assert.Equal(t, uint64(i), block.Header.Number)
	}
}

func TestSegmentBuilderRejectsWrongNumber(t *testing.T) {
	builder := NewSegmentBuilder()
	record := encodeTestBlock(t, 5)
	assert.Error(t, builder.AddSingleBlock(6, record))
}

func TestGroupCandidates(t *testing.T) {
	group := NewGroupBuilder()

	contractEven := common.BytesToAddress([]byte{0x02, 0})
	topicEven := common.BytesToHash([]byte{0xcc, 0})
	topicOdd := common.BytesToHash([]byte{0xcc, 1})

	// Segment 0 holds blocks 0..3, segment 4 holds 4..7.
	for _, start := range []uint64{0, 4} {
		builder := NewSegmentBuilder()
		for n := start; n < start+4; n++ {
			require.NoError(t, builder.AddSingleBlock(n, encodeTestBlock(t, n)))
		}
		group.AddSegmentIndex(start, builder.TakeIndex())
	}
	require.Equal(t, 2, group.SegmentCount())

	artifact, err := group.Encode()
	require.NoError(t, err)
	reader, err := NewGroupReader(artifact)
	require.NoError(t, err)

	assert.Equal(t, []uint64{0, 4}, reader.Segments())
	assert.Equal(t, []uint64{0, 4}, reader.Candidates(nil, nil))
	// Both segments contain even- and odd-numbered blocks, so both topics
	// match both segments.
	assert.Equal(t, []uint64{0, 4}, reader.Candidates(nil, []common.Hash{topicEven}))
	assert.Equal(t, []uint64{0, 4}, reader.Candidates(nil, []common.Hash{topicOdd}))
	// The contract address of block 0 only appears in segment 0.
	assert.Equal(t, []uint64{0}, reader.Candidates([]common.Address{contractEven}, nil))
	// Unknown address matches nothing.
	unknown := common.BytesToAddress([]byte{0x7f})
	assert.Empty(t, reader.Candidates([]common.Address{unknown}, nil))
}

func TestGroupEncodeIsDeterministic(t *testing.T) {
	build := func() []byte {
		group := NewGroupBuilder()
		for _, start := range []uint64{0, 4} {
			builder := NewSegmentBuilder()
			for n := start; n < start+4; n++ {
				if err := builder.AddSingleBlock(n, encodeTestBlock(t, n)); err != nil {
					t.Fatal(err)
				}
			}
			group.AddSegmentIndex(start, builder.TakeIndex())
		}
		artifact, err := group.Encode()
		if err != nil {
			t.Fatal(err)
		}
		return artifact
	}
	assert.True(t, bytes.Equal(build(), build()))
}
