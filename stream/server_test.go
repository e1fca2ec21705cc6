package stream

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/stratatech/strata/chain"
	"github.com/stratatech/strata/core"
	"github.com/stratatech/strata/gointerfaces/datastream"
	"github.com/stratatech/strata/ingestion"
	"github.com/stratatech/strata/segment"
	"github.com/stratatech/strata/storage"
)

var serverTestOptions = segment.Options{SegmentSize: 4, GroupSize: 16}

func serverTestCursor(number uint64) core.Cursor {
	return core.NewCursor(number, common.BytesToHash([]byte{0xaa, byte(number)}))
}

func serverTestRecord(t *testing.T, number uint64) []byte {
	t.Helper()
	cursor := serverTestCursor(number)
	builder := segment.NewBlockBuilder()
	builder.AddBlockHeader(chain.Header{Number: number, Hash: cursor.Hash, Timestamp: number})
	receipts := []chain.Receipt{{
		TransactionHash: common.BytesToHash([]byte{0xdd, byte(number)}),
		Logs: []chain.Log{{
			Address: common.BytesToAddress([]byte{0x02, byte(number)}),
			Topics:  []common.Hash{common.BytesToHash([]byte{0xcc, byte(number % 2)})},
			Data:    []byte{0x01},
		}},
	}}
	builder.AddReceipts(receipts)
	builder.AddLogs(receipts)
	record, err := builder.Encode()
	require.NoError(t, err)
	return record
}

// newTestServer builds a server with segments 0 and 4 sealed and blocks 8..9
// staged.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()
	staging := storage.NewMemBackend()
	durable := storage.NewMemBackend()

	for _, start := range []uint64{0, 4} {
		builder := segment.NewSegmentBuilder()
		for n := start; n < start+4; n++ {
			require.NoError(t, builder.AddSingleBlock(n, serverTestRecord(t, n)))
		}
		artifact, err := builder.Encode()
		require.NoError(t, err)
		require.NoError(t, storage.WriteAll(ctx, durable, "segment", serverTestOptions.FormatSegmentName(start), artifact))
	}
	for n := uint64(8); n <= 9; n++ {
		require.NoError(t, storage.WriteAll(ctx, staging,
			ingestion.StagedBlockPrefix(serverTestCursor(n)), ingestion.StagedBlockName, serverTestRecord(t, n)))
	}

	server, err := NewServer(staging, durable, ServerOptions{HeartbeatInterval: 50 * time.Millisecond}, zap.NewNop())
	require.NoError(t, err)

	server.state.update(func(st *serverState) {
		st.hasSnapshot = true
		st.snapshot = ingestion.Snapshot{
			Revision:       2,
			SegmentOptions: serverTestOptions,
			Ingestion:      ingestion.IngestionState{GroupCount: 0, ExtraSegmentCount: 2},
		}
		st.finalized = serverTestCursor(9)
		st.lastIngested = serverTestCursor(9)
		st.staged[8] = serverTestCursor(8)
		st.staged[9] = serverTestCursor(9)
	})
	return server
}

// fakeServerStream drives StreamData directly.
type fakeServerStream struct {
	grpc.ServerStream
	ctx      context.Context
	requests chan *datastream.StreamDataRequest
	sent     chan *datastream.StreamDataResponse
}

func newFakeServerStream(ctx context.Context) *fakeServerStream {
	return &fakeServerStream{
		ctx:      ctx,
		requests: make(chan *datastream.StreamDataRequest, 16),
		sent:     make(chan *datastream.StreamDataResponse, 128),
	}
}

func (f *fakeServerStream) Context() context.Context { return f.ctx }

func (f *fakeServerStream) Send(response *datastream.StreamDataResponse) error {
	f.sent <- response
	return nil
}

func (f *fakeServerStream) Recv() (*datastream.StreamDataRequest, error) {
	select {
	case request := <-f.requests:
		return request, nil
	case <-f.ctx.Done():
		return nil, f.ctx.Err()
	}
}

func nextResponse(t *testing.T, sent <-chan *datastream.StreamDataResponse) *datastream.StreamDataResponse {
	t.Helper()
	select {
	case response := <-sent:
		return response
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for response")
		return nil
	}
}

func nextDataResponse(t *testing.T, sent <-chan *datastream.StreamDataResponse) *datastream.StreamDataResponse {
	t.Helper()
	for {
		response := nextResponse(t, sent)
		if _, ok := response.Message.(*datastream.StreamDataResponse_Heartbeat); ok {
			continue
		}
		return response
	}
}

func batchNumbers(t *testing.T, data *datastream.Data) []uint64 {
	t.Helper()
	var numbers []uint64
	for _, record := range data.Data {
		block, err := segment.DecodeSingleBlock(record)
		require.NoError(t, err)
		numbers = append(numbers, block.Header.Number)
	}
	return numbers
}

func TestServerStreamsFinalizedBatches(t *testing.T) {
	server := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := newFakeServerStream(ctx)
	done := make(chan error, 1)
	go func() { done <- server.StreamData(stream) }()

	stream.requests <- &datastream.StreamDataRequest{
		StreamId:  1,
		BatchSize: 3,
		Finality:  datastream.DataFinality_DATA_STATUS_FINALIZED,
	}

	var numbers []uint64
	var lastEnd uint64
	for len(numbers) < 8 {
		response := nextDataResponse(t, stream.sent)
		assert.Equal(t, uint64(1), response.StreamId)
		data, ok := response.Message.(*datastream.StreamDataResponse_Data)
		require.True(t, ok, "expected a data message, got %T", response.Message)

		batch := batchNumbers(t, data.Data)
		require.NotEmpty(t, batch)
		assert.LessOrEqual(t, len(batch), 3, "batch must respect batch_size")
		for i := 1; i < len(batch); i++ {
			assert.Greater(t, batch[i], batch[i-1], "batch must be ordered by block number")
		}
		assert.Equal(t, datastream.DataFinality_DATA_STATUS_FINALIZED, data.Data.Finality)
		require.NotNil(t, data.Data.EndCursor)
		lastEnd = data.Data.EndCursor.Number
		numbers = append(numbers, batch...)
	}

	assert.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6, 7}, numbers)
	assert.Equal(t, uint64(7), lastEnd)

	// Finalized-only subscribers do not see staged blocks; the server
	// heartbeats while idle.
	response := nextResponse(t, stream.sent)
	_, ok := response.Message.(*datastream.StreamDataResponse_Heartbeat)
	assert.True(t, ok, "expected heartbeat on idle, got %T", response.Message)

	cancel()
	require.NoError(t, <-done)
}

func TestServerServesStagedBlocksForAccepted(t *testing.T) {
	server := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := newFakeServerStream(ctx)
	done := make(chan error, 1)
	go func() { done <- server.StreamData(stream) }()

	start := serverTestCursor(7)
	stream.requests <- &datastream.StreamDataRequest{
		StreamId:       1,
		BatchSize:      10,
		StartingCursor: &datastream.Cursor{Number: start.Number, Hash: start.Hash.Bytes()},
		Finality:       datastream.DataFinality_DATA_STATUS_ACCEPTED,
	}

	response := nextDataResponse(t, stream.sent)
	data, ok := response.Message.(*datastream.StreamDataResponse_Data)
	require.True(t, ok)
	assert.Equal(t, []uint64{8, 9}, batchNumbers(t, data.Data))
	assert.Equal(t, datastream.DataFinality_DATA_STATUS_ACCEPTED, data.Data.Finality)
	require.NotNil(t, data.Data.Cursor)
	assert.Equal(t, uint64(7), data.Data.Cursor.Number, "batch cursor is the cursor immediately preceding the batch")

	cancel()
	require.NoError(t, <-done)
}

func TestServerReconfigurationRestartsBatching(t *testing.T) {
	server := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := newFakeServerStream(ctx)
	done := make(chan error, 1)
	go func() { done <- server.StreamData(stream) }()

	stream.requests <- &datastream.StreamDataRequest{
		StreamId:  1,
		BatchSize: 2,
		Finality:  datastream.DataFinality_DATA_STATUS_FINALIZED,
	}
	response := nextDataResponse(t, stream.sent)
	require.Equal(t, uint64(1), response.StreamId)

	// Reconfigure with a filter matching only block 3's address.
	filter := Filter{Addresses: []common.Address{common.BytesToAddress([]byte{0x02, 3})}}
	stream.requests <- &datastream.StreamDataRequest{
		StreamId:  2,
		BatchSize: 2,
		Finality:  datastream.DataFinality_DATA_STATUS_FINALIZED,
		Filter:    filter.Encode(),
	}

	for {
		response := nextDataResponse(t, stream.sent)
		if response.StreamId != 2 {
			continue
		}
		data, ok := response.Message.(*datastream.StreamDataResponse_Data)
		require.True(t, ok)
		assert.Equal(t, []uint64{3}, batchNumbers(t, data.Data), "restarted stream applies the new filter from the starting cursor")
		break
	}

	cancel()
	require.NoError(t, <-done)
}

func TestServerDropsSubscriberOnProtocolViolation(t *testing.T) {
	server := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := newFakeServerStream(ctx)
	done := make(chan error, 1)
	go func() { done <- server.StreamData(stream) }()

	stream.requests <- &datastream.StreamDataRequest{StreamId: 5, BatchSize: 1}
	_ = nextDataResponse(t, stream.sent)

	// Non-monotone stream id violates the protocol.
	stream.requests <- &datastream.StreamDataRequest{StreamId: 4, BatchSize: 1}

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	case <-time.After(5 * time.Second):
		t.Fatal("server did not drop the subscriber")
	}
}

func TestServerStatus(t *testing.T) {
	server := newTestServer(t)

	response, err := server.Status(context.Background(), &datastream.StatusRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), response.SnapshotRevision)
	require.NotNil(t, response.LastIngested)
	assert.Equal(t, uint64(9), response.LastIngested.Number)
	require.NotNil(t, response.Finalized)
	assert.Equal(t, uint64(9), response.Finalized.Number)
}

func TestServerApplyChanges(t *testing.T) {
	server := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan ingestion.SnapshotChange, 8)
	done := make(chan error, 1)
	go func() { done <- server.ApplyChanges(ctx, changes) }()

	changes <- ingestion.BlockIngested{Cursor: serverTestCursor(10)}
	changes <- ingestion.StateChanged{
		NewState:  ingestion.IngestionState{GroupCount: 0, ExtraSegmentCount: 3},
		Finalized: serverTestCursor(11),
	}
	close(changes)
	require.NoError(t, <-done)

	snapshot, ok, finalized, lastIngested := server.state.view()
	require.True(t, ok)
	assert.Equal(t, uint64(3), snapshot.Revision)
	assert.Equal(t, uint64(3), snapshot.Ingestion.ExtraSegmentCount)
	assert.Equal(t, uint64(11), finalized.Number)
	assert.Equal(t, uint64(10), lastIngested.Number)

	// Staged entries below the sealed boundary are pruned.
	_, staged8 := server.state.stagedCursor(8)
	assert.False(t, staged8)
	_, staged10 := server.state.stagedCursor(10)
	assert.False(t, staged10, "block 10 is inside the newly sealed segment")
}
