package stream

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/stratatech/strata/core"
	"github.com/stratatech/strata/gointerfaces/datastream"
)

// fakeClientStream stands in for the grpc stream: requests sent by the
// reader land in sent, responses are fed through out.
type fakeClientStream struct {
	grpc.ClientStream
	sent chan *datastream.StreamDataRequest
	out  chan *datastream.StreamDataResponse
}

func newFakeClientStream() *fakeClientStream {
	return &fakeClientStream{
		sent: make(chan *datastream.StreamDataRequest, 16),
		out:  make(chan *datastream.StreamDataResponse, 16),
	}
}

func (f *fakeClientStream) Send(request *datastream.StreamDataRequest) error {
	f.sent <- request
	return nil
}

func (f *fakeClientStream) Recv() (*datastream.StreamDataResponse, error) {
	response, ok := <-f.out
	if !ok {
		return nil, io.EOF
	}
	return response, nil
}

func newTestReader(fake *fakeClientStream, configurations <-chan Configuration, timeout time.Duration) *DataStreamReader {
	reader := &DataStreamReader{
		stream:         fake,
		configurations: configurations,
		responses:      make(chan recvItem, 128),
		timeout:        timeout,
		logger:         zap.NewNop(),
	}
	go reader.recvLoop()
	return reader
}

func dataResponse(streamID uint64, endBlock uint64) *datastream.StreamDataResponse {
	return &datastream.StreamDataResponse{
		StreamId: streamID,
		Message: &datastream.StreamDataResponse_Data{
			Data: &datastream.Data{
				EndCursor: &datastream.Cursor{Number: endBlock, Hash: common.BytesToHash([]byte{byte(endBlock)}).Bytes()},
				Finality:  datastream.DataFinality_DATA_STATUS_FINALIZED,
				Data:      [][]byte{{0x01}},
			},
		},
	}
}

func TestClientDiscardsStaleStreamIds(t *testing.T) {
	fake := newFakeClientStream()
	configurations := make(chan Configuration, 4)
	reader := newTestReader(fake, configurations, 5*time.Second)
	ctx := context.Background()

	cursor := core.NewCursor(10, common.BytesToHash([]byte{0x10}))
	configurations <- Configuration{
		BatchSize:      2,
		StartingCursor: &cursor,
		Finality:       datastream.DataFinality_DATA_STATUS_FINALIZED,
		Filter:         []byte(`{"addresses":["0x0200000000000000000000000000000000000000"]}`),
	}

	first := make(chan struct{})
	var message DataMessage
	go func() {
		defer close(first)
		var err error
		message, err = reader.Next(ctx)
		assert.NoError(t, err)
	}()

	request := <-fake.sent
	assert.Equal(t, uint64(1), request.StreamId)
	assert.Equal(t, uint64(2), request.BatchSize)
	require.NotNil(t, request.StartingCursor)
	assert.Equal(t, uint64(10), request.StartingCursor.Number)

	fake.out <- dataResponse(1, 12)
	select {
	case <-first:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first batch")
	}
	batch, ok := message.(DataBatch)
	require.True(t, ok)
	assert.Equal(t, uint64(12), batch.EndCursor.Number)

	// Reconfigure mid-stream: the reader bumps the stream id and silently
	// drops any response still tagged with the old one.
	configurations <- Configuration{BatchSize: 2, Finality: datastream.DataFinality_DATA_STATUS_FINALIZED}

	done := make(chan struct{})
	var next DataMessage
	go func() {
		defer close(done)
		var err error
		next, err = reader.Next(ctx)
		assert.NoError(t, err)
	}()

	request = <-fake.sent
	assert.Equal(t, uint64(2), request.StreamId)

	fake.out <- dataResponse(1, 99) // stale, must be dropped
	fake.out <- dataResponse(2, 42)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	batch, ok = next.(DataBatch)
	require.True(t, ok)
	assert.Equal(t, uint64(42), batch.EndCursor.Number, "the stale response must have been discarded")
}

func TestClientAbsorbsHeartbeats(t *testing.T) {
	fake := newFakeClientStream()
	configurations := make(chan Configuration, 1)
	reader := newTestReader(fake, configurations, 5*time.Second)
	ctx := context.Background()

	configurations <- Configuration{BatchSize: 1}

	done := make(chan struct{})
	var message DataMessage
	go func() {
		defer close(done)
		var err error
		message, err = reader.Next(ctx)
		assert.NoError(t, err)
	}()

	<-fake.sent
	fake.out <- &datastream.StreamDataResponse{
		StreamId: 1,
		Message:  &datastream.StreamDataResponse_Heartbeat{Heartbeat: &datastream.Heartbeat{}},
	}
	fake.out <- dataResponse(1, 5)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	batch, ok := message.(DataBatch)
	require.True(t, ok, "heartbeats are absorbed, data is yielded")
	assert.Equal(t, uint64(5), batch.EndCursor.Number)
}

func TestClientTimesOutOnSilentServer(t *testing.T) {
	fake := newFakeClientStream()
	configurations := make(chan Configuration)
	reader := newTestReader(fake, configurations, 50*time.Millisecond)

	_, err := reader.Next(context.Background())
	require.ErrorIs(t, err, ErrStreamTimeout)
}

func TestClientYieldsInvalidate(t *testing.T) {
	fake := newFakeClientStream()
	configurations := make(chan Configuration, 1)
	reader := newTestReader(fake, configurations, 5*time.Second)

	configurations <- Configuration{BatchSize: 1}

	done := make(chan struct{})
	var message DataMessage
	go func() {
		defer close(done)
		var err error
		message, err = reader.Next(context.Background())
		assert.NoError(t, err)
	}()

	<-fake.sent
	fake.out <- &datastream.StreamDataResponse{
		StreamId: 1,
		Message: &datastream.StreamDataResponse_Invalidate{
			Invalidate: &datastream.Invalidate{Cursor: &datastream.Cursor{Number: 8}},
		},
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	invalidate, ok := message.(Invalidate)
	require.True(t, ok)
	require.NotNil(t, invalidate.Cursor)
	assert.Equal(t, uint64(8), invalidate.Cursor.Number)
}

func TestClientEndsWhenConfigurationsClose(t *testing.T) {
	fake := newFakeClientStream()
	configurations := make(chan Configuration)
	close(configurations)
	reader := newTestReader(fake, configurations, 5*time.Second)

	_, err := reader.Next(context.Background())
	require.ErrorIs(t, err, io.EOF)
}
