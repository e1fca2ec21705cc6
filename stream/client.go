package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/stratatech/strata/core"
	"github.com/stratatech/strata/gointerfaces/datastream"
)

// DefaultClientTimeout bounds how long the client waits for any server
// activity (heartbeats included) before surfacing a transport error.
const DefaultClientTimeout = 45 * time.Second

// ErrStreamTimeout is returned when the server stays silent past the
// configured timeout.
var ErrStreamTimeout = errors.New("no stream message within timeout")

// Configuration reconfigures a running data stream. Every configuration
// bumps the client's stream id; server messages tagged with a previous id
// are discarded silently.
type Configuration struct {
	BatchSize      uint64
	StartingCursor *core.Cursor
	Finality       datastream.DataFinality
	Filter         []byte
}

// DataMessage is a decoded message yielded by the client. Heartbeats are
// absorbed and never yielded.
type DataMessage interface {
	isDataMessage()
}

// DataBatch is a batch of records tagged by finality. Cursor is the cursor
// immediately preceding the batch (nil at stream start); EndCursor is the
// cursor of the last record.
type DataBatch struct {
	Cursor    *core.Cursor
	EndCursor core.Cursor
	Finality  datastream.DataFinality
	Batch     [][]byte
}

// Invalidate tells the subscriber to discard all data strictly after Cursor.
type Invalidate struct {
	Cursor *core.Cursor
}

func (DataBatch) isDataMessage()  {}
func (Invalidate) isDataMessage() {}

// ClientBuilder configures and connects a stream client.
type ClientBuilder struct {
	token          string
	metadata       metadata.MD
	timeout        time.Duration
	maxMessageSize int
	logger         *zap.Logger
}

func NewClientBuilder() *ClientBuilder {
	return &ClientBuilder{
		metadata: metadata.MD{},
		timeout:  DefaultClientTimeout,
		logger:   zap.NewNop(),
	}
}

// WithBearerToken authenticates with the server using the given token.
func (b *ClientBuilder) WithBearerToken(token string) *ClientBuilder {
	b.token = token
	return b
}

// WithMetadata attaches extra metadata to every call; it is merged with the
// authentication header, if any.
func (b *ClientBuilder) WithMetadata(md metadata.MD) *ClientBuilder {
	b.metadata = metadata.Join(b.metadata, md)
	return b
}

// WithTimeout sets the maximum time to wait for a message from the server.
func (b *ClientBuilder) WithTimeout(timeout time.Duration) *ClientBuilder {
	b.timeout = timeout
	return b
}

func (b *ClientBuilder) WithMaxMessageSize(size int) *ClientBuilder {
	b.maxMessageSize = size
	return b
}

func (b *ClientBuilder) WithLogger(logger *zap.Logger) *ClientBuilder {
	b.logger = logger
	return b
}

// Connect dials the stream server.
func (b *ClientBuilder) Connect(ctx context.Context, target string) (*StreamClient, error) {
	options := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if b.maxMessageSize > 0 {
		options = append(options, grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(b.maxMessageSize)))
	}
	conn, err := grpc.DialContext(ctx, target, options...)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", target, err)
	}

	md := b.metadata.Copy()
	if b.token != "" {
		md.Set("authorization", "Bearer "+b.token)
	}
	return &StreamClient{
		conn:    conn,
		client:  datastream.NewDataStreamClient(conn),
		md:      md,
		timeout: b.timeout,
		logger:  b.logger.Named("stream_client"),
	}, nil
}

type StreamClient struct {
	conn    *grpc.ClientConn
	client  datastream.DataStreamClient
	md      metadata.MD
	timeout time.Duration
	logger  *zap.Logger
}

func (c *StreamClient) Close() error {
	return c.conn.Close()
}

// Status requests the server's ingestion state.
func (c *StreamClient) Status(ctx context.Context) (*datastream.StatusResponse, error) {
	ctx = metadata.NewOutgoingContext(ctx, c.md)
	return c.client.Status(ctx, &datastream.StatusRequest{})
}

// StartStream opens the bidirectional stream. Configurations are forwarded
// as they arrive; messages are pulled with DataStreamReader.Next.
func (c *StreamClient) StartStream(ctx context.Context, configurations <-chan Configuration) (*DataStreamReader, error) {
	ctx = metadata.NewOutgoingContext(ctx, c.md)
	grpcStream, err := c.client.StreamData(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening data stream: %w", err)
	}

	reader := &DataStreamReader{
		stream:         grpcStream,
		configurations: configurations,
		responses:      make(chan recvItem, 128),
		timeout:        c.timeout,
		logger:         c.logger,
	}
	go reader.recvLoop()
	return reader, nil
}

type recvItem struct {
	response *datastream.StreamDataResponse
	err      error
}

// DataStreamReader turns the raw response stream into DataMessages.
type DataStreamReader struct {
	stream         datastream.DataStream_StreamDataClient
	configurations <-chan Configuration
	responses      chan recvItem
	streamID       uint64
	timeout        time.Duration
	logger         *zap.Logger
}

func (r *DataStreamReader) recvLoop() {
	for {
		response, err := r.stream.Recv()
		r.responses <- recvItem{response: response, err: err}
		if err != nil {
			return
		}
	}
}

// Next yields the next decoded message. It forwards configurations as they
// arrive, silently discards responses from superseded stream ids, absorbs
// heartbeats and fails when the server stays silent past the timeout. When a
// configuration and a response are both ready, they are handled in no fixed
// order; a response is compared against the last forwarded stream id.
// Closing the configuration channel ends the stream.
func (r *DataStreamReader) Next(ctx context.Context) (DataMessage, error) {
	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case configuration, ok := <-r.configurations:
			if !ok {
				return nil, io.EOF
			}
			r.streamID++
			request := &datastream.StreamDataRequest{
				StreamId:       r.streamID,
				BatchSize:      configuration.BatchSize,
				StartingCursor: protoCursor(configuration.StartingCursor),
				Finality:       configuration.Finality,
				Filter:         configuration.Filter,
			}
			if err := r.stream.Send(request); err != nil {
				return nil, fmt.Errorf("sending stream configuration: %w", err)
			}

		case item := <-r.responses:
			if item.err != nil {
				return nil, fmt.Errorf("stream transport: %w", item.err)
			}
			if item.response.StreamId != r.streamID {
				// Response from a superseded configuration.
				r.logger.Debug("discarding stale stream message",
					zap.Uint64("stream_id", item.response.StreamId),
					zap.Uint64("current", r.streamID))
				continue
			}
			switch message := item.response.Message.(type) {
			case *datastream.StreamDataResponse_Data:
				return DataBatch{
					Cursor:    fromProtoCursor(message.Data.Cursor),
					EndCursor: derefCursor(fromProtoCursor(message.Data.EndCursor)),
					Finality:  message.Data.Finality,
					Batch:     message.Data.Data,
				}, nil
			case *datastream.StreamDataResponse_Invalidate:
				return Invalidate{Cursor: fromProtoCursor(message.Invalidate.Cursor)}, nil
			case *datastream.StreamDataResponse_Heartbeat:
				r.logger.Debug("received heartbeat")
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(r.timeout)
				continue
			default:
				continue
			}

		case <-timer.C:
			return nil, ErrStreamTimeout
		}
	}
}

func derefCursor(c *core.Cursor) core.Cursor {
	if c == nil {
		return core.Cursor{}
	}
	return *c
}
