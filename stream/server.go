package stream

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/stratatech/strata/core"
	"github.com/stratatech/strata/gointerfaces/datastream"
	"github.com/stratatech/strata/ingestion"
	"github.com/stratatech/strata/segment"
	"github.com/stratatech/strata/storage"
)

const (
	// DefaultHeartbeatInterval keeps idle subscribers alive well within the
	// default client timeout.
	DefaultHeartbeatInterval = 20 * time.Second

	defaultBatchSize = 20

	segmentCacheSize = 32
	groupCacheSize   = 8
)

type ServerOptions struct {
	HeartbeatInterval time.Duration
	Observer          RequestObserver
}

// serverState is the ingestion state shared by all subscribers. Updates
// close the notify channel so idle subscribers wake up.
type serverState struct {
	mu           sync.RWMutex
	hasSnapshot  bool
	snapshot     ingestion.Snapshot
	finalized    core.Cursor
	lastIngested core.Cursor
	staged       map[uint64]core.Cursor
	notify       chan struct{}
}

func newServerState() *serverState {
	return &serverState{
		staged: make(map[uint64]core.Cursor),
		notify: make(chan struct{}),
	}
}

// wait returns a channel closed at the next state update.
func (s *serverState) wait() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notify
}

func (s *serverState) update(fn func(*serverState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
	close(s.notify)
	s.notify = make(chan struct{})
}

func (s *serverState) view() (snapshot ingestion.Snapshot, ok bool, finalized core.Cursor, lastIngested core.Cursor) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.hasSnapshot, s.finalized, s.lastIngested
}

func (s *serverState) stagedCursor(number uint64) (core.Cursor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cursor, ok := s.staged[number]
	return cursor, ok
}

// Server serves the bidirectional data stream. Finalized data is read from
// segments through the group index; accepted data is read from staged
// blocks.
type Server struct {
	datastream.UnimplementedDataStreamServer

	staging storage.Backend
	durable storage.Backend
	options ServerOptions
	logger  *zap.Logger

	state    *serverState
	segments *cache[uint64, *segment.SegmentReader]
	groups   *cache[uint64, *segment.GroupReader]
}

func NewServer(staging storage.Backend, durable storage.Backend, options ServerOptions, logger *zap.Logger) (*Server, error) {
	if options.HeartbeatInterval <= 0 {
		options.HeartbeatInterval = DefaultHeartbeatInterval
	}
	segments, err := newCache[uint64, *segment.SegmentReader]("segment", segmentCacheSize)
	if err != nil {
		return nil, err
	}
	groups, err := newCache[uint64, *segment.GroupReader]("group", groupCacheSize)
	if err != nil {
		return nil, err
	}
	return &Server{
		staging:  staging,
		durable:  durable,
		options:  options,
		logger:   logger.Named("stream"),
		state:    newServerState(),
		segments: segments,
		groups:   groups,
	}, nil
}

// ApplyChanges consumes the segmenter's SnapshotChange stream and keeps the
// state served to subscribers current. Returns when the channel closes.
func (s *Server) ApplyChanges(ctx context.Context, changes <-chan ingestion.SnapshotChange) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			switch change := change.(type) {
			case ingestion.SnapshotStarted:
				s.state.update(func(st *serverState) {
					st.snapshot = change.Snapshot
					st.hasSnapshot = true
				})
			case ingestion.BlockIngested:
				s.state.update(func(st *serverState) {
					st.lastIngested = change.Cursor
					st.staged[change.Cursor.Number] = change.Cursor
				})
			case ingestion.StateChanged:
				s.state.update(func(st *serverState) {
					st.snapshot.Ingestion = change.NewState
					st.snapshot.Revision++
					st.finalized = change.Finalized
					sealed := st.snapshot.NextBlock()
					for number := range st.staged {
						if number < sealed {
							delete(st.staged, number)
						}
					}
				})
			}
		}
	}
}

func (s *Server) Status(ctx context.Context, _ *datastream.StatusRequest) (*datastream.StatusResponse, error) {
	snapshot, ok, finalized, lastIngested := s.state.view()
	if !ok {
		return nil, status.Error(codes.Unavailable, "ingestion has not started")
	}
	response := &datastream.StatusResponse{
		SnapshotRevision: snapshot.Revision,
		StartingBlock:    snapshot.StartingBlock,
	}
	if !lastIngested.IsGenesisSentinel() {
		response.LastIngested = protoCursor(&lastIngested)
		response.CurrentHead = protoCursor(&lastIngested)
	}
	if !finalized.IsGenesisSentinel() {
		response.Finalized = protoCursor(&finalized)
	}
	return response, nil
}

// subscription is the per-stream_id cursor and filter state.
type subscription struct {
	streamID   uint64
	batchSize  uint64
	finality   datastream.DataFinality
	filter     Filter
	next       uint64
	lastSent   *core.Cursor
	invalidate *core.Cursor
}

func (s *Server) StreamData(stream datastream.DataStream_StreamDataServer) error {
	ctx := stream.Context()
	activeSubscribers.Inc()
	defer activeSubscribers.Dec()

	if s.options.Observer != nil {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			s.options.Observer.ObserveRequest(md)
		}
	}

	requests := make(chan *datastream.StreamDataRequest)
	recvErr := make(chan error, 1)
	go func() {
		for {
			request, err := stream.Recv()
			if err != nil {
				recvErr <- err
				return
			}
			select {
			case requests <- request:
			case <-ctx.Done():
				return
			}
		}
	}()

	heartbeat := time.NewTicker(s.options.HeartbeatInterval)
	defer heartbeat.Stop()

	var sub *subscription
	for {
		if sub == nil {
			select {
			case <-ctx.Done():
				return nil
			case err := <-recvErr:
				return recvResult(err)
			case request := <-requests:
				next, err := s.newSubscription(sub, request)
				if err != nil {
					return err
				}
				sub = next
			}
			continue
		}

		if sub.invalidate != nil {
			response := &datastream.StreamDataResponse{
				StreamId: sub.streamID,
				Message: &datastream.StreamDataResponse_Invalidate{
					Invalidate: &datastream.Invalidate{Cursor: protoCursor(sub.invalidate)},
				},
			}
			if err := stream.Send(response); err != nil {
				return err
			}
			sub.invalidate = nil
			continue
		}

		// Arm the wakeup before reading state so an update between batch
		// production and the select below is never missed.
		wakeup := s.state.wait()

		batch, err := s.nextBatch(ctx, sub)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			s.logger.Error("batch production failed", zap.Error(err))
			return status.Error(codes.Internal, "failed to read data")
		}
		if batch != nil {
			// A reconfiguration that raced the batch discards it.
			select {
			case request := <-requests:
				next, err := s.newSubscription(sub, request)
				if err != nil {
					return err
				}
				sub = next
				continue
			case err := <-recvErr:
				return recvResult(err)
			default:
			}
			if err := stream.Send(batch.response(sub.streamID)); err != nil {
				return err
			}
			end := batch.end
			sub.lastSent = &end
			heartbeat.Reset(s.options.HeartbeatInterval)
			batchesSent.Inc()
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case err := <-recvErr:
			return recvResult(err)
		case request := <-requests:
			next, err := s.newSubscription(sub, request)
			if err != nil {
				return err
			}
			sub = next
		case <-wakeup:
		case <-heartbeat.C:
			response := &datastream.StreamDataResponse{
				StreamId: sub.streamID,
				Message:  &datastream.StreamDataResponse_Heartbeat{Heartbeat: &datastream.Heartbeat{}},
			}
			if err := stream.Send(response); err != nil {
				return err
			}
		}
	}
}

func recvResult(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newSubscription validates a reconfiguration request. Any partially formed
// batch of the previous stream_id is dropped by the caller.
func (s *Server) newSubscription(prev *subscription, request *datastream.StreamDataRequest) (*subscription, error) {
	if prev != nil && request.StreamId <= prev.streamID {
		return nil, status.Errorf(codes.InvalidArgument, "stream_id must increase: %d <= %d", request.StreamId, prev.streamID)
	}
	filter, err := DecodeFilter(request.Filter)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	sub := &subscription{
		streamID:  request.StreamId,
		batchSize: request.BatchSize,
		finality:  request.Finality,
		filter:    filter,
	}
	if sub.batchSize == 0 {
		sub.batchSize = defaultBatchSize
	}
	if sub.finality == datastream.DataFinality_DATA_STATUS_UNKNOWN {
		sub.finality = datastream.DataFinality_DATA_STATUS_FINALIZED
	}

	if cursor := fromProtoCursor(request.StartingCursor); cursor != nil {
		sub.next = cursor.Number + 1
		sub.lastSent = cursor
		// A starting cursor no longer on the canonical chain means the
		// subscriber holds reorged data.
		if staged, ok := s.state.stagedCursor(cursor.Number); ok && staged.Hash != cursor.Hash {
			_, _, finalized, _ := s.state.view()
			sub.invalidate = &finalized
			sub.next = finalized.Number + 1
			sub.lastSent = &finalized
		}
	}

	s.logger.Debug("stream reconfigured",
		zap.Uint64("stream_id", sub.streamID),
		zap.Uint64("batch_size", sub.batchSize),
		zap.Uint64("next", sub.next))
	return sub, nil
}

type batchResult struct {
	records  [][]byte
	start    *core.Cursor
	end      core.Cursor
	finality datastream.DataFinality
}

func (b *batchResult) response(streamID uint64) *datastream.StreamDataResponse {
	return &datastream.StreamDataResponse{
		StreamId: streamID,
		Message: &datastream.StreamDataResponse_Data{
			Data: &datastream.Data{
				Cursor:    protoCursor(b.start),
				EndCursor: protoCursor(&b.end),
				Finality:  b.finality,
				Data:      b.records,
			},
		},
	}
}

// nextBatch builds the next batch for the subscription, advancing its
// position. Returns nil when the subscriber is caught up.
func (s *Server) nextBatch(ctx context.Context, sub *subscription) (*batchResult, error) {
	snapshot, ok, _, lastIngested := s.state.view()
	if !ok {
		return nil, nil
	}
	options := snapshot.SegmentOptions
	sealedEnd := snapshot.NextBlock()

	var records [][]byte
	var end core.Cursor
	finality := datastream.DataFinality_DATA_STATUS_FINALIZED

	for uint64(len(records)) < sub.batchSize {
		n := sub.next
		if n < snapshot.StartingBlock {
			sub.next = snapshot.StartingBlock
			continue
		}

		if n < sealedEnd {
			segmentStart := options.SegmentStart(n)

			// Coarse pushdown: consult the group index when the whole group
			// containing this segment is sealed.
			if !sub.filter.IsEmpty() {
				groupStart := options.GroupStart(n)
				if groupStart+options.GroupSize <= sealedEnd {
					group, err := s.groupReader(ctx, options, groupStart)
					if err != nil {
						return nil, err
					}
					if !containsSegment(group.Candidates(sub.filter.Addresses, sub.filter.Topics), segmentStart) {
						sub.next = segmentStart + options.SegmentSize
						continue
					}
				}
			}

			reader, err := s.segmentReader(ctx, options, segmentStart)
			if err != nil {
				return nil, err
			}
			index := int(n - segmentStart)
			if index >= reader.Count() {
				sub.next = segmentStart + options.SegmentSize
				continue
			}
			block, err := reader.Block(index)
			if err != nil {
				return nil, err
			}
			sub.next++
			if sub.filter.MatchesBlock(block) {
				cursor, _ := block.Header.Cursor()
				records = append(records, reader.Record(index))
				end = cursor
			}
			continue
		}

		// Staged range: accepted (and pending) data only.
		if sub.finality == datastream.DataFinality_DATA_STATUS_FINALIZED {
			break
		}
		if lastIngested.IsGenesisSentinel() || n > lastIngested.Number {
			break
		}
		// Never mix finalities within one batch.
		if len(records) > 0 && finality == datastream.DataFinality_DATA_STATUS_FINALIZED && n == sealedEnd {
			break
		}
		cursor, ok := s.state.stagedCursor(n)
		if !ok {
			break
		}
		record, err := storage.ReadAll(ctx, s.staging, ingestion.StagedBlockPrefix(cursor), ingestion.StagedBlockName)
		if err != nil {
			return nil, err
		}
		block, err := segment.DecodeSingleBlock(record)
		if err != nil {
			return nil, err
		}
		sub.next++
		finality = datastream.DataFinality_DATA_STATUS_ACCEPTED
		if sub.filter.MatchesBlock(block) {
			records = append(records, record)
			end = cursor
		}
	}

	if len(records) == 0 {
		return nil, nil
	}
	return &batchResult{records: records, start: sub.lastSent, end: end, finality: finality}, nil
}

func (s *Server) segmentReader(ctx context.Context, options segment.Options, segmentStart uint64) (*segment.SegmentReader, error) {
	if reader, ok := s.segments.Get(segmentStart); ok {
		return reader, nil
	}
	data, err := storage.ReadAll(ctx, s.durable, "segment", options.FormatSegmentName(segmentStart))
	if err != nil {
		return nil, err
	}
	reader, err := segment.NewSegmentReader(data)
	if err != nil {
		return nil, err
	}
	s.segments.Add(segmentStart, reader)
	return reader, nil
}

func (s *Server) groupReader(ctx context.Context, options segment.Options, groupStart uint64) (*segment.GroupReader, error) {
	if reader, ok := s.groups.Get(groupStart); ok {
		return reader, nil
	}
	data, err := storage.ReadAll(ctx, s.durable, "group", options.FormatSegmentName(groupStart))
	if err != nil {
		return nil, err
	}
	reader, err := segment.NewGroupReader(data)
	if err != nil {
		return nil, err
	}
	s.groups.Add(groupStart, reader)
	return reader, nil
}

func containsSegment(candidates []uint64, segmentStart uint64) bool {
	for _, candidate := range candidates {
		if candidate == segmentStart {
			return true
		}
	}
	return false
}
