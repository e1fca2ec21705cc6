package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stratatech/strata/chain"
	"github.com/stratatech/strata/core"
	"github.com/stratatech/strata/segment"
	"github.com/stratatech/strata/storage"
)

var testOptions = segment.Options{SegmentSize: 4, GroupSize: 16}

// stageBlock writes a staged single-block record for the cursor.
func stageBlock(t *testing.T, staging storage.Backend, cursor core.Cursor) {
	t.Helper()
	builder := segment.NewBlockBuilder()
	builder.AddBlockHeader(chain.Header{
		Number:    cursor.Number,
		Hash:      cursor.Hash,
		Timestamp: cursor.Number,
	})
	receipts := []chain.Receipt{{
		TransactionHash: common.BytesToHash([]byte{0xdd, byte(cursor.Number)}),
		Logs: []chain.Log{{
			Address: common.BytesToAddress([]byte{0x02, byte(cursor.Number)}),
			Topics:  []common.Hash{common.BytesToHash([]byte{0xcc, byte(cursor.Number % 2)})},
			Data:    []byte{0x01},
		}},
	}}
	builder.AddReceipts(receipts)
	builder.AddLogs(receipts)
	record, err := builder.Encode()
	require.NoError(t, err)
	require.NoError(t, storage.WriteAll(context.Background(), staging, StagedBlockPrefix(cursor), StagedBlockName, record))
}

type segmenterHarness struct {
	staging storage.Backend
	durable storage.Backend
	events  chan BlockEvent
	changes chan SnapshotChange
	done    chan error
	cancel  context.CancelFunc
}

func startSegmenter(t *testing.T, startingBlock uint64) *segmenterHarness {
	t.Helper()
	h := &segmenterHarness{
		staging: storage.NewMemBackend(),
		durable: storage.NewMemBackend(),
		events:  make(chan BlockEvent, 128),
		changes: make(chan SnapshotChange, 128),
		done:    make(chan error, 1),
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	t.Cleanup(cancel)

	segmenter := NewSegmenter(h.staging, h.durable, zap.NewNop())
	snapshot := StartingSnapshot(startingBlock, testOptions)
	go func() { h.done <- segmenter.Run(ctx, snapshot, h.events, h.changes) }()
	return h
}

func (h *segmenterHarness) ingest(t *testing.T, from, to uint64) {
	t.Helper()
	for n := from; n <= to; n++ {
		cursor := testCursor(n)
		stageBlock(t, h.staging, cursor)
		h.events <- Ingested{Cursor: cursor}
	}
}

func nextSnapshotChange(t *testing.T, changes <-chan SnapshotChange) SnapshotChange {
	t.Helper()
	select {
	case change, ok := <-changes:
		require.True(t, ok, "snapshot change stream closed unexpectedly")
		return change
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshot change")
		return nil
	}
}

func expectStateChanged(t *testing.T, changes <-chan SnapshotChange, groups, extras uint64) {
	t.Helper()
	change, ok := nextSnapshotChange(t, changes).(StateChanged)
	require.True(t, ok, "expected StateChanged")
	assert.Equal(t, IngestionState{GroupCount: groups, ExtraSegmentCount: extras}, change.NewState)
}

func expectBlockIngested(t *testing.T, changes <-chan SnapshotChange, number uint64) {
	t.Helper()
	change, ok := nextSnapshotChange(t, changes).(BlockIngested)
	require.True(t, ok, "expected BlockIngested")
	assert.Equal(t, number, change.Cursor.Number)
}

func segmentExists(t *testing.T, durable storage.Backend, start uint64) bool {
	t.Helper()
	ok, err := durable.Exists(context.Background(), "segment", testOptions.FormatSegmentName(start))
	require.NoError(t, err)
	return ok
}

func stagedExists(t *testing.T, staging storage.Backend, number uint64) bool {
	t.Helper()
	ok, err := staging.Exists(context.Background(), StagedBlockPrefix(testCursor(number)), StagedBlockName)
	require.NoError(t, err)
	return ok
}

func readSnapshotNow(t *testing.T, durable storage.Backend) Snapshot {
	t.Helper()
	snapshot, ok, err := ReadSnapshot(context.Background(), durable)
	require.NoError(t, err)
	require.True(t, ok, "snapshot must exist")
	return snapshot
}

// Finalized and head both at 10: ingesting 0..=12 seals segments 0 and 4,
// leaving a partial segment at 8 buffered.
func TestSegmenterSealsFinalizedSegments(t *testing.T) {
	h := startSegmenter(t, 0)

	h.events <- Started{Finalized: testCursor(10)}
	started, ok := nextSnapshotChange(t, h.changes).(SnapshotStarted)
	require.True(t, ok, "first change must be SnapshotStarted")
	assert.Equal(t, uint64(0), started.Snapshot.Revision)

	h.ingest(t, 0, 12)

	expectBlockIngested(t, h.changes, 0)
	expectStateChanged(t, h.changes, 0, 1)
	expectStateChanged(t, h.changes, 0, 2)
	for n := uint64(8); n <= 12; n++ {
		expectBlockIngested(t, h.changes, n)
	}

	assert.True(t, segmentExists(t, h.durable, 0))
	assert.True(t, segmentExists(t, h.durable, 4))
	assert.False(t, segmentExists(t, h.durable, 8))

	snapshot := readSnapshotNow(t, h.durable)
	assert.Equal(t, uint64(2), snapshot.Revision)
	assert.Equal(t, IngestionState{GroupCount: 0, ExtraSegmentCount: 2}, snapshot.Ingestion)

	// Sealed staged blocks are deleted; buffered ones remain.
	for n := uint64(0); n <= 7; n++ {
		assert.False(t, stagedExists(t, h.staging, n), "block %d should be deleted", n)
	}
	for n := uint64(8); n <= 12; n++ {
		assert.True(t, stagedExists(t, h.staging, n), "block %d should remain staged", n)
	}
}

// Finalized at 4: nothing seals until the finalized cursor moves strictly
// past the segment boundary.
func TestSegmenterWaitsForFinality(t *testing.T) {
	h := startSegmenter(t, 0)

	h.events <- Started{Finalized: testCursor(4)}
	_ = nextSnapshotChange(t, h.changes).(SnapshotStarted)

	h.ingest(t, 0, 4)
	expectBlockIngested(t, h.changes, 0)
	expectBlockIngested(t, h.changes, 4)

	assert.False(t, segmentExists(t, h.durable, 0), "no segment seals while finalized sits on the boundary")

	h.events <- Finalized{Cursor: testCursor(7)}
	expectStateChanged(t, h.changes, 0, 1)

	assert.True(t, segmentExists(t, h.durable, 0))
	snapshot := readSnapshotNow(t, h.durable)
	assert.Equal(t, uint64(1), snapshot.Revision)
}

// Cursors beyond the finalized tip are buffered; a later Finalized sweeping
// past their segment seals and publishes, in that order.
func TestSegmenterBuffersBeyondFinalized(t *testing.T) {
	h := startSegmenter(t, 0)

	h.events <- Started{Finalized: testCursor(1)}
	_ = nextSnapshotChange(t, h.changes).(SnapshotStarted)

	h.ingest(t, 0, 3)
	expectBlockIngested(t, h.changes, 0)
	expectBlockIngested(t, h.changes, 1)
	expectBlockIngested(t, h.changes, 2)
	expectBlockIngested(t, h.changes, 3)
	assert.False(t, segmentExists(t, h.durable, 0))

	h.events <- Finalized{Cursor: testCursor(5)}
	expectStateChanged(t, h.changes, 0, 1)
	assert.True(t, segmentExists(t, h.durable, 0))

	snapshot := readSnapshotNow(t, h.durable)
	assert.Equal(t, uint64(1), snapshot.Revision)
}

// Sealing the last segment of a group writes the group artifact and resets
// the extra segment count.
func TestSegmenterPromotesGroup(t *testing.T) {
	h := startSegmenter(t, 0)

	h.events <- Started{Finalized: testCursor(20)}
	_ = nextSnapshotChange(t, h.changes).(SnapshotStarted)

	h.ingest(t, 0, 17)

	expectBlockIngested(t, h.changes, 0)
	expectStateChanged(t, h.changes, 0, 1)
	expectStateChanged(t, h.changes, 0, 2)
	expectStateChanged(t, h.changes, 0, 3)
	expectStateChanged(t, h.changes, 1, 0)

	ok, err := h.durable.Exists(context.Background(), "group", testOptions.FormatSegmentName(0))
	require.NoError(t, err)
	assert.True(t, ok, "group artifact must exist")

	snapshot := readSnapshotNow(t, h.durable)
	assert.Equal(t, uint64(4), snapshot.Revision)
	assert.Equal(t, IngestionState{GroupCount: 1, ExtraSegmentCount: 0}, snapshot.Ingestion)
}

// Snapshot revisions strictly increase and each StateChanged dominates the
// prior one in (group_count, extra_segment_count) lexicographic order.
func TestSegmenterStateProgression(t *testing.T) {
	h := startSegmenter(t, 0)

	h.events <- Started{Finalized: testCursor(40)}
	_ = nextSnapshotChange(t, h.changes).(SnapshotStarted)

	h.ingest(t, 0, 33)

	var states []IngestionState
	deadline := time.After(5 * time.Second)
	for len(states) < 8 {
		select {
		case change := <-h.changes:
			switch change := change.(type) {
			case StateChanged:
				states = append(states, change.NewState)
			case BlockIngested:
			default:
				t.Fatalf("unexpected change %T", change)
			}
		case <-deadline:
			t.Fatal("timed out collecting state changes")
		}
	}

	// One revision per seal.
	snapshot := readSnapshotNow(t, h.durable)
	assert.Equal(t, uint64(8), snapshot.Revision)

	for i := 1; i < len(states); i++ {
		prev, next := states[i-1], states[i]
		dominated := next.GroupCount > prev.GroupCount ||
			(next.GroupCount == prev.GroupCount && next.ExtraSegmentCount > prev.ExtraSegmentCount)
		assert.True(t, dominated, "state %d (%+v) must dominate %+v", i, next, prev)
		exactlyOne := (next.GroupCount == prev.GroupCount && next.ExtraSegmentCount == prev.ExtraSegmentCount+1) ||
			(next.GroupCount == prev.GroupCount+1 && next.ExtraSegmentCount == 0)
		assert.True(t, exactlyOne, "state %d (%+v) must advance by one step from %+v", i, next, prev)
	}
}

func TestSegmenterRequiresStartedFirst(t *testing.T) {
	h := startSegmenter(t, 0)

	h.events <- Ingested{Cursor: testCursor(0)}

	select {
	case err := <-h.done:
		require.ErrorIs(t, err, core.ErrFatal)
	case <-time.After(5 * time.Second):
		t.Fatal("segmenter did not fail")
	}
}

func TestSegmenterInvalidateBelowFinalizedIsFatal(t *testing.T) {
	h := startSegmenter(t, 0)

	h.events <- Started{Finalized: testCursor(10)}
	_ = nextSnapshotChange(t, h.changes).(SnapshotStarted)

	h.events <- Invalidate{Cursor: testCursor(5)}

	select {
	case err := <-h.done:
		require.ErrorIs(t, err, core.ErrFatal)
	case <-time.After(5 * time.Second):
		t.Fatal("segmenter did not fail")
	}
}

func TestSegmenterInvalidateRollsBackBufferedCursors(t *testing.T) {
	h := startSegmenter(t, 0)

	h.events <- Started{Finalized: testCursor(2)}
	_ = nextSnapshotChange(t, h.changes).(SnapshotStarted)

	h.ingest(t, 0, 4)
	expectBlockIngested(t, h.changes, 0)
	expectBlockIngested(t, h.changes, 1)
	expectBlockIngested(t, h.changes, 2)
	expectBlockIngested(t, h.changes, 3)
	expectBlockIngested(t, h.changes, 4)

	h.events <- Invalidate{Cursor: testCursor(2)}
	// Give the rollback time to run, then verify staged files above the
	// invalidated cursor are gone.
	require.Eventually(t, func() bool {
		return !stagedExists(t, h.staging, 3) && !stagedExists(t, h.staging, 4)
	}, 5*time.Second, 10*time.Millisecond)
	assert.True(t, stagedExists(t, h.staging, 0))
	assert.True(t, stagedExists(t, h.staging, 2))
}
