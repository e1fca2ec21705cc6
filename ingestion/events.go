package ingestion

import "github.com/stratatech/strata/core"

// BlockEvent is the stream produced by the Downloader and consumed by the
// Segmenter. Started is the first event exactly once.
type BlockEvent interface {
	isBlockEvent()
}

// Started reports the finalized cursor observed when the download loop
// began.
type Started struct {
	Finalized core.Cursor
}

// Ingested reports that a block was downloaded and staged. Cursors are
// emitted in strictly increasing, contiguous block-number order.
type Ingested struct {
	Cursor core.Cursor
}

// Finalized reports that the finalized cursor advanced.
type Finalized struct {
	Cursor core.Cursor
}

// Invalidate reports a reorg above the given cursor; everything strictly
// after it must be rolled back.
type Invalidate struct {
	Cursor core.Cursor
}

func (Started) isBlockEvent()    {}
func (Ingested) isBlockEvent()   {}
func (Finalized) isBlockEvent()  {}
func (Invalidate) isBlockEvent() {}

// SnapshotChange is the stream produced by the Segmenter.
type SnapshotChange interface {
	isSnapshotChange()
}

// SnapshotStarted carries the snapshot the segmenter will build on.
type SnapshotStarted struct {
	Snapshot Snapshot
}

// BlockIngested reports a block buffered into the in-progress segment.
type BlockIngested struct {
	Cursor core.Cursor
}

// StateChanged reports a published snapshot. NewState strictly dominates the
// previous state in (GroupCount, ExtraSegmentCount) lexicographic order.
type StateChanged struct {
	NewState  IngestionState
	Finalized core.Cursor
}

func (SnapshotStarted) isSnapshotChange() {}
func (BlockIngested) isSnapshotChange()   {}
func (StateChanged) isSnapshotChange()    {}
