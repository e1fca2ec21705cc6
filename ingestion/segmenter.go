package ingestion

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stratatech/strata/core"
	"github.com/stratatech/strata/segment"
	"github.com/stratatech/strata/storage"
)

// Segmenter accumulates ingested blocks, seals them into immutable segments
// once finalized, promotes segments into groups and publishes monotonically
// numbered snapshots. Artifacts are always durable before the snapshot that
// references them.
type Segmenter struct {
	staging storage.Backend
	durable storage.Backend
	logger  *zap.Logger
}

// segmentData is the in-progress segment: the cursor the current group
// started at plus every buffered cursor, in order.
type segmentData struct {
	groupStart core.Cursor
	cursors    []core.Cursor
}

// worker holds the state machine driven by BlockEvent.
type worker struct {
	staging storage.Backend
	durable storage.Backend
	logger  *zap.Logger
	out     chan<- SnapshotChange

	snapshot  Snapshot
	finalized core.Cursor
	segment   *segmentData
	group     *segment.GroupBuilder
}

func NewSegmenter(staging storage.Backend, durable storage.Backend, logger *zap.Logger) *Segmenter {
	return &Segmenter{
		staging: staging,
		durable: durable,
		logger:  logger.Named("segmenter"),
	}
}

// Run consumes BlockEvent until ctx is cancelled or a fatal error occurs.
// The changes channel is closed on return.
func (s *Segmenter) Run(ctx context.Context, startingSnapshot Snapshot, events <-chan BlockEvent, changes chan<- SnapshotChange) error {
	defer close(changes)

	// Segments can only contain finalized data, so the finalized cursor is
	// tracked from the very first event.
	var finalized core.Cursor
	select {
	case <-ctx.Done():
		return nil
	case event, ok := <-events:
		if !ok {
			return fmt.Errorf("%w: ingestion events stream ended unexpectedly", core.ErrFatal)
		}
		started, ok := event.(Started)
		if !ok {
			return fmt.Errorf("%w: expected first event to be Started", core.ErrFatal)
		}
		finalized = started.Finalized
	}

	if !send(ctx, changes, SnapshotChange(SnapshotStarted{Snapshot: startingSnapshot})) {
		return nil
	}

	w := &worker{
		staging:   s.staging,
		durable:   s.durable,
		logger:    s.logger,
		out:       changes,
		snapshot:  startingSnapshot,
		finalized: finalized,
		group:     segment.NewGroupBuilder(),
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return fmt.Errorf("%w: ingestion events stream ended unexpectedly", core.ErrFatal)
			}
			if err := w.handleEvent(ctx, event); err != nil {
				return fmt.Errorf("failed to handle ingestion event: %w", err)
			}
		}
	}
}

func (w *worker) handleEvent(ctx context.Context, event BlockEvent) error {
	switch event := event.(type) {
	case Ingested:
		return w.handleIngested(ctx, event.Cursor)

	case Finalized:
		w.logger.Info("finalized cursor updated",
			zap.Uint64("number", event.Cursor.Number),
			zap.String("hash", event.Cursor.HashHex()))
		w.finalized = event.Cursor
		return w.writeSegmentIfNeeded(ctx)

	case Invalidate:
		return w.handleInvalidate(ctx, event.Cursor)

	default:
		return fmt.Errorf("%w: unexpected event in ingestion stream: %T", core.ErrFatal, event)
	}
}

func (w *worker) handleIngested(ctx context.Context, cursor core.Cursor) error {
	w.logger.Debug("new block ingested", zap.Stringer("cursor", cursor))

	// The first cursor ever, or the first after a group was sealed with
	// nothing left buffered, opens a new in-progress segment. After a plain
	// segment seal the in-progress segment stays open with no cursors.
	if w.segment == nil {
		w.segment = &segmentData{
			groupStart: cursor,
			cursors:    []core.Cursor{cursor},
		}
		if !send(ctx, w.out, SnapshotChange(BlockIngested{Cursor: cursor})) {
			return context.Canceled
		}
		return nil
	}

	w.segment.cursors = append(w.segment.cursors, cursor)

	// A cursor inside the same segment as the finalized tip cannot seal
	// anything yet.
	finalizedSegmentStart := w.snapshot.SegmentOptions.SegmentStart(w.finalized.Number)
	if cursor.Number >= finalizedSegmentStart {
		if !send(ctx, w.out, SnapshotChange(BlockIngested{Cursor: cursor})) {
			return context.Canceled
		}
		return nil
	}

	return w.writeSegmentIfNeeded(ctx)
}

// handleInvalidate rolls back buffered cursors above the invalidated cursor,
// which is the last cursor still valid. Finalized data cannot be reorged: an
// invalidation whose cursor is below the finalized number, or at that number
// with a different hash, is fatal. An invalidation carrying the finalized
// cursor itself is accepted.
func (w *worker) handleInvalidate(ctx context.Context, cursor core.Cursor) error {
	if cursor.Number <= w.finalized.Number && !cursor.Equal(w.finalized) {
		return fmt.Errorf("%w: invalidation below the finalized cursor (%s <= %s)", core.ErrFatal, cursor, w.finalized)
	}
	if w.segment == nil {
		return nil
	}

	kept := w.segment.cursors[:0]
	for _, c := range w.segment.cursors {
		if c.Number > cursor.Number {
			if err := w.staging.Delete(ctx, StagedBlockPrefix(c)); err != nil {
				return err
			}
			continue
		}
		kept = append(kept, c)
	}
	w.segment.cursors = kept
	if len(kept) == 0 {
		w.segment = nil
	}
	return nil
}

// writeSegmentIfNeeded seals as many segments as the finalized cursor
// allows, emitting StateChanged after every publish.
func (w *worker) writeSegmentIfNeeded(ctx context.Context) error {
	for {
		wrote, err := w.doWriteSegmentIfNeeded(ctx)
		if err != nil {
			return err
		}
		if !wrote {
			return nil
		}
		change := StateChanged{NewState: w.snapshot.Ingestion, Finalized: w.finalized}
		if !send(ctx, w.out, SnapshotChange(change)) {
			return context.Canceled
		}
	}
}

// doWriteSegmentIfNeeded writes one segment (and possibly its group) if the
// buffered data allows it. Returns true if it sealed a segment.
func (w *worker) doWriteSegmentIfNeeded(ctx context.Context) (bool, error) {
	if w.segment == nil || len(w.segment.cursors) == 0 {
		return false, nil
	}

	options := w.snapshot.SegmentOptions
	segmentSize := int(options.SegmentSize)
	if len(w.segment.cursors) < segmentSize {
		return false, nil
	}

	firstCursor := w.segment.cursors[0]
	lastCursor := w.segment.cursors[segmentSize-1]

	currentSegmentStart := options.SegmentStart(firstCursor.Number)
	nextSegmentStart := options.SegmentStart(lastCursor.Number + 1)

	// A segment seals only once the finalized cursor has moved strictly
	// past its boundary; a finalized tip sitting on the boundary block
	// keeps the segment open.
	if w.finalized.Number <= nextSegmentStart {
		w.logger.Debug("data is not finalized yet",
			zap.Uint64("last", lastCursor.Number),
			zap.Uint64("finalized", w.finalized.Number))
		return false, nil
	}

	var toSegment, toKeep []core.Cursor
	for _, cursor := range w.segment.cursors {
		if cursor.Number >= nextSegmentStart {
			toKeep = append(toKeep, cursor)
		} else {
			toSegment = append(toSegment, cursor)
		}
	}
	w.segment.cursors = toKeep

	currentGroupStart := options.GroupStart(w.segment.groupStart.Number)
	nextGroupStart := options.GroupStart(toSegment[len(toSegment)-1].Number + 1)

	w.logger.Info("writing segment", zap.Uint64("segment_start", currentSegmentStart))

	builder := segment.NewSegmentBuilder()
	for _, cursor := range toSegment {
		w.logger.Debug("copying block to segment", zap.Stringer("cursor", cursor))
		record, err := storage.ReadAll(ctx, w.staging, StagedBlockPrefix(cursor), StagedBlockName)
		if err != nil {
			return false, fmt.Errorf("failed to read block %s: %w", cursor, err)
		}
		if err := builder.AddSingleBlock(cursor.Number, record); err != nil {
			return false, err
		}
	}

	if builder.HeaderCount() != segmentSize {
		return false, fmt.Errorf("%w: segment %d has %d records, want %d",
			core.ErrFatal, currentSegmentStart, builder.HeaderCount(), segmentSize)
	}

	artifact, err := builder.Encode()
	if err != nil {
		return false, err
	}
	segmentName := options.FormatSegmentName(currentSegmentStart)
	if err := storage.WriteAll(ctx, w.durable, "segment", segmentName, artifact); err != nil {
		return false, err
	}
	segmentsSealed.Inc()

	w.group.AddSegmentIndex(currentSegmentStart, builder.TakeIndex())

	w.snapshot.Revision++
	w.snapshot.Ingestion.ExtraSegmentCount++

	if currentGroupStart == nextGroupStart {
		if err := w.writeSnapshot(ctx); err != nil {
			return false, err
		}
		return true, w.deleteStaged(ctx, toSegment)
	}

	w.logger.Info("writing segment group", zap.Uint64("segment_group", currentGroupStart))

	groupArtifact, err := w.group.Encode()
	if err != nil {
		return false, err
	}
	groupName := options.FormatSegmentName(currentGroupStart)
	if err := storage.WriteAll(ctx, w.durable, "group", groupName, groupArtifact); err != nil {
		return false, err
	}
	w.group.Reset()
	groupsSealed.Inc()

	w.snapshot.Ingestion.GroupCount++
	w.snapshot.Ingestion.ExtraSegmentCount = 0

	if err := w.writeSnapshot(ctx); err != nil {
		return false, err
	}
	if err := w.deleteStaged(ctx, toSegment); err != nil {
		return false, err
	}

	// The group is complete: clear the in-progress segment. Cursors past
	// the group boundary stay buffered and open the next group.
	if len(toKeep) == 0 {
		w.segment = nil
	} else {
		w.segment = &segmentData{groupStart: toKeep[0], cursors: toKeep}
	}
	return true, nil
}

func (w *worker) writeSnapshot(ctx context.Context) error {
	if err := WriteSnapshot(ctx, w.durable, w.snapshot); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	snapshotRevision.Set(float64(w.snapshot.Revision))
	return nil
}

// deleteStaged removes the staged block files of sealed cursors. Runs only
// after the snapshot referencing their segment is durable.
func (w *worker) deleteStaged(ctx context.Context, cursors []core.Cursor) error {
	for _, cursor := range cursors {
		if err := w.staging.Delete(ctx, StagedBlockPrefix(cursor)); err != nil {
			return err
		}
	}
	return nil
}
