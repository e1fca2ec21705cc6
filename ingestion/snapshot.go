package ingestion

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"

	"github.com/stratatech/strata/core"
	"github.com/stratatech/strata/segment"
	"github.com/stratatech/strata/storage"
)

// SnapshotName is the durable-store key of the snapshot document.
const SnapshotName = "snapshot"

// IngestionState counts the published artifacts. GroupCount*GroupSize +
// ExtraSegmentCount*SegmentSize equals the number of finalized blocks
// sealed so far.
type IngestionState struct {
	GroupCount        uint64 `json:"group_count"`
	ExtraSegmentCount uint64 `json:"extra_segment_count"`
}

// Snapshot is the revision-numbered manifest pointing at the currently
// published groups and extra segments. Revision strictly increases on every
// publish, and every artifact a snapshot references is durable before the
// snapshot itself is written.
type Snapshot struct {
	Revision       uint64          `json:"revision"`
	SegmentOptions segment.Options `json:"segment_options"`
	Ingestion      IngestionState  `json:"ingestion"`
	StartingBlock  uint64          `json:"starting_block"`
}

// StartingSnapshot is the snapshot of a pipeline that has sealed nothing yet.
func StartingSnapshot(startingBlock uint64, options segment.Options) Snapshot {
	return Snapshot{
		SegmentOptions: options,
		StartingBlock:  startingBlock,
	}
}

// NextBlock returns the first block number not yet covered by a sealed
// segment, i.e. where ingestion resumes.
func (s Snapshot) NextBlock() uint64 {
	sealed := s.Ingestion.GroupCount*s.SegmentOptions.GroupSize +
		s.Ingestion.ExtraSegmentCount*s.SegmentOptions.SegmentSize
	return s.SegmentOptions.SegmentStart(s.StartingBlock) + sealed
}

func (s Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: serializing snapshot: %s", core.ErrFatal, err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return s, nil
}

// WriteSnapshot publishes the snapshot document, overwriting any previous
// revision.
func WriteSnapshot(ctx context.Context, backend storage.Backend, s Snapshot) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	return storage.WriteAll(ctx, backend, "", SnapshotName, data)
}

// ReadSnapshot reads the snapshot document. Overwrites may tear concurrent
// reads, so the document is re-read with backoff until two consecutive
// reads agree on the revision. Returns false when no snapshot exists.
func ReadSnapshot(ctx context.Context, backend storage.Backend) (Snapshot, bool, error) {
	exists, err := backend.Exists(ctx, "", SnapshotName)
	if err != nil {
		return Snapshot{}, false, err
	}
	if !exists {
		return Snapshot{}, false, nil
	}

	var snapshot Snapshot
	stable := func() error {
		first, err := readSnapshotOnce(ctx, backend)
		if err != nil {
			return err
		}
		second, err := readSnapshotOnce(ctx, backend)
		if err != nil {
			return err
		}
		if first.Revision != second.Revision {
			return fmt.Errorf("snapshot revision unstable: %d != %d", first.Revision, second.Revision)
		}
		snapshot = second
		return nil
	}
	policy := backoff.WithMaxRetries(backoff.WithContext(backoff.NewExponentialBackOff(), ctx), 8)
	if err := backoff.Retry(stable, policy); err != nil {
		return Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func readSnapshotOnce(ctx context.Context, backend storage.Backend) (Snapshot, error) {
	data, err := storage.ReadAll(ctx, backend, "", SnapshotName)
	if err != nil {
		return Snapshot{}, err
	}
	return DecodeSnapshot(data)
}

// StagedBlockPrefix is the staging-store prefix of one downloaded block.
func StagedBlockPrefix(cursor core.Cursor) string {
	return fmt.Sprintf("blocks/%d-%s", cursor.Number, cursor.HashHex())
}

// StagedBlockName is the blob name inside a staged block prefix.
const StagedBlockName = "block"
