/*
   Copyright 2024 The Strata Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package segment

import (
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring"
	"github.com/ethereum/go-ethereum/common"

	"github.com/stratatech/strata/chain"
)

// SegmentReader iterates the single-block records of one segment artifact.
type SegmentReader struct {
	records [][]byte
}

func NewSegmentReader(data []byte) (*SegmentReader, error) {
	payload, err := decodeWholeFrame(data, segmentMagic)
	if err != nil {
		return nil, fmt.Errorf("segment artifact: %w", err)
	}
	if len(payload) < 4 {
		return nil, fmt.Errorf("segment artifact: payload truncated")
	}
	count := binary.BigEndian.Uint32(payload)
	rest := payload[4:]

	records := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		_, remaining, err := decodeFrame(rest, singleBlockMagic)
		if err != nil {
			return nil, fmt.Errorf("segment record %d: %w", i, err)
		}
		// Keep the framed record intact; batches carry framed records.
		records = append(records, rest[:len(rest)-len(remaining)])
		rest = remaining
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("segment artifact: %d trailing bytes", len(rest))
	}
	return &SegmentReader{records: records}, nil
}

func (r *SegmentReader) Count() int {
	return len(r.records)
}

// Record returns the i-th framed single-block record.
func (r *SegmentReader) Record(i int) []byte {
	return r.records[i]
}

// Block decodes the i-th record.
func (r *SegmentReader) Block(i int) (*chain.Block, error) {
	return DecodeSingleBlock(r.records[i])
}

// GroupReader answers coarse filter questions against one group artifact.
type GroupReader struct {
	segments  []uint64
	addresses map[common.Address]*roaring.Bitmap
	topics    map[common.Hash]*roaring.Bitmap
}

func NewGroupReader(data []byte) (*GroupReader, error) {
	payload, err := decodeWholeFrame(data, groupMagic)
	if err != nil {
		return nil, fmt.Errorf("group artifact: %w", err)
	}

	r := &GroupReader{
		addresses: make(map[common.Address]*roaring.Bitmap),
		topics:    make(map[common.Hash]*roaring.Bitmap),
	}

	if len(payload) < 4 {
		return nil, fmt.Errorf("group artifact: payload truncated")
	}
	count := binary.BigEndian.Uint32(payload)
	payload = payload[4:]
	for i := uint32(0); i < count; i++ {
		if len(payload) < 8 {
			return nil, fmt.Errorf("group artifact: segment list truncated")
		}
		r.segments = append(r.segments, binary.BigEndian.Uint64(payload))
		payload = payload[8:]
	}

	payload, err = readBitmapMap(payload, common.AddressLength, func(key []byte, bm *roaring.Bitmap) {
		r.addresses[common.BytesToAddress(key)] = bm
	})
	if err != nil {
		return nil, fmt.Errorf("group artifact addresses: %w", err)
	}
	payload, err = readBitmapMap(payload, common.HashLength, func(key []byte, bm *roaring.Bitmap) {
		r.topics[common.BytesToHash(key)] = bm
	})
	if err != nil {
		return nil, fmt.Errorf("group artifact topics: %w", err)
	}
	if len(payload) != 0 {
		return nil, fmt.Errorf("group artifact: %d trailing bytes", len(payload))
	}
	return r, nil
}

// Segments lists the starting block numbers of the group's segments.
func (r *GroupReader) Segments() []uint64 {
	return r.segments
}

// Candidates returns the starting block numbers of segments that may match
// a filter over the given addresses and topics. Both dimensions, when
// present, must match; an empty filter matches every segment.
func (r *GroupReader) Candidates(addresses []common.Address, topics []common.Hash) []uint64 {
	if len(addresses) == 0 && len(topics) == 0 {
		return r.segments
	}

	var result *roaring.Bitmap
	if len(addresses) > 0 {
		union := roaring.New()
		for _, address := range addresses {
			if bm, ok := r.addresses[address]; ok {
				union.Or(bm)
			}
		}
		result = union
	}
	if len(topics) > 0 {
		union := roaring.New()
		for _, topic := range topics {
			if bm, ok := r.topics[topic]; ok {
				union.Or(bm)
			}
		}
		if result == nil {
			result = union
		} else {
			result.And(union)
		}
	}

	candidates := make([]uint64, 0, result.GetCardinality())
	it := result.Iterator()
	for it.HasNext() {
		ordinal := it.Next()
		if int(ordinal) < len(r.segments) {
			candidates = append(candidates, r.segments[ordinal])
		}
	}
	return candidates
}

func readBitmapMap(payload []byte, keyLen int, visit func(key []byte, bm *roaring.Bitmap)) ([]byte, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("count truncated")
	}
	count := binary.BigEndian.Uint32(payload)
	payload = payload[4:]
	for i := uint32(0); i < count; i++ {
		if len(payload) < keyLen+4 {
			return nil, fmt.Errorf("entry %d truncated", i)
		}
		key := payload[:keyLen]
		size := binary.BigEndian.Uint32(payload[keyLen:])
		payload = payload[keyLen+4:]
		if len(payload) < int(size) {
			return nil, fmt.Errorf("entry %d bitmap truncated", i)
		}
		bm := roaring.New()
		if err := bm.UnmarshalBinary(payload[:size]); err != nil {
			return nil, fmt.Errorf("entry %d bitmap: %w", i, err)
		}
		visit(key, bm)
		payload = payload[size:]
	}
	return payload, nil
}
