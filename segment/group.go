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
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/ethereum/go-ethereum/common"
)

// GroupBuilder aggregates the indices of consecutive segments into one
// segment-group artifact. The group maps every address and topic seen in the
// group's range to the set of segment ordinals containing it, supporting
// coarse "which segments can match this filter" pushdown.
//
// Encoding is deterministic: segments in insertion order, keys byte-sorted,
// bitmaps run-optimized before serialization.
type GroupBuilder struct {
	segments  []uint64
	addresses map[common.Address]*roaring.Bitmap
	topics    map[common.Hash]*roaring.Bitmap
}

func NewGroupBuilder() *GroupBuilder {
	return &GroupBuilder{
		addresses: make(map[common.Address]*roaring.Bitmap),
		topics:    make(map[common.Hash]*roaring.Bitmap),
	}
}

// AddSegmentIndex appends one sealed segment's index to the group.
func (b *GroupBuilder) AddSegmentIndex(segmentStart uint64, index Index) {
	ordinal := uint32(len(b.segments))
	b.segments = append(b.segments, segmentStart)
	for address := range index.Addresses {
		bm, ok := b.addresses[address]
		if !ok {
			bm = roaring.New()
			b.addresses[address] = bm
		}
		bm.Add(ordinal)
	}
	for topic := range index.Topics {
		bm, ok := b.topics[topic]
		if !ok {
			bm = roaring.New()
			b.topics[topic] = bm
		}
		bm.Add(ordinal)
	}
}

// SegmentCount is the number of segment indices added so far.
func (b *GroupBuilder) SegmentCount() int {
	return len(b.segments)
}

func (b *GroupBuilder) Encode() ([]byte, error) {
	if len(b.segments) == 0 {
		return nil, fmt.Errorf("segment group has no segments")
	}

	var payload []byte
	payload = binary.BigEndian.AppendUint32(payload, uint32(len(b.segments)))
	for _, start := range b.segments {
		payload = binary.BigEndian.AppendUint64(payload, start)
	}

	addresses := make([]common.Address, 0, len(b.addresses))
	for address := range b.addresses {
		addresses = append(addresses, address)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return bytes.Compare(addresses[i][:], addresses[j][:]) < 0
	})
	payload = binary.BigEndian.AppendUint32(payload, uint32(len(addresses)))
	for _, address := range addresses {
		payload = append(payload, address[:]...)
		var err error
		payload, err = appendBitmap(payload, b.addresses[address])
		if err != nil {
			return nil, err
		}
	}

	topics := make([]common.Hash, 0, len(b.topics))
	for topic := range b.topics {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		return bytes.Compare(topics[i][:], topics[j][:]) < 0
	})
	payload = binary.BigEndian.AppendUint32(payload, uint32(len(topics)))
	for _, topic := range topics {
		payload = append(payload, topic[:]...)
		var err error
		payload, err = appendBitmap(payload, b.topics[topic])
		if err != nil {
			return nil, err
		}
	}

	return appendFrame(nil, groupMagic, payload), nil
}

func (b *GroupBuilder) Reset() {
	b.segments = nil
	b.addresses = make(map[common.Address]*roaring.Bitmap)
	b.topics = make(map[common.Hash]*roaring.Bitmap)
}

func appendBitmap(dst []byte, bm *roaring.Bitmap) ([]byte, error) {
	bm.RunOptimize()
	data, err := bm.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing bitmap: %w", err)
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(data)))
	return append(dst, data...), nil
}
