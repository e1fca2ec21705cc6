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

	"github.com/ethereum/go-ethereum/common"

	"github.com/stratatech/strata/chain"
)

// Index is the per-segment filter index: the set of log addresses and topics
// occurring anywhere in the segment. Group builders aggregate it into the
// coarse pushdown index.
type Index struct {
	Addresses map[common.Address]struct{}
	Topics    map[common.Hash]struct{}
}

func NewIndex() Index {
	return Index{
		Addresses: make(map[common.Address]struct{}),
		Topics:    make(map[common.Hash]struct{}),
	}
}

func (idx Index) AddBlock(block *chain.Block) {
	for i := range block.Logs {
		idx.Addresses[block.Logs[i].Address] = struct{}{}
		for _, topic := range block.Logs[i].Topics {
			idx.Topics[topic] = struct{}{}
		}
	}
}

// SegmentBuilder seals staged single-block records into one immutable
// segment artifact. The segment body is the exact concatenation of the
// single-block records in block order.
type SegmentBuilder struct {
	records    [][]byte
	firstBlock uint64
	index      Index
}

func NewSegmentBuilder() *SegmentBuilder {
	return &SegmentBuilder{index: NewIndex()}
}

// AddSingleBlock verifies the framed record and appends it to the segment.
// Records must be added in increasing block-number order.
func (b *SegmentBuilder) AddSingleBlock(number uint64, record []byte) error {
	block, err := DecodeSingleBlock(record)
	if err != nil {
		return fmt.Errorf("block %d: %w", number, err)
	}
	if block.Header.Number != number {
		return fmt.Errorf("block %d: record contains block %d", number, block.Header.Number)
	}
	if len(b.records) == 0 {
		b.firstBlock = number
	}
	b.records = append(b.records, record)
	b.index.AddBlock(block)
	return nil
}

// HeaderCount is the number of block records added so far.
func (b *SegmentBuilder) HeaderCount() int {
	return len(b.records)
}

// Encode renders the segment artifact: a frame whose payload is the record
// count followed by the concatenated single-block records.
func (b *SegmentBuilder) Encode() ([]byte, error) {
	if len(b.records) == 0 {
		return nil, fmt.Errorf("segment has no records")
	}
	payload := binary.BigEndian.AppendUint32(nil, uint32(len(b.records)))
	for _, record := range b.records {
		payload = append(payload, record...)
	}
	return appendFrame(nil, segmentMagic, payload), nil
}

// TakeIndex returns the accumulated index and leaves the builder with a
// fresh one.
func (b *SegmentBuilder) TakeIndex() Index {
	index := b.index
	b.index = NewIndex()
	return index
}

func (b *SegmentBuilder) Reset() {
	b.records = nil
	b.firstBlock = 0
	b.index = NewIndex()
}
