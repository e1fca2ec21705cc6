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

import "fmt"

// segmentNameWidth is the zero-padded width of segment and group names.
// 10 decimal digits cover any realistic block number.
const segmentNameWidth = 10

// Options controls how finalized blocks are grouped into segments and
// segments into segment groups.
type Options struct {
	// SegmentSize is the number of contiguous blocks in one segment.
	SegmentSize uint64 `json:"segment_size" toml:"segment_size"`
	// GroupSize is the number of blocks covered by one segment group.
	// Must be a multiple of SegmentSize.
	GroupSize uint64 `json:"group_size" toml:"group_size"`
}

// DefaultOptions are the options used when none are configured.
var DefaultOptions = Options{
	SegmentSize: 100,
	GroupSize:   10_000,
}

func (o Options) Validate() error {
	if o.SegmentSize == 0 {
		return fmt.Errorf("segment size must be positive")
	}
	if o.GroupSize == 0 {
		return fmt.Errorf("group size must be positive")
	}
	if o.GroupSize%o.SegmentSize != 0 {
		return fmt.Errorf("group size %d is not a multiple of segment size %d", o.GroupSize, o.SegmentSize)
	}
	return nil
}

// SegmentStart returns the first block number of the segment containing n.
func (o Options) SegmentStart(n uint64) uint64 {
	return n - (n % o.SegmentSize)
}

// GroupStart returns the first block number of the segment group containing n.
func (o Options) GroupStart(n uint64) uint64 {
	return n - (n % o.GroupSize)
}

// SegmentsInGroup is the number of segments aggregated by one group.
func (o Options) SegmentsInGroup() uint64 {
	return o.GroupSize / o.SegmentSize
}

// FormatSegmentName renders a segment (or group) starting block as the
// zero-padded decimal used in storage keys.
func (o Options) FormatSegmentName(start uint64) string {
	return fmt.Sprintf("%0*d", segmentNameWidth, start)
}
