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

package core

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Cursor identifies a specific block on a specific fork. Cursors are totally
// ordered by block number; identity is the (number, hash) pair. A cursor with
// an all-zero hash denotes "before genesis".
type Cursor struct {
	Number uint64
	Hash   common.Hash
}

func NewCursor(number uint64, hash common.Hash) Cursor {
	return Cursor{Number: number, Hash: hash}
}

// IsGenesisSentinel reports whether the cursor is the "before genesis" marker.
func (c Cursor) IsGenesisSentinel() bool {
	return c.Hash == (common.Hash{})
}

// Equal reports identity, i.e. both number and hash match.
func (c Cursor) Equal(other Cursor) bool {
	return c.Number == other.Number && c.Hash == other.Hash
}

// Before reports ordering by block number only.
func (c Cursor) Before(other Cursor) bool {
	return c.Number < other.Number
}

// HashHex returns the hash as lowercase hex without the 0x prefix, used in
// staged block keys.
func (c Cursor) HashHex() string {
	return fmt.Sprintf("%x", c.Hash[:])
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d/%s", c.Number, c.Hash.Hex())
}
