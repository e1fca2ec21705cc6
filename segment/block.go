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
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/stratatech/strata/chain"
)

// BlockBuilder accumulates one block's parts and encodes them as a single
// framed record. Builders are reusable: Reset clears the accumulated state
// and output is byte-identical whether the builder is fresh or reused.
type BlockBuilder struct {
	block chain.Block
}

func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{}
}

func (b *BlockBuilder) AddBlockHeader(header chain.Header) {
	b.block.Header = header
}

func (b *BlockBuilder) AddTransactions(transactions []chain.Transaction) {
	b.block.Transactions = append(b.block.Transactions, transactions...)
}

func (b *BlockBuilder) AddReceipts(receipts []chain.Receipt) {
	b.block.Receipts = append(b.block.Receipts, receipts...)
}

// AddLogs flattens the logs carried by receipts into the block's log list,
// preserving receipt order.
func (b *BlockBuilder) AddLogs(receipts []chain.Receipt) {
	for i := range receipts {
		b.block.Logs = append(b.block.Logs, receipts[i].Logs...)
	}
}

// Encode renders the accumulated block as one framed single-block record.
func (b *BlockBuilder) Encode() ([]byte, error) {
	payload, err := rlp.EncodeToBytes(&b.block)
	if err != nil {
		return nil, fmt.Errorf("encoding block %d: %w", b.block.Header.Number, err)
	}
	return appendFrame(nil, singleBlockMagic, payload), nil
}

func (b *BlockBuilder) Reset() {
	b.block = chain.Block{}
}

// DecodeSingleBlock verifies and decodes one framed single-block record.
// The record must contain exactly one frame.
func DecodeSingleBlock(data []byte) (*chain.Block, error) {
	payload, err := decodeWholeFrame(data, singleBlockMagic)
	if err != nil {
		return nil, fmt.Errorf("single block record: %w", err)
	}
	block := new(chain.Block)
	if err := rlp.DecodeBytes(payload, block); err != nil {
		return nil, fmt.Errorf("decoding single block record: %w", err)
	}
	return block, nil
}

// VerifySingleBlock checks the record's framing without decoding the body.
func VerifySingleBlock(data []byte) error {
	_, err := decodeWholeFrame(data, singleBlockMagic)
	return err
}
