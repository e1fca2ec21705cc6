package stream

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goccy/go-json"

	"github.com/stratatech/strata/chain"
	"github.com/stratatech/strata/core"
)

// Filter selects blocks by their log addresses and topics. An empty filter
// matches everything. Both dimensions, when present, must match.
type Filter struct {
	Addresses []common.Address `json:"addresses,omitempty"`
	Topics    []common.Hash    `json:"topics,omitempty"`
}

// DecodeFilter parses the opaque filter bytes of a stream request. Malformed
// bytes are a protocol violation.
func DecodeFilter(data []byte) (Filter, error) {
	if len(data) == 0 {
		return Filter{}, nil
	}
	var f Filter
	if err := json.Unmarshal(data, &f); err != nil {
		return Filter{}, fmt.Errorf("%w: malformed filter: %s", core.ErrProtocol, err)
	}
	return f, nil
}

func (f Filter) Encode() []byte {
	data, _ := json.Marshal(f)
	return data
}

func (f Filter) IsEmpty() bool {
	return len(f.Addresses) == 0 && len(f.Topics) == 0
}

// MatchesBlock reports whether any log in the block satisfies the filter.
func (f Filter) MatchesBlock(block *chain.Block) bool {
	if f.IsEmpty() {
		return true
	}
	for i := range block.Logs {
		if f.matchesLog(&block.Logs[i]) {
			return true
		}
	}
	return false
}

func (f Filter) matchesLog(log *chain.Log) bool {
	if len(f.Addresses) > 0 {
		found := false
		for _, address := range f.Addresses {
			if log.Address == address {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Topics) > 0 {
		for _, topic := range f.Topics {
			for _, logTopic := range log.Topics {
				if topic == logTopic {
					return true
				}
			}
		}
		return false
	}
	return true
}
