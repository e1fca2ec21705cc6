package stream

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/stratatech/strata/core"
	"github.com/stratatech/strata/gointerfaces/datastream"
)

func protoCursor(c *core.Cursor) *datastream.Cursor {
	if c == nil {
		return nil
	}
	return &datastream.Cursor{Number: c.Number, Hash: c.Hash.Bytes()}
}

func fromProtoCursor(c *datastream.Cursor) *core.Cursor {
	if c == nil {
		return nil
	}
	cursor := core.NewCursor(c.Number, common.BytesToHash(c.Hash))
	return &cursor
}
