package chain

import "github.com/stratatech/strata/core"

// ChainChange is the event stream produced by the Tracker. Initialize is
// always the first message; receivers must handle every variant exhaustively.
type ChainChange interface {
	isChainChange()
}

// Initialize reports the chain state at the time the tracker started. It is
// sent exactly once, before any other change.
type Initialize struct {
	Head      core.Cursor
	Finalized core.Cursor
}

// NewHead reports that the chain head moved.
type NewHead struct {
	Cursor core.Cursor
}

// NewFinalized reports that the finalized cursor advanced.
type NewFinalized struct {
	Cursor core.Cursor
}

// Invalidate reports that a previously reported block is no longer part of
// the canonical chain. Cursor is the last cursor known to still be valid.
type Invalidate struct {
	Cursor core.Cursor
}

func (Initialize) isChainChange()   {}
func (NewHead) isChainChange()      {}
func (NewFinalized) isChainChange() {}
func (Invalidate) isChainChange()   {}
