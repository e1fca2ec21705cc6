package chain

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stratatech/strata/core"
)

// fakeTipProvider serves scripted head/finalized cursors.
type fakeTipProvider struct {
	mu        sync.Mutex
	head      core.Cursor
	finalized core.Cursor
}

func cursorAt(number uint64, tag byte) core.Cursor {
	return core.NewCursor(number, common.BytesToHash([]byte{tag, byte(number)}))
}

func (p *fakeTipProvider) setTips(head, finalized core.Cursor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.head, p.finalized = head, finalized
}

func (p *fakeTipProvider) HeadCursor(context.Context) (core.Cursor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.head, nil
}

func (p *fakeTipProvider) FinalizedCursor(context.Context) (core.Cursor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finalized, nil
}

func (p *fakeTipProvider) BlockByNumber(context.Context, uint64, bool) (*Block, error) {
	panic("not used")
}
func (p *fakeTipProvider) ReceiptsByBlockNumber(context.Context, uint64) ([]Receipt, error) {
	panic("not used")
}
func (p *fakeTipProvider) TransactionsByHash(context.Context, []common.Hash) ([]Transaction, error) {
	panic("not used")
}
func (p *fakeTipProvider) ReceiptsByTransactionHash(context.Context, []common.Hash) ([]Receipt, error) {
	panic("not used")
}

func nextChange(t *testing.T, changes <-chan ChainChange) ChainChange {
	t.Helper()
	select {
	case change, ok := <-changes:
		require.True(t, ok, "change stream closed unexpectedly")
		return change
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for chain change")
		return nil
	}
}

func TestTrackerInitializeThenHeadAndFinalized(t *testing.T) {
	provider := &fakeTipProvider{}
	provider.setTips(cursorAt(10, 0xaa), cursorAt(5, 0xaa))

	tracker := NewTracker(provider, TrackerOptions{PollInterval: 5 * time.Millisecond}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan ChainChange, 16)
	done := make(chan error, 1)
	go func() { done <- tracker.Run(ctx, changes) }()

	init, ok := nextChange(t, changes).(Initialize)
	require.True(t, ok, "first change must be Initialize")
	assert.Equal(t, cursorAt(10, 0xaa), init.Head)
	assert.Equal(t, cursorAt(5, 0xaa), init.Finalized)

	provider.setTips(cursorAt(11, 0xaa), cursorAt(5, 0xaa))
	head, ok := nextChange(t, changes).(NewHead)
	require.True(t, ok, "expected NewHead, not %T", head)
	assert.Equal(t, cursorAt(11, 0xaa), head.Cursor)

	provider.setTips(cursorAt(12, 0xaa), cursorAt(6, 0xaa))
	finalized, ok := nextChange(t, changes).(NewFinalized)
	require.True(t, ok)
	assert.Equal(t, cursorAt(6, 0xaa), finalized.Cursor)
	head, ok = nextChange(t, changes).(NewHead)
	require.True(t, ok)
	assert.Equal(t, cursorAt(12, 0xaa), head.Cursor)

	cancel()
	require.NoError(t, <-done)
}

func TestTrackerInvalidateOnReorg(t *testing.T) {
	provider := &fakeTipProvider{}
	provider.setTips(cursorAt(10, 0xaa), cursorAt(5, 0xaa))

	tracker := NewTracker(provider, TrackerOptions{PollInterval: 5 * time.Millisecond}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan ChainChange, 16)
	done := make(chan error, 1)
	go func() { done <- tracker.Run(ctx, changes) }()

	_ = nextChange(t, changes).(Initialize)

	// Same head number, different hash: the previously reported head is
	// gone.
	provider.setTips(cursorAt(10, 0xbb), cursorAt(5, 0xaa))
	invalidate, ok := nextChange(t, changes).(Invalidate)
	require.True(t, ok, "expected Invalidate")
	assert.Equal(t, cursorAt(5, 0xaa), invalidate.Cursor)
	head, ok := nextChange(t, changes).(NewHead)
	require.True(t, ok)
	assert.Equal(t, cursorAt(10, 0xbb), head.Cursor)

	cancel()
	require.NoError(t, <-done)
}

func TestTrackerFinalizedMovingBackwardIsFatal(t *testing.T) {
	provider := &fakeTipProvider{}
	provider.setTips(cursorAt(10, 0xaa), cursorAt(5, 0xaa))

	tracker := NewTracker(provider, TrackerOptions{PollInterval: 5 * time.Millisecond}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan ChainChange, 16)
	done := make(chan error, 1)
	go func() { done <- tracker.Run(ctx, changes) }()

	_ = nextChange(t, changes).(Initialize)

	provider.setTips(cursorAt(11, 0xaa), cursorAt(4, 0xaa))

	select {
	case err := <-done:
		require.ErrorIs(t, err, core.ErrFatal)
	case <-time.After(5 * time.Second):
		t.Fatal("tracker did not fail")
	}
}
