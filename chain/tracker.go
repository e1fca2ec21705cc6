package chain

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stratatech/strata/core"
)

// DefaultPollInterval bounds how often the tracker polls the provider tips.
const DefaultPollInterval = 2 * time.Second

type TrackerOptions struct {
	PollInterval time.Duration
}

// Tracker polls the provider's latest and finalized tips and produces the
// ChainChange stream. Sends on the output channel block, so the tracker never
// advances past a consumer that cannot keep up.
type Tracker struct {
	provider Provider
	options  TrackerOptions
	logger   *zap.Logger
}

func NewTracker(provider Provider, options TrackerOptions, logger *zap.Logger) *Tracker {
	if options.PollInterval <= 0 {
		options.PollInterval = DefaultPollInterval
	}
	return &Tracker{provider: provider, options: options, logger: logger.Named("tracker")}
}

// Run polls until ctx is cancelled, producing Initialize exactly once
// followed by NewHead, NewFinalized and Invalidate changes. The output
// channel is closed on return.
func (t *Tracker) Run(ctx context.Context, out chan<- ChainChange) error {
	defer close(out)

	head, err := t.provider.HeadCursor(ctx)
	if err != nil {
		return fmt.Errorf("fetching head cursor: %w", err)
	}
	finalized, err := t.provider.FinalizedCursor(ctx)
	if err != nil {
		return fmt.Errorf("fetching finalized cursor: %w", err)
	}

	t.logger.Info("chain tracker started",
		zap.Stringer("head", head),
		zap.Stringer("finalized", finalized))

	if !t.send(ctx, out, Initialize{Head: head, Finalized: finalized}) {
		return nil
	}

	ticker := time.NewTicker(t.options.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		newHead, err := t.provider.HeadCursor(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetching head cursor: %w", err)
		}
		newFinalized, err := t.provider.FinalizedCursor(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetching finalized cursor: %w", err)
		}

		if newFinalized.Number < finalized.Number {
			return fmt.Errorf("%w: finalized cursor moved backward (%s -> %s)", core.ErrFatal, finalized, newFinalized)
		}
		if newFinalized.Number > finalized.Number {
			finalized = newFinalized
			if !t.send(ctx, out, NewFinalized{Cursor: finalized}) {
				return nil
			}
		}

		if newHead.Equal(head) {
			continue
		}

		// The hash now returned at (or below) a previously reported head
		// number differs: everything above the finalized cursor is suspect.
		if newHead.Number <= head.Number {
			t.logger.Warn("chain reorganization detected",
				zap.Stringer("old_head", head),
				zap.Stringer("new_head", newHead))
			if !t.send(ctx, out, Invalidate{Cursor: finalized}) {
				return nil
			}
		}

		head = newHead
		if !t.send(ctx, out, NewHead{Cursor: head}) {
			return nil
		}
	}
}

func (t *Tracker) send(ctx context.Context, out chan<- ChainChange, change ChainChange) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- change:
		return true
	}
}
