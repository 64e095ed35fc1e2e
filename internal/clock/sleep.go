// Package clock holds the context-aware waiting used by the block follower.
package clock

import (
	"context"
	"time"
)

// SleepWithContext blocks for d or until ctx is done. A non-positive d only reports
// whether ctx is already done.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
