// Package clock holds the waits used by the polling loops.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d or until ctx is done.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	return WaitOrWake(ctx, d, nil)
}

// WaitOrWake waits for d but returns early, without error, on a receive from
// wake. A nil wake never fires.
func WaitOrWake(ctx context.Context, d time.Duration, wake <-chan struct{}) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wake:
		return nil
	case <-timer.C:
		return nil
	}
}
