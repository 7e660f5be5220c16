package clock

import (
	"context"
	"time"
)

// Clock provides time operations. This interface allows for testing
// with deterministic timestamps.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the standard time package.
type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// DefaultClock returns the default clock that uses real time.
func DefaultClock() Clock {
	return realClock{}
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// SleepContext sleeps for d, returning early with ctx.Err() if ctx is cancelled.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
