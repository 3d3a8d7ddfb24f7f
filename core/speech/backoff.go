// ABOUTME: Bounded exponential backoff used for voice listing
// ABOUTME: The only automatic retry policy in the speech pipeline

package speech

import (
	"context"
	"time"
)

// Backoff retries an operation a bounded number of times, doubling the delay between attempts
type Backoff struct {
	Attempts int
	Base     time.Duration

	// Sleep waits between attempts, a context-aware timer when nil
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultBackoff makes at most 3 attempts: 500ms then 1s apart
var DefaultBackoff = Backoff{Attempts: 3, Base: 500 * time.Millisecond}

// Retry calls fn until it succeeds or the attempts run out, returning the last error
func (b Backoff) Retry(ctx context.Context, fn func(attempt int) error) error {
	attempts := b.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := b.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if serr := sleep(ctx, b.Base*time.Duration(1<<(attempt-2))); serr != nil {
				return serr
			}
		}
		if err = fn(attempt); err == nil {
			return nil
		}
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
