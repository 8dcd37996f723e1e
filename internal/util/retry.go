// Package util provides shared utility functions for ropen.
package util

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

// MountPollOptions returns retry options for waiting on a mount to appear in
// the mount table after the OS accepted the mount request. Fixed short delay;
// the mount itself is never re-issued.
func MountPollOptions(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Attempts(20),
		retry.Delay(250 * time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	}
}

// DefaultRetryOptions returns sensible defaults for retry operations.
func DefaultRetryOptions(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Attempts(3),
		retry.Delay(100 * time.Millisecond),
		retry.MaxDelay(1 * time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
	}
}

// Retry executes fn with retry logic.
// Returns the last error if all attempts fail.
func Retry(ctx context.Context, fn func() error, opts ...retry.Option) error {
	if len(opts) == 0 {
		opts = DefaultRetryOptions(ctx)
	}
	return retry.Do(fn, opts...)
}
