// Package util provides shared utility functions for ldx.
package util

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"

	"ldx/internal/common"
)

// ConfigRetryOptions returns retry options for reading config files the
// emulator may be mid-writing. Uses short linear backoff (50ms, 100ms,
// 150ms) and only retries parse failures; anything else is permanent.
func ConfigRetryOptions(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Attempts(3),
		retry.Delay(50 * time.Millisecond),
		retry.MaxDelay(150 * time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(IsParseFailure),
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
		retry.LastErrorOnly(true),
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

// RetryWithResult executes fn with retry logic and returns the result.
func RetryWithResult[T any](ctx context.Context, fn func() (T, error), opts ...retry.Option) (T, error) {
	if len(opts) == 0 {
		opts = DefaultRetryOptions(ctx)
	}
	return retry.DoWithData(fn, opts...)
}

// Common retry predicates

// IsParseFailure returns true if the error indicates a JSON parse
// failure, the signature of a file caught mid-write.
func IsParseFailure(err error) bool {
	return errors.Is(err, common.ErrParse)
}
