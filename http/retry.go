package http

import (
	"context"
	"time"

	"github.com/fwojciec/vipbot"
)

// RetryPolicy configures Retry.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the wait after the first failure. It doubles after
	// every further failure.
	BaseDelay time.Duration
}

// DefaultRetryPolicy returns 3 attempts with 1s and 2s waits between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Delays returns the waits between consecutive attempts.
func (p RetryPolicy) Delays() []time.Duration {
	if p.MaxAttempts <= 1 {
		return nil
	}
	delays := make([]time.Duration, p.MaxAttempts-1)
	d := p.BaseDelay
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// RetryFunc is called once per attempt. The attempt number starts at 1.
type RetryFunc func(ctx context.Context, attempt int) error

// Retry calls fn until it succeeds or the policy's attempts are used up,
// sleeping with exponential backoff between attempts. Errors with code
// EINVALID are not retried. The last error is returned as EUNAVAILABLE.
func Retry(ctx context.Context, policy RetryPolicy, fn RetryFunc) error {
	delays := policy.Delays()
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if vipbot.ErrorCode(err) == vipbot.EINVALID {
			return err
		}

		// Don't wait after the last attempt
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return vipbot.WrapError(vipbot.EUNAVAILABLE, ctx.Err())
		case <-time.After(delays[attempt-1]):
		}
	}

	if vipbot.ErrorCode(lastErr) == vipbot.EUNAVAILABLE {
		return lastErr
	}
	return vipbot.WrapError(vipbot.EUNAVAILABLE, lastErr)
}
