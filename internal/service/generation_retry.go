package service

import (
	"context"
	"time"
)

// retryState models the bounded-retry loop explicitly so the contract
// (fixed delay before every attempt, bounded attempt count, selective
// retry) is testable without real time delays.
type retryState int

const (
	retryIdle retryState = iota
	retryWaiting
	retryCalling
	retrySucceeded
	retryFailed
)

// callWithRetry invokes fn up to maxAttempts times. Every attempt, including
// the first, is preceded by the fixed delay (respecting the external rate
// limit window). Only errors classified retryable trigger another attempt;
// anything else fails immediately.
func callWithRetry(
	ctx context.Context,
	maxAttempts int,
	delay time.Duration,
	sleep func(context.Context, time.Duration) error,
	retryable func(error) bool,
	fn func(context.Context) error,
) error {
	state := retryIdle
	attempts := 0
	var lastErr error

	for {
		switch state {
		case retryIdle:
			state = retryWaiting

		case retryWaiting:
			if err := sleep(ctx, delay); err != nil {
				return err
			}
			state = retryCalling

		case retryCalling:
			attempts++
			lastErr = fn(ctx)
			switch {
			case lastErr == nil:
				state = retrySucceeded
			case attempts < maxAttempts && retryable(lastErr):
				state = retryWaiting
			default:
				state = retryFailed
			}

		case retrySucceeded:
			return nil

		case retryFailed:
			return lastErr
		}
	}
}

// sleepContext is the production sleep: a plain timer that aborts early when
// the request context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
