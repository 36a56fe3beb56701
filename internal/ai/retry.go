package ai

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Default backoff values applied when the policy leaves them zero.
const (
	defaultBaseDelay   = 5 * time.Second
	defaultMaxDelay    = 2 * time.Minute
	defaultMaxAttempts = 6
)

// BackoffPolicy configures RetryWithBackoff. It is a plain value so callers
// can construct, log, and test it without side effects.
//
// Delays grow exponentially from BaseDelay, doubling per retry and capped at
// MaxDelay. A provider retry hint overrides the computed delay for that wait
// (still capped). MaxAttempts bounds the total number of invocations.
type BackoffPolicy struct {
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	MaxAttempts int

	// OnRetry is called before each wait with the attempt just failed
	// (1-based) and the wait duration, for observability.
	OnRetry func(attempt int, wait time.Duration)

	// Sleep replaces the context-aware wait in tests. Nil means real sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (p BackoffPolicy) withDefaults() BackoffPolicy {
	if p.BaseDelay == 0 {
		p.BaseDelay = defaultBaseDelay
	}
	if p.MaxDelay == 0 {
		p.MaxDelay = defaultMaxDelay
	}
	if p.MaxAttempts == 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.Sleep == nil {
		p.Sleep = sleepCtx
	}
	return p
}

// RetryWithBackoff invokes fn until it succeeds, fails fatally, or the
// attempt budget is exhausted.
//
// Only RateLimitError is retried. Any other error — FatalError included —
// propagates immediately: retrying a rejected request burns quota without
// hope of success.
func RetryWithBackoff(ctx context.Context, policy BackoffPolicy, fn func() error) error {
	policy = policy.withDefaults()

	delay := policy.BaseDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var rateLimitErr *RateLimitError
		if !errors.As(err, &rateLimitErr) {
			return err
		}

		if attempt >= policy.MaxAttempts {
			return fmt.Errorf("rate limit retries exhausted after %d attempts: %w", attempt, err)
		}

		wait := delay
		if rateLimitErr.RetryAfter > 0 {
			wait = rateLimitErr.RetryAfter
		}
		if wait > policy.MaxDelay {
			wait = policy.MaxDelay
		}

		if policy.OnRetry != nil {
			policy.OnRetry(attempt, wait)
		}

		if err := policy.Sleep(ctx, wait); err != nil {
			return err
		}

		delay *= 2
		if delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}
}

// sleepCtx waits for d, returning early with the context error on
// cancellation. Only the calling goroutine is suspended.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
