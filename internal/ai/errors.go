package ai

import (
	"fmt"
	"time"

	"github.com/adforgehq/adgen/internal/ratelimit"
)

// RateLimitError is returned when a quota-limited endpoint rejects a call
// with a transient resource-exhausted signal. RetryAfter carries the
// provider-suggested wait when one was parseable, zero otherwise.
type RateLimitError struct {
	RetryAfter    time.Duration
	UnderlyingErr error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (provider suggests waiting %s)", e.RetryAfter)
	}
	return "rate limited (no retry hint)"
}

func (e *RateLimitError) Unwrap() error {
	return e.UnderlyingErr
}

// FatalError is a non-retryable remote failure: auth rejection, malformed
// request, or a permanent server error. The wrapper propagates it
// immediately without retrying.
type FatalError struct {
	Status        int
	Category      string
	UnderlyingErr error
}

func (e *FatalError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("fatal %s error (status %d): %v", e.Category, e.Status, e.UnderlyingErr)
	}
	return fmt.Sprintf("fatal %s error: %v", e.Category, e.UnderlyingErr)
}

func (e *FatalError) Unwrap() error {
	return e.UnderlyingErr
}

// Classify maps a provider error with a known HTTP status onto the adgen
// error taxonomy. Transient statuses and quota markers become
// RateLimitError (with the retry hint when present); everything else is a
// FatalError in the given category.
func Classify(status int, category string, err error) error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if ratelimit.IsRetryableStatus(status) || ratelimit.HasQuotaMarker(msg) {
		hint, _ := ratelimit.ParseRetryHint(msg)
		return &RateLimitError{RetryAfter: hint, UnderlyingErr: err}
	}
	return &FatalError{Status: status, Category: category, UnderlyingErr: err}
}
