// Package ratelimit provides rate-limit classification and retry-hint parsing
// for quota-limited generative endpoints.
package ratelimit

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Pattern 1: Google-style errors embed `"retryDelay": "30s"` (or
	// retryDelay=30s) inside the error payload.
	retryDelayRe = regexp.MustCompile(`(?i)retry[_ ]?delay['":= ]+"?(\d+(?:\.\d+)?)s?"?`)

	// Pattern 2: HTTP-header style "Retry-After: 30".
	retryAfterRe = regexp.MustCompile(`(?i)retry[- ]after[: ]+(\d+(?:\.\d+)?)`)

	// Bare markers that indicate quota exhaustion with no parseable delay.
	quotaMarkers = []string{
		"resource_exhausted",
		"rate limit",
		"rate limited",
		"too many requests",
		"quota",
	}
)

// ParseRetryHint extracts a provider-suggested wait duration from free-form
// error text. Returns (0, false) when no hint is present.
func ParseRetryHint(msg string) (time.Duration, bool) {
	for _, re := range []*regexp.Regexp{retryDelayRe, retryAfterRe} {
		match := re.FindStringSubmatch(msg)
		if match == nil {
			continue
		}
		secs, err := strconv.ParseFloat(match[1], 64)
		if err != nil || secs <= 0 {
			continue
		}
		return time.Duration(secs * float64(time.Second)), true
	}
	return 0, false
}

// IsRetryableStatus reports whether an HTTP status code indicates a
// transient condition worth retrying. 429 is quota exhaustion; 500/503/504
// are provider hiccups that the upstream endpoints return intermittently.
func IsRetryableStatus(code int) bool {
	switch code {
	case 429, 500, 503, 504:
		return true
	}
	return false
}

// HasQuotaMarker reports whether error text mentions quota exhaustion
// even when no status code is available.
func HasQuotaMarker(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range quotaMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
