package vision

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// defaultRetryAfter applies when a 429 response carries no usable
// Retry-After header.
const defaultRetryAfter = 60 * time.Second

// RateLimitError indicates a vision provider returned HTTP 429. The fallback
// chain uses RetryAfter to decide when the provider may be tried again.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. Non-positive retryAfterSecs
// falls back to the default backoff.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	retryAfter := time.Duration(retryAfterSecs) * time.Second
	if retryAfterSecs <= 0 {
		retryAfter = defaultRetryAfter
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: retryAfter,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// RFC 9110 allows both delay-seconds and an HTTP-date; a date in the past or
// an unparseable value yields 0, which callers treat as "use the default".
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		if secs < 0 {
			return 0
		}
		return secs
	}
	if at, err := http.ParseTime(val); err == nil {
		if secs := int(time.Until(at).Seconds()); secs > 0 {
			return secs
		}
	}
	return 0
}
