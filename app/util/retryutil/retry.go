// Package retryutil wraps cenkalti/backoff for the two hosted Gemini
// collaborators: bounded exponential backoff plus the transient-vs-permanent
// error split.
package retryutil

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// MaxRetries bounds the retry count per call, retries are never
	// infinite. Total attempts per call = MaxRetries + 1.
	MaxRetries = 4

	initialInterval = 500 * time.Millisecond
	maxInterval     = 10 * time.Second
)

// New returns the backoff policy for one collaborator call. The context
// cancels waiting between attempts.
func New(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialInterval
	bo.MaxInterval = maxInterval

	return backoff.WithMaxRetries(backoff.WithContext(bo, ctx), MaxRetries)
}

// Classify marks non-transient errors as permanent so backoff.Retry fails
// fast instead of burning attempts on them.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if !retryable(err) {
		return backoff.Permanent(err)
	}

	return err
}

func retryable(err error) bool {
	errStr := strings.ToLower(err.Error())

	// rate limits
	if containsAny(errStr, "rate limit", "quota exceeded", "429") {
		return true
	}

	// transient server errors
	if containsAny(errStr, "500", "502", "503", "504", "unavailable", "overloaded") {
		return true
	}

	// network errors
	if containsAny(errStr, "connection reset", "timeout", "deadline exceeded", "temporary") {
		return true
	}

	return false
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
