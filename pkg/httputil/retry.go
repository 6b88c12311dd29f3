package httputil

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Policy controls how [Retry] spaces attempts.
type Policy struct {
	// Attempts is the total number of calls, including the first.
	Attempts int
	// Delay is the wait before the second attempt. It doubles after each
	// failure.
	Delay time.Duration
	// MaxDelay caps a single wait. Zero means uncapped.
	MaxDelay time.Duration
}

// DefaultPolicy suits small CDN downloads such as emoji glyphs.
var DefaultPolicy = Policy{Attempts: 3, Delay: 200 * time.Millisecond, MaxDelay: 2 * time.Second}

// RetryableError marks a transient failure (network error, 5xx, 429) that
// [Retry] should attempt again.
type RetryableError struct {
	Err error
	// After is a server-requested wait from Retry-After. Zero defers to
	// the policy.
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// policy runs out of attempts. It returns the last error, or ctx.Err() if
// ctx ends while waiting.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			timer := time.NewTimer(p.wait(i, lastErr))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return lastErr
}

// wait returns the pause after failed attempt i.
func (p Policy) wait(i int, err error) time.Duration {
	d := p.Delay << i
	var re *RetryableError
	if errors.As(err, &re) && re.After > 0 {
		d = re.After
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// IsRetryable reports whether err is wrapped in a RetryableError.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// parseRetryAfter reads a Retry-After header given in seconds. HTTP dates
// and malformed values yield zero.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
