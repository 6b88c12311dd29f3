package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()
	transient := &RetryableError{Err: ErrNetwork}

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"success first try", 0, nil, 1, false},
		{"retry then success", 2, transient, 3, false},
		{"exhausted", 5, transient, 3, true},
		{"non-retryable stops", 5, ErrNotFound, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, Policy{Attempts: 3, Delay: time.Millisecond}, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, Policy{Attempts: 3, Delay: time.Second}, func() error {
		return &RetryableError{Err: ErrNetwork}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil should not be retryable")
	}
	if IsRetryable(ErrNotFound) {
		t.Error("ErrNotFound should not be retryable")
	}
	wrapped := &RetryableError{Err: ErrNetwork}
	if !IsRetryable(wrapped) {
		t.Error("RetryableError should be retryable")
	}
	if !errors.Is(wrapped, ErrNetwork) {
		t.Error("RetryableError should unwrap to its cause")
	}
}

func TestPolicyWait(t *testing.T) {
	p := Policy{Attempts: 5, Delay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}
	plain := &RetryableError{Err: ErrNetwork}

	tests := []struct {
		attempt int
		err     error
		want    time.Duration
	}{
		{0, plain, 100 * time.Millisecond},
		{1, plain, 200 * time.Millisecond},
		{2, plain, 300 * time.Millisecond},
		{0, &RetryableError{Err: ErrNetwork, After: 250 * time.Millisecond}, 250 * time.Millisecond},
		{0, &RetryableError{Err: ErrNetwork, After: time.Minute}, 300 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := p.wait(tt.attempt, tt.err); got != tt.want {
			t.Errorf("wait(%d, %v) = %v, want %v", tt.attempt, tt.err, got, tt.want)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := map[string]time.Duration{
		"3":                             3 * time.Second,
		" 10 ":                          10 * time.Second,
		"0":                             0,
		"-1":                            0,
		"":                              0,
		"Wed, 21 Oct 2015 07:28:00 GMT": 0,
	}
	for in, want := range tests {
		if got := parseRetryAfter(in); got != want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", in, got, want)
		}
	}
}
