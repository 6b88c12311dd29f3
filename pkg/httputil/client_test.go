package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClientGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "codeshot/test" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte("glyph"))
	}))
	defer srv.Close()

	c := NewClient(map[string]string{"User-Agent": "codeshot/test"})
	data, err := c.GetBytes(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if string(data) != "glyph" {
		t.Errorf("GetBytes = %q, want %q", data, "glyph")
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(nil).WithRetry(3, time.Millisecond)
	data, err := c.GetBytes(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if string(data) != "ok" || calls.Load() != 3 {
		t.Errorf("data=%q calls=%d", data, calls.Load())
	}
}

func TestClientNotFoundIsFinal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(nil).WithRetry(3, time.Millisecond)
	_, err := c.GetBytes(context.Background(), srv.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBytes() = %v, want ErrNotFound", err)
	}
	if calls.Load() != 1 {
		t.Errorf("404 should not be retried, calls = %d", calls.Load())
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantErr   bool
		retryable bool
	}{
		{200, false, false},
		{404, true, false},
		{403, true, false},
		{500, true, true},
		{503, true, true},
		{429, true, true},
	}
	for _, tt := range tests {
		err := CheckStatus(tt.code)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckStatus(%d) error = %v, wantErr %v", tt.code, err, tt.wantErr)
		}
		if IsRetryable(err) != tt.retryable {
			t.Errorf("CheckStatus(%d) retryable = %v, want %v", tt.code, IsRetryable(err), tt.retryable)
		}
	}
}

func TestClientHonorsRetryAfter(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(nil).WithRetry(2, time.Millisecond)
	start := time.Now()
	if _, err := c.GetBytes(context.Background(), srv.URL); err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("retried after %v, want at least the 1s Retry-After", elapsed)
	}
}
