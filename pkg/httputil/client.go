package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/codeshot/pkg/observability"
)

// Sentinel errors returned by Client.
var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for transport failures and unexpected statuses.
	ErrNetwork = errors.New("network error")
)

// DefaultTimeout bounds a single request when the caller's context has no
// earlier deadline.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps response bodies; glyph PNGs are a few KiB.
const maxBodySize = 4 << 20

// Client performs GET requests with shared headers and retries.
type Client struct {
	http    *http.Client
	headers map[string]string
	policy  Policy
}

// NewClient creates a Client. Headers are applied to all requests; pass nil
// for none.
func NewClient(headers map[string]string) *Client {
	return &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		headers: headers,
		policy:  DefaultPolicy,
	}
}

// WithHTTPClient replaces the underlying http.Client (used by tests).
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// WithRetry sets the number of attempts and the initial backoff delay,
// keeping the default cap.
func (c *Client) WithRetry(attempts int, delay time.Duration) *Client {
	c.policy.Attempts = attempts
	c.policy.Delay = delay
	return c
}

// GetBytes fetches url and returns the response body.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := Retry(ctx, c.policy, func() error {
		data, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	return body, err
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := CheckStatus(resp.StatusCode); err != nil {
		var re *RetryableError
		if errors.As(err, &re) {
			re.After = parseRetryAfter(resp.Header.Get("Retry-After"))
		}
		return nil, err
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

// CheckStatus classifies an HTTP status code. 5xx and 429 responses are
// retryable.
func CheckStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500, code == http.StatusTooManyRequests:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
