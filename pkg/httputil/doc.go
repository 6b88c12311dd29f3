// Package httputil provides the HTTP plumbing used by remote glyph sources.
//
// # Overview
//
//   - [Client]: GET requests with default headers, status classification
//     and automatic retries
//   - [Retry]: exponential backoff for transient failures
//
// # Retry
//
// Only errors wrapped in [RetryableError] are retried: network failures and
// 5xx responses. A 404 is final. Retries stop as soon as the context is done,
// so a render deadline bounds the total time spent:
//
//	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
//	defer cancel()
//	data, err := client.GetBytes(ctx, url)
package httputil
