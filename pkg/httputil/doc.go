// Package httputil provides the HTTP client used to fetch remote graph
// documents.
//
// # Overview
//
//   - [Client]: GET with response caching, retries and observability hooks
//   - [Client.Backoff]: retry schedule for transient failures
//
// # Caching
//
// Response bodies are stored in a [cache.Cache] under keys from
// [cache.Keyer.HTTPKey], so the CLI shares its file cache and the server
// shares Redis:
//
//	client := httputil.NewClient(c, nil)
//	body, err := client.Fetch(ctx, "remote", url, false)
//
// # Retry
//
// Transient failures are retried with exponential backoff ([cache.Backoff]):
//
//   - Network errors
//   - 5xx server errors
//
// 404 maps to NOT_FOUND and 429 to a [errors.RateLimitedError]; neither is
// retried.
//
// # Configuration
//
//   - Request timeout: 30 seconds
//   - Default TTL: 24 hours
//   - Max attempts: 3
//   - Base backoff: 1 second
package httputil
