package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/syntower/pkg/buildinfo"
	"github.com/matzehuels/syntower/pkg/cache"
	"github.com/matzehuels/syntower/pkg/errors"
	"github.com/matzehuels/syntower/pkg/observability"
)

// DefaultTimeout bounds a single request attempt.
const DefaultTimeout = 30 * time.Second

// MaxBodySize caps response bodies.
const MaxBodySize = 64 << 20

// Client performs GET requests with retries, response caching and
// observability hooks.
type Client struct {
	HTTP    *http.Client
	Cache   cache.Cache
	Keyer   cache.Keyer
	TTL     time.Duration
	Backoff cache.Backoff
	Headers map[string]string
}

// NewClient creates a client backed by c. A nil cache disables caching.
func NewClient(c cache.Cache, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		HTTP:    &http.Client{Timeout: DefaultTimeout},
		Cache:   c,
		Keyer:   cache.NewDefaultKeyer(),
		TTL:     cache.TTLHTTP,
		Backoff: cache.DefaultBackoff,
		Headers: headers,
	}
}

// Fetch returns the body at url. Successful bodies are cached under
// namespace; refresh skips the cache read.
func (c *Client) Fetch(ctx context.Context, namespace, url string, refresh bool) ([]byte, error) {
	key := c.Keyer.HTTPKey(namespace, url)
	if !refresh {
		if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "http")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}

	var body []byte
	err := c.Backoff.Retry(ctx, func() error {
		var err error
		body, err = c.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := c.Cache.Set(ctx, key, body, c.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "http", len(body))
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request %s", url)
	}
	req.Header.Set("User-Agent", "syntower/"+buildinfo.Version)
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.HTTP.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "fetch %s", url)
		}
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, fmt.Errorf("%w: %v", cache.ErrNetwork, err), "fetch %s", url))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url))
	}
	return body, nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.Wrap(errors.ErrCodeNotFound, cache.ErrNotFound, "status %d", code)
	case code == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &errors.RateLimitedError{RetryAfter: retryAfter}
	case code >= 500:
		return cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, cache.ErrNetwork, "status %d", code))
	default:
		return errors.Wrap(errors.ErrCodeNetwork, cache.ErrNetwork, "status %d", code)
	}
}
