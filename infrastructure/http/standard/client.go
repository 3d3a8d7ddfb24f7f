// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Used for news feeds and by the reader CLI to talk to the API server

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"yomu-news-api/core/interfaces"
)

const (
	defaultMaxRetries = 3
	defaultUserAgent  = "YomuNews/1.0"
)

// Option customizes the client
type Option func(*StandardHTTPClient)

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *StandardHTTPClient) { c.userAgent = ua }
}

// WithMaxRetries sets the number of GET attempts made on network errors and 5xx responses
func WithMaxRetries(n int) Option {
	return func(c *StandardHTTPClient) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client     *http.Client
	userAgent  string
	maxRetries int
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration, opts ...Option) *StandardHTTPClient {
	c := &StandardHTTPClient{
		client:     &http.Client{Timeout: timeout},
		userAgent:  defaultUserAgent,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			resp = nil
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 || attempt == c.maxRetries-1 {
			break
		}

		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp.Body.Close()
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}
	return wrap(resp), nil
}

// Post performs an HTTP POST request with a JSON body. Posts are never retried.
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	return wrap(resp), nil
}

func (c *StandardHTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "ja,en;q=0.8")
}

func wrap(resp *http.Response) *httpResponse {
	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
