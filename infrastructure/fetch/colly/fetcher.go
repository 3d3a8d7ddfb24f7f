// ABOUTME: Article page fetcher built on colly
// ABOUTME: Returns the raw HTML body and maps upstream failures to ExternalAPIError

package colly

import (
	"context"
	"net/http"
	"time"

	"github.com/gocolly/colly"

	coreerrors "yomu-news-api/core/errors"
)

const (
	// DefaultUserAgent identifies the reader to news sites
	DefaultUserAgent = "Mozilla/5.0 (compatible; YomuNews/1.0; +https://github.com/yomu-news)"

	defaultTimeout     = 15 * time.Second
	defaultMaxBodySize = 5 * 1024 * 1024
)

// Options configures the fetcher
type Options struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int
}

// Fetcher implements interfaces.PageFetcher
type Fetcher struct {
	opts Options
}

// NewFetcher creates a fetcher, filling unset options with defaults
func NewFetcher(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaultMaxBodySize
	}
	return &Fetcher{opts: opts}
}

// contextTransport binds every outgoing request to the caller's context, so a
// cancelled caller aborts a request already in flight
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

// Fetch downloads the page at url. Bodies are converted to UTF-8 when the page declares another charset.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(f.opts.UserAgent),
		colly.MaxBodySize(f.opts.MaxBodySize),
		colly.AllowURLRevisit(),
		colly.DetectCharset(),
	)
	c.SetRequestTimeout(f.opts.Timeout)
	c.WithTransport(contextTransport{ctx: ctx, base: http.DefaultTransport})

	var (
		body   []byte
		status int
	)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "ja,en;q=0.8")
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	err := c.Visit(url)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		code := status
		if code == 0 {
			code = http.StatusBadGateway
		}
		return nil, &coreerrors.ExternalAPIError{API: "article source", StatusCode: code, Message: err.Error()}
	}
	if body == nil {
		return nil, &coreerrors.ExternalAPIError{API: "article source", StatusCode: status, Message: "empty response"}
	}
	return body, nil
}
