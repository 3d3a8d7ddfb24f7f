// ABOUTME: Typed client for the Yomu News HTTP API used by the reader CLI
// ABOUTME: Wraps interfaces.HTTPClient and decodes the {error, details} failure body

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"yomu-news-api/api/dto/requests"
	"yomu-news-api/api/dto/responses"
	"yomu-news-api/core/domain"
	"yomu-news-api/core/errors"
	"yomu-news-api/core/interfaces"
	"yomu-news-api/core/speech"
	"yomu-news-api/infrastructure/http/standard"
)

const apiName = "yomu api"

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the transport
func WithHTTPClient(c interfaces.HTTPClient) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithBackoff sets the retry policy used for voice listing
func WithBackoff(b speech.Backoff) Option {
	return func(cl *Client) {
		cl.backoff = b
	}
}

// Client talks to a running API server
type Client struct {
	baseURL string
	http    interfaces.HTTPClient
	backoff speech.Backoff
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		backoff: speech.DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = standard.NewStandardHTTPClient(30*time.Second, standard.WithMaxRetries(1))
	}
	return c
}

// FetchNews returns the parsed article at source
func (c *Client) FetchNews(ctx context.Context, source string) (*responses.FetchNewsResponse, error) {
	var out responses.FetchNewsResponse
	if err := c.getJSON(ctx, "/fetch-news", url.Values{"source": {source}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sentences returns the segmented sentences of the article at source
func (c *Client) Sentences(ctx context.Context, source string) (*responses.SentencesResponse, error) {
	var out responses.SentencesResponse
	if err := c.getJSON(ctx, "/sentences", url.Values{"source": {source}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Headlines returns the latest articles of a source
func (c *Client) Headlines(ctx context.Context, source string, limit int) (*responses.HeadlinesResponse, error) {
	q := url.Values{"source": {source}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out responses.HeadlinesResponse
	if err := c.getJSON(ctx, "/headlines", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Voices lists the server's voices, retrying transient failures with the client's backoff
func (c *Client) Voices(ctx context.Context) ([]domain.Voice, error) {
	var out responses.VoicesResponse
	err := c.backoff.Retry(ctx, func(int) error {
		return c.getJSON(ctx, "/voices", nil, &out)
	})
	if err != nil {
		return nil, err
	}
	return out.Voices, nil
}

// Synthesize returns mp3 audio for one sentence. Failures are reported as SynthesisError.
func (c *Client) Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error) {
	body, err := json.Marshal(requests.TTSRequest{Text: req.Text, Voice: req.Voice, Speed: req.Speed})
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Post(ctx, c.baseURL+"/tts", bytes.NewReader(body))
	if err != nil {
		return nil, &errors.SynthesisError{Voice: req.Voice, Message: "request failed", Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, &errors.SynthesisError{Voice: req.Voice, Message: "server rejected request", Err: decodeError(resp)}
	}
	audio, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, &errors.SynthesisError{Voice: req.Voice, Message: "read audio", Err: err}
	}
	return audio, nil
}

// Prewarm asks the server to synthesize every sentence of source ahead of playback
func (c *Client) Prewarm(ctx context.Context, req requests.PrewarmRequest) (*responses.PrewarmResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Post(ctx, c.baseURL+"/prewarm", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusAccepted {
		return nil, decodeError(resp)
	}
	var out responses.PrewarmResponse
	if err := json.NewDecoder(resp.Body()).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode /prewarm response: %w", err)
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	resp, err := c.http.Get(ctx, target)
	if err != nil {
		return err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body()).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeError(resp interfaces.Response) error {
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body(), 64<<10))
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		msg = body.Error
		if body.Details != "" {
			msg += ": " + body.Details
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	return &errors.ExternalAPIError{StatusCode: resp.StatusCode(), Message: msg, API: apiName}
}
