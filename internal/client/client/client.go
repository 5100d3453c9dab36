package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preranah7/archweekly/internal/logging"
)

// DefaultTimeout is the ceiling for ordinary calls.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// TokenSource yields the bearer token to attach to the next request, or ""
// when there is none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// UnauthorizedHook is invoked once for every 401 response.
type UnauthorizedHook func(ctx context.Context)

// RequestInterceptor may modify an outbound request just before it is sent.
// Returning an error aborts the call.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor sees every response before the client interprets it.
// Returning an error replaces the call's result with that error.
type ResponseInterceptor func(resp *http.Response) error

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Option func(*Client)

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTokenSource makes every request carry "Authorization: Bearer <token>"
// when ts yields a non-empty token.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokenSource = ts }
}

// WithUnauthorizedHook registers the single global reaction to 401
// responses.
func WithUnauthorizedHook(h UnauthorizedHook) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

func WithRequestInterceptor(ic RequestInterceptor) Option {
	return func(c *Client) { c.extraRequest = append(c.extraRequest, ic) }
}

func WithResponseInterceptor(ic ResponseInterceptor) Option {
	return func(c *Client) { c.extraResponse = append(c.extraResponse, ic) }
}

// Client calls the newsletter API over HTTP.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     logging.Logger

	tokenSource    TokenSource
	onUnauthorized UnauthorizedHook
	extraRequest   []RequestInterceptor
	extraResponse  []ResponseInterceptor

	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// New builds a Client. The request chain is: request id, bearer token,
// then any WithRequestInterceptor in registration order. The response
// chain is: unauthorized hook, then any WithResponseInterceptor.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
		logger:     logging.Nop(),
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	for _, o := range opts {
		o(c)
	}

	c.requestInterceptors = append(c.requestInterceptors, requestID)
	if c.tokenSource != nil {
		c.requestInterceptors = append(c.requestInterceptors, c.bearerToken)
	}
	c.requestInterceptors = append(c.requestInterceptors, c.extraRequest...)

	if c.onUnauthorized != nil {
		c.responseInterceptors = append(c.responseInterceptors, c.unauthorized)
	}
	c.responseInterceptors = append(c.responseInterceptors, c.extraResponse...)

	return c
}

type callOptions struct {
	timeout time.Duration
}

// CallOption adjusts a single call.
type CallOption func(*callOptions)

// WithTimeout overrides the timeout ceiling of one call.
func WithTimeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, out any, opts ...CallOption) error {
	co := callOptions{timeout: c.timeout}
	for _, o := range opts {
		o(&co)
	}
	if co.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, co.timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	for _, ic := range c.requestInterceptors {
		if err := ic(req); err != nil {
			return fmt.Errorf("request interceptor: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "api call failed", "method", method, "path", path,
			"request_id", req.Header.Get(RequestIDHeader), "error", err)
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "api call", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", req.Header.Get(RequestIDHeader), "duration", time.Since(start))

	for _, ic := range c.responseInterceptors {
		if err := ic(resp); err != nil {
			return err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(data, &eb)
		return newAPIError(resp.StatusCode, eb)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if ctx.Err() != nil {
			return mapTransportError(ctx.Err())
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
