package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 30 * time.Second

// Request describes one outbound call. It is never retried.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Config is fixed at construction.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Logger receives resty's own diagnostics; nil keeps resty's default.
	Logger resty.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithFailureHook registers an observer for normalized failures.
func WithFailureHook(h FailureHook) Option {
	return func(c *Client) { c.onFailure = h }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.resty.SetTransport(rt) }
}

// Client is the single egress point to the portal API.
type Client struct {
	resty     *resty.Client
	creds     Credentials
	notifier  Notifier
	onFailure FailureHook
}

// New creates a Client. creds and notifier may be nil.
func New(cfg Config, creds Credentials, notifier Notifier, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc := resty.New()
	rc.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	rc.SetTimeout(timeout)
	rc.SetHeader("Content-Type", "application/json")
	rc.SetHeader("Accept", "application/json")
	if cfg.Logger != nil {
		rc.SetLogger(cfg.Logger)
	}

	c := &Client{resty: rc, creds: creds, notifier: notifier}
	rc.OnBeforeRequest(c.injectCredential)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// injectCredential snapshots the credential for this request.
func (c *Client) injectCredential(_ *resty.Client, r *resty.Request) error {
	cred := ""
	if c.creds != nil {
		cred = c.creds.Credential()
	}
	if cred == "" {
		r.Header.Del("Authorization")
		return nil
	}
	r.SetHeader("Authorization", cred)
	return nil
}

// Do sends req and returns the envelope's data payload. Every failure is
// returned as *Error and reported to the notifier exactly once.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		return nil, c.fail(req, 0, &RequestConfigError{Err: errors.New("request method is required")})
	}

	r := c.resty.R().SetContext(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, c.fail(req, 0, &RequestConfigError{Err: fmt.Errorf("encode request body: %w", err)})
		}
		r.SetBody(raw)
	}

	resp, err := r.Execute(method, req.Path)
	if err != nil {
		return nil, c.fail(req, 0, classifyTransport(err))
	}

	status := resp.StatusCode()
	if resp.IsError() {
		return nil, c.fail(req, status, c.serverFailure(status, resp.Body()))
	}

	data, err := unwrapEnvelope(status, resp.Body())
	if err != nil {
		return nil, c.fail(req, status, err)
	}
	return data, nil
}

func (c *Client) serverFailure(status int, body []byte) error {
	if status == http.StatusUnauthorized {
		if c.creds != nil {
			c.creds.Clear()
		}
		return &AuthExpiredError{Body: body}
	}
	return &ServerError{Status: status, Body: body, Message: statusMessage(body, status)}
}

// fail is the single place a failure becomes user-visible.
func (c *Client) fail(req Request, status int, cause error) *Error {
	nerr := normalize(cause)
	if c.notifier != nil {
		c.notifier.NotifyError(nerr.Message)
	}
	if c.onFailure != nil {
		c.onFailure(req, status, nerr)
	}
	return nerr
}

// Get issues a GET with optional query values.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// Query builds url.Values from pairs, skipping empty values.
func Query(pairs ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if v := strings.TrimSpace(pairs[i+1]); v != "" {
			q.Set(pairs[i], v)
		}
	}
	return q
}
