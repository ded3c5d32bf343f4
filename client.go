// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gogama/reqster/request"
	"github.com/rs/zerolog"
)

// A Client runs the request pipeline on top of an Executor.
//
// For every call the Client merges its settings with the call options,
// builds the request body and the URL, runs the request interceptors,
// hands the request to the executor, runs the response interceptors,
// validates the response status and finally passes the response to the
// response transform. Every step runs in order on the calling
// goroutine; nothing is done in parallel.
//
// A Client holds no per-call state, so it is safe for concurrent use
// by multiple goroutines once its interceptors have been registered.
type Client struct {
	// Interceptors holds the request and response interceptors, run in
	// registration order on every call.
	Interceptors Interceptors

	executor   Executor
	url        string
	settings   request.Settings
	logger     zerolog.Logger
	maxRetries int
}

// An Option configures optional Client behaviour.
type Option func(*Client)

// WithLogger makes the client log its progress at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMaxRetries caps the number of times a single call may be
// re-issued because a response interceptor returned Retry. When the cap
// is exceeded the call fails with an error wrapping ErrRetryLimit. A
// negative n, the default, means no cap.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// New creates a client sending requests through executor. The base
// URL is prepended verbatim to every endpoint. Fields left unset in
// settings fall back to the values of DefaultSettings.
func New(executor Executor, baseURL string, settings request.Settings, opts ...Option) *Client {
	if executor == nil {
		panic("reqster: nil executor")
	}

	d := DefaultSettings()
	s := settings
	s.Headers = settings.Headers.Clone()
	if s.SerializeParams == nil {
		s.SerializeParams = d.SerializeParams
	}
	if s.TransformRequest == nil {
		s.TransformRequest = d.TransformRequest
	}
	if s.TransformResponse == nil {
		s.TransformResponse = d.TransformResponse
	}
	if s.ValidateStatus == nil {
		s.ValidateStatus = d.ValidateStatus
	}

	c := &Client{
		executor:   executor,
		url:        baseURL,
		settings:   s,
		logger:     zerolog.Nop(),
		maxRetries: -1,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the base URL of the client.
func (c *Client) BaseURL() string {
	return c.url
}

// Settings returns a copy of the client's default settings.
func (c *Client) Settings() request.Settings {
	s := c.settings
	s.Headers = c.settings.Headers.Clone()
	return s
}

// Request runs the request pipeline for endpoint and returns the value
// produced by the response transform.
//
// Errors from interceptors, the executor and the transforms are
// returned unchanged. A response that is not OK, or whose status fails
// the status validator, produces an *Error of kind BadResponse with
// message MsgUnexpectedStatus.
//
// If a response interceptor returns Retry, the call starts over from
// endpoint and o, with Parameters.Attempt one higher. The context is
// checked before every restart.
func (c *Client) Request(ctx context.Context, endpoint string, o request.Options) (interface{}, error) {
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if c.maxRetries >= 0 && attempt > c.maxRetries {
				return nil, fmt.Errorf("%w after %d retries: %s", ErrRetryLimit, c.maxRetries, endpoint)
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		v, retry, err := c.attempt(ctx, endpoint, o, attempt)
		if !retry {
			return v, err
		}
	}
}

func (c *Client) attempt(ctx context.Context, endpoint string, o request.Options, attempt int) (interface{}, bool, error) {
	p := request.Merge(c.settings, o)
	p.Attempt = attempt
	if err := request.CheckMethod(p.Method); err != nil {
		return nil, false, err
	}

	if o.Data != nil {
		body, err := p.TransformRequest(o.Data, p.Headers)
		if err != nil {
			return nil, false, err
		}
		p.Body = body
	}

	url := c.prepareURL(endpoint, p)

	for _, before := range c.Interceptors.Request.List() {
		if err := before(ctx, url, p); err != nil {
			return nil, false, err
		}
	}

	c.logger.Debug().
		Str("method", p.Method).
		Str("url", url).
		Int("attempt", attempt).
		Msg("reqster: dispatching request")

	resp, err := c.executor.Execute(ctx, url, p)
	if err != nil {
		return nil, false, err
	}
	if resp == nil {
		return nil, false, errors.New("reqster: executor returned nil response")
	}

	for _, after := range c.Interceptors.Response.List() {
		result, err := after(ctx, url, p, resp)
		if err != nil {
			return nil, false, err
		}
		if result == Retry {
			c.logger.Debug().
				Str("method", p.Method).
				Str("url", url).
				Int("attempt", attempt).
				Int("status", resp.Status()).
				Msg("reqster: retry requested")
			return nil, true, nil
		}
	}

	if !resp.OK() || !p.ValidateStatus(resp.Status()) {
		c.logger.Debug().
			Str("method", p.Method).
			Str("url", url).
			Int("status", resp.Status()).
			Msg("reqster: unexpected status")
		return nil, false, badResponse(MsgUnexpectedStatus, url, p, resp, nil)
	}

	v, err := p.TransformResponse(ctx, resp, url, p)
	return v, false, err
}

// prepareURL appends the serialized query to the base URL and
// endpoint. Nothing is appended when the query is empty.
func (c *Client) prepareURL(endpoint string, p *request.Parameters) string {
	url := c.url + endpoint
	if len(p.Params) == 0 {
		return url
	}

	q := p.SerializeParams(p.Params)
	if q == "" {
		return url
	}

	if strings.Contains(url, "?") {
		return url + "&" + q
	}
	return url + "?" + q
}

// Get issues a GET for endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, o *request.Options) (interface{}, error) {
	return Get(ctx, c, endpoint, o)
}

// Post issues a POST for endpoint with data as the payload.
func (c *Client) Post(ctx context.Context, endpoint string, data interface{}, o *request.Options) (interface{}, error) {
	return Post(ctx, c, endpoint, data, o)
}

// Put issues a PUT for endpoint with data as the payload.
func (c *Client) Put(ctx context.Context, endpoint string, data interface{}, o *request.Options) (interface{}, error) {
	return Put(ctx, c, endpoint, data, o)
}

// Patch issues a PATCH for endpoint with data as the payload.
func (c *Client) Patch(ctx context.Context, endpoint string, data interface{}, o *request.Options) (interface{}, error) {
	return Patch(ctx, c, endpoint, data, o)
}

// Delete issues a DELETE for endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string, o *request.Options) (interface{}, error) {
	return Delete(ctx, c, endpoint, o)
}

// RequestAs runs c.Request with a response transform that decodes the
// JSON body into a T. A body that does not decode produces the same
// BadResponse error as TransformJSONResponse. Any TransformResponse set
// in o is replaced.
func RequestAs[T any](ctx context.Context, c *Client, endpoint string, o request.Options) (T, error) {
	var zero T
	o.TransformResponse = transformInto[T]
	v, err := c.Request(ctx, endpoint, o)
	if err != nil {
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}
