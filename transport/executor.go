// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	Do(r *http.Request) (*http.Response, error)
}

// An Executor is a reqster.Executor that sends requests through an
// HTTPDoer and reads the entire response body into memory. Its zero
// value is ready to use.
//
// A positive Parameters.Timeout bounds the whole exchange, including
// reading the body. On expiry the request context is cancelled, so the
// underlying connection is released, and Execute returns a
// *reqster.Error of kind reqster.Timeout. Other transport failures,
// including an earlier deadline on the caller's context, are returned
// as *url.Error.
type Executor struct {
	// HTTPDoer sends the requests. If nil, a shared http.Client using
	// the transport from NewTransport is used.
	HTTPDoer HTTPDoer
}

var (
	defaultDoer     HTTPDoer
	defaultDoerOnce sync.Once
)

// DefaultDoer returns the shared HTTPDoer used by executors without
// their own.
func DefaultDoer() HTTPDoer {
	defaultDoerOnce.Do(func() {
		t, err := NewTransport()
		if err != nil {
			defaultDoer = http.DefaultClient
			return
		}
		defaultDoer = &http.Client{Transport: t}
	})
	return defaultDoer
}

// Execute sends the request described by url and p.
func (x *Executor) Execute(ctx context.Context, url string, p *request.Parameters) (request.Response, error) {
	parent := ctx
	var deadline time.Time
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		deadline = time.Now().Add(p.Timeout)
		ctx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}

	req, err := toRequest(ctx, url, p)
	if err != nil {
		return nil, urlErrorWrap(p.Method, url, err)
	}

	resp, err := x.doer().Do(req)
	if err != nil {
		return nil, classify(parent, ctx, deadline, url, p, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(parent, ctx, deadline, url, p, err)
	}

	return NewResponse(resp.StatusCode, resp.Header, body), nil
}

func (x *Executor) doer() HTTPDoer {
	if x.HTTPDoer == nil {
		return DefaultDoer()
	}

	return x.HTTPDoer
}

func toRequest(ctx context.Context, url string, p *request.Parameters) (*http.Request, error) {
	var body io.Reader
	if len(p.Body) > 0 {
		body = bytes.NewReader(p.Body)
	}
	req, err := http.NewRequestWithContext(ctx, p.Method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// classify turns an exchange failure into the error Execute returns.
// Only expiry of the call's own deadline becomes a reqster timeout
// error. A deadline or cancellation inherited from the parent context
// is reported as a *url.Error, whatever Parameters.Timeout says.
func classify(parent, ctx context.Context, deadline time.Time, url string, p *request.Parameters, err error) error {
	if ownDeadlineExpired(parent, ctx, deadline) {
		return reqster.NewTimeoutFor(url, p, err)
	}
	return urlErrorWrap(p.Method, url, err)
}

func ownDeadlineExpired(parent, ctx context.Context, deadline time.Time) bool {
	if deadline.IsZero() || ctx.Err() != context.DeadlineExceeded {
		return false
	}
	if parent.Err() == nil {
		return true
	}
	pd, ok := parent.Deadline()
	return !ok || deadline.Before(pd)
}

func urlErrorWrap(method, u string, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(method),
		URL: u,
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
