// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package reqster provides an HTTP client whose request pipeline is
independent of the transport that actually moves the bytes.

A Client is built from an Executor, a base URL and default settings:

	c := reqster.New(&transport.Executor{}, "https://api.example.com",
		request.Settings{
			Headers: request.Headers{"Accept": "application/json"},
			Timeout: 5 * time.Second,
		})
	v, err := c.Get(ctx, "/v1/user", &request.Options{
		Params: query.New("status", []string{"SEND", "RECEIVED"}),
	})

Any function with the right signature can serve as the executor, which
makes the pipeline easy to test and easy to move onto another
transport:

	exec := reqster.ExecutorFunc(func(ctx context.Context, url string, p *request.Parameters) (request.Response, error) {
		return transport.NewResponse(200, nil, []byte(`{"ok":true}`)), nil
	})

Interceptors hook into every call. Request interceptors run before the
executor and may modify the call parameters, for example to sign the
request. Response interceptors run before validation and may ask for
the whole call to be re-issued by returning Retry:

	c.Interceptors.Request.Use(func(ctx context.Context, url string, p *request.Parameters) error {
		p.Headers["X-Sign"] = sign(url, p.Body)
		return nil
	})
	c.Interceptors.Response.Use(func(ctx context.Context, url string, p *request.Parameters, r request.Response) (reqster.Result, error) {
		if r.Status() == 401 && refreshToken() {
			return reqster.Retry, nil
		}
		return reqster.Continue, nil
	})

Retries are unbounded unless the client is built WithMaxRetries. The
retry package provides bounded, backed-off retry interceptors, and the
hooks package provides logging, metrics, rate limiting, request ids,
JWT signing and JSON schema validation.

Failed calls return an *Error. Use errors.Is with ErrBadResponse or
ErrTimeout to branch on the kind, and inspect the Request and Response
snapshots for diagnostics.
*/
package reqster
