// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"net"
	"net/http"
	"time"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
	"golang.org/x/net/http2"
)

// NewTransport returns a transport with the same settings as
// http.DefaultTransport, configured for HTTP/2 through
// golang.org/x/net/http2 with connection health checks enabled.
func NewTransport() (*http.Transport, error) {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	t2, err := http2.ConfigureTransports(t)
	if err != nil {
		return nil, err
	}
	t2.ReadIdleTimeout = 30 * time.Second
	t2.PingTimeout = 15 * time.Second
	return t, nil
}

// Create returns a client sending requests through an Executor with
// the default HTTPDoer.
func Create(baseURL string, settings request.Settings, opts ...reqster.Option) *reqster.Client {
	return reqster.New(&Executor{}, baseURL, settings, opts...)
}

// CreateWithDoer returns a client sending requests through an Executor
// using doer.
func CreateWithDoer(doer HTTPDoer, baseURL string, settings request.Settings, opts ...reqster.Option) *reqster.Client {
	return reqster.New(&Executor{HTTPDoer: doer}, baseURL, settings, opts...)
}
