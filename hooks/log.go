// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hooks

import (
	"context"
	"time"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
	"github.com/rs/zerolog"
)

type startKey struct{}

// LogRequest returns a request interceptor which logs every outgoing
// attempt at debug level and records its start time for LogResponse.
func LogRequest(l zerolog.Logger) reqster.RequestInterceptor {
	return func(_ context.Context, url string, p *request.Parameters) error {
		p.SetValue(startKey{}, time.Now())
		l.Debug().
			Str("method", p.Method).
			Str("url", url).
			Int("attempt", p.Attempt).
			Int("body_bytes", len(p.Body)).
			Msg("request")
		return nil
	}
}

// LogResponse returns a response interceptor which logs every response,
// at info level when it is OK and at warn level otherwise. If LogRequest
// ran earlier in the same attempt, the elapsed time is included.
func LogResponse(l zerolog.Logger) reqster.ResponseInterceptor {
	return func(_ context.Context, url string, p *request.Parameters, r request.Response) (reqster.Result, error) {
		e := l.Info()
		if !r.OK() {
			e = l.Warn()
		}
		e = e.Str("method", p.Method).
			Str("url", url).
			Int("attempt", p.Attempt).
			Int("status", r.Status())
		if start, ok := p.Value(startKey{}).(time.Time); ok {
			e = e.Dur("elapsed", time.Since(start))
		}
		e.Msg("response")
		return reqster.Continue, nil
	}
}
