// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hooks

import (
	"context"
	"net/http"
	"testing"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
	"github.com/gogama/reqster/transport"
)

// recorder is an executor which answers with the next status in
// statuses, repeating the last one, and keeps the parameters of every
// attempt.
type recorder struct {
	statuses []int
	body     string
	header   http.Header
	seen     []*request.Parameters
}

func (r *recorder) Execute(_ context.Context, _ string, p *request.Parameters) (request.Response, error) {
	r.seen = append(r.seen, p)
	i := len(r.seen) - 1
	if i >= len(r.statuses) {
		i = len(r.statuses) - 1
	}
	return transport.NewResponse(r.statuses[i], r.header, []byte(r.body)), nil
}

func newTestClient(t *testing.T, statuses []int, body string) (*reqster.Client, *recorder) {
	t.Helper()
	x := &recorder{statuses: statuses, body: body}
	return reqster.New(x, "http://h", request.Settings{}), x
}

func retryOnce(_ context.Context, _ string, p *request.Parameters, _ request.Response) (reqster.Result, error) {
	if p.Attempt == 0 {
		return reqster.Retry, nil
	}
	return reqster.Continue, nil
}
