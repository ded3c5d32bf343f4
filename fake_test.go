// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqster

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gogama/reqster/request"
	"github.com/stretchr/testify/mock"
)

type fakeResponse struct {
	status  int
	header  fakeHeader
	body    string
	textErr error
}

func newFakeResponse(status int, body string) *fakeResponse {
	return &fakeResponse{status: status, body: body, header: fakeHeader{}}
}

func (r *fakeResponse) OK() bool                       { return r.status >= 200 && r.status < 300 }
func (r *fakeResponse) Status() int                    { return r.status }
func (r *fakeResponse) Header() request.ResponseHeader { return r.header }

func (r *fakeResponse) Clone() request.Response {
	r2 := *r
	return &r2
}

func (r *fakeResponse) Text() (string, error) {
	if r.textErr != nil {
		return "", r.textErr
	}
	return r.body, nil
}

func (r *fakeResponse) JSON(v interface{}) error {
	return json.Unmarshal([]byte(r.body), v)
}

type fakeHeader map[string]string

func (h fakeHeader) Get(name string) string {
	v, _ := h.lookup(name)
	return v
}

func (h fakeHeader) Has(name string) bool {
	_, ok := h.lookup(name)
	return ok
}

func (h fakeHeader) All() map[string]string {
	all := make(map[string]string, len(h))
	for k, v := range h {
		all[k] = v
	}
	return all
}

func (h fakeHeader) lookup(name string) (string, bool) {
	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

type mockExecutor struct {
	mock.Mock
}

func newMockExecutor(t *testing.T) *mockExecutor {
	m := &mockExecutor{}
	m.Test(t)
	return m
}

func (m *mockExecutor) Execute(ctx context.Context, url string, p *request.Parameters) (request.Response, error) {
	args := m.Called(ctx, url, p)
	err := args.Error(1)
	if resp, ok := args.Get(0).(request.Response); ok {
		return resp, err
	}
	return nil, err
}

type mockRequester struct {
	mock.Mock
}

func newMockRequester(t *testing.T) *mockRequester {
	m := &mockRequester{}
	m.Test(t)
	return m
}

func (m *mockRequester) Request(ctx context.Context, endpoint string, o request.Options) (interface{}, error) {
	args := m.Called(ctx, endpoint, o)
	return args.Get(0), args.Error(1)
}
