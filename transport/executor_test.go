// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/query"
	"github.com/gogama/reqster/request"
	"github.com/gogama/reqster/transient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Method  string
	Query   string
	Headers http.Header
	Body    string
}

func newEchoServer(t *testing.T, status int, seen chan<- echo) *httptest.Server {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen <- echo{
			Method:  r.Method,
			Query:   r.URL.RawQuery,
			Headers: r.Header.Clone(),
			Body:    string(b),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Server", "echo")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"status":"done"}`))
	}))
	t.Cleanup(s.Close)
	return s
}

func newSlowServer(t *testing.T, pause time.Duration) *httptest.Server {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(pause):
			w.WriteHeader(200)
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func params(o request.Options) *request.Parameters {
	return request.Merge(reqster.DefaultSettings(), o)
}

func TestExecutor(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		seen := make(chan echo, 1)
		s := newEchoServer(t, 200, seen)
		p := params(request.Options{Method: "PUT", Headers: request.Headers{"X-Sign": "abc"}})
		p.Body = []byte(`{"field":true}`)

		x := &Executor{HTTPDoer: s.Client()}
		r, err := x.Execute(context.Background(), s.URL+"/v1/user?a=1", p)

		require.NoError(t, err)
		e := <-seen
		assert.Equal(t, "PUT", e.Method)
		assert.Equal(t, "a=1", e.Query)
		assert.Equal(t, "abc", e.Headers.Get("X-Sign"))
		assert.Equal(t, `{"field":true}`, e.Body)
		assert.True(t, r.OK())
		assert.Equal(t, 200, r.Status())
		assert.Equal(t, "echo", r.Header().Get("X-Server"))
		text, err := r.Text()
		require.NoError(t, err)
		assert.Equal(t, `{"status":"done"}`, text)
	})
	t.Run("non-2XX is not an error", func(t *testing.T) {
		seen := make(chan echo, 1)
		s := newEchoServer(t, 555, seen)
		x := &Executor{HTTPDoer: s.Client()}
		r, err := x.Execute(context.Background(), s.URL, params(request.Options{}))
		require.NoError(t, err)
		<-seen
		assert.False(t, r.OK())
		assert.Equal(t, 555, r.Status())
	})
	t.Run("timeout", func(t *testing.T) {
		s := newSlowServer(t, 5*time.Second)
		x := &Executor{HTTPDoer: s.Client()}
		p := params(request.Options{Timeout: request.Duration(20 * time.Millisecond)})
		start := time.Now()
		r, err := x.Execute(context.Background(), s.URL+"/slow", p)
		assert.Less(t, time.Since(start), 4*time.Second)
		assert.Nil(t, r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, reqster.ErrTimeout))
		assert.False(t, errors.Is(err, reqster.ErrBadResponse))
		var rerr *reqster.Error
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, reqster.Timeout, rerr.Kind)
		assert.Nil(t, rerr.Response)
		assert.Equal(t, s.URL+"/slow", rerr.Request.URL)
		assert.Equal(t, "GET", rerr.Request.Method)
		assert.Equal(t, "Timeout reached after 20 ms", rerr.Message)
		assert.Equal(t, transient.Timeout, transient.Categorize(err))
	})
	t.Run("parent deadline", func(t *testing.T) {
		s := newSlowServer(t, 5*time.Second)
		x := &Executor{HTTPDoer: s.Client()}
		testCases := []struct {
			name    string
			timeout *time.Duration
		}{
			{"own timeout longer", request.Duration(time.Second)},
			{"no own timeout", nil},
		}
		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
				defer cancel()
				start := time.Now()
				r, err := x.Execute(ctx, s.URL, params(request.Options{Timeout: testCase.timeout}))
				assert.Less(t, time.Since(start), 900*time.Millisecond)
				assert.Nil(t, r)
				require.Error(t, err)
				assert.False(t, errors.Is(err, reqster.ErrTimeout))
				assert.True(t, errors.Is(err, context.DeadlineExceeded))
				var uerr *url.Error
				assert.True(t, errors.As(err, &uerr))
				var rerr *reqster.Error
				assert.False(t, errors.As(err, &rerr))
			})
		}
	})
	t.Run("own deadline before parent deadline", func(t *testing.T) {
		s := newSlowServer(t, 5*time.Second)
		x := &Executor{HTTPDoer: s.Client()}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err := x.Execute(ctx, s.URL, params(request.Options{Timeout: request.Duration(20 * time.Millisecond)}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, reqster.ErrTimeout))
		assert.NoError(t, ctx.Err())
	})
	t.Run("cancelled", func(t *testing.T) {
		s := newSlowServer(t, 5*time.Second)
		x := &Executor{HTTPDoer: s.Client()}
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()
		_, err := x.Execute(ctx, s.URL, params(request.Options{}))
		require.Error(t, err)
		assert.False(t, errors.Is(err, reqster.ErrTimeout))
		assert.True(t, errors.Is(err, context.Canceled))
		var uerr *url.Error
		assert.True(t, errors.As(err, &uerr))
	})
	t.Run("connection refused", func(t *testing.T) {
		s := httptest.NewServer(http.NotFoundHandler())
		u := s.URL
		s.Close()
		x := &Executor{}
		_, err := x.Execute(context.Background(), u, params(request.Options{Method: "DELETE"}))
		require.Error(t, err)
		var uerr *url.Error
		require.True(t, errors.As(err, &uerr))
		assert.Equal(t, "Delete", uerr.Op)
		assert.Equal(t, transient.ConnRefused, transient.Categorize(err))
	})
	t.Run("bad URL", func(t *testing.T) {
		x := &Executor{}
		_, err := x.Execute(context.Background(), "://nope", params(request.Options{}))
		require.Error(t, err)
		var uerr *url.Error
		assert.True(t, errors.As(err, &uerr))
	})
}

func TestURLErrorOp(t *testing.T) {
	assert.Equal(t, "Get", urlErrorOp(""))
	assert.Equal(t, "Get", urlErrorOp("GET"))
	assert.Equal(t, "Put", urlErrorOp("PUT"))
	assert.Equal(t, "Options", urlErrorOp("OPTIONS"))
}

func TestNewTransport(t *testing.T) {
	tr, err := NewTransport()
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.True(t, tr.ForceAttemptHTTP2)
	assert.Contains(t, tr.TLSNextProto, "h2")
	assert.NotNil(t, DefaultDoer())
	assert.Same(t, DefaultDoer(), DefaultDoer())
}

func TestCreate(t *testing.T) {
	t.Run("GET with params", func(t *testing.T) {
		seen := make(chan echo, 1)
		s := newEchoServer(t, 200, seen)
		c := CreateWithDoer(s.Client(), s.URL, request.Settings{
			Headers: request.Headers{"Accept": "application/json"},
			Timeout: 5 * time.Second,
		})

		v, err := c.Get(context.Background(), "/v1/user", &request.Options{
			Params: query.New(
				"str", "tsc",
				"bool", true,
				"case", []string{"SEND", "RECEIVED"},
				"sort", query.New("created", -1),
			),
		})

		require.NoError(t, err)
		e := <-seen
		assert.Equal(t, "GET", e.Method)
		assert.Equal(t, "str=tsc&bool=true&case[]=SEND&case[]=RECEIVED&sort[created]=-1", e.Query)
		assert.Equal(t, "application/json", e.Headers.Get("Accept"))
		assert.Equal(t, map[string]interface{}{"status": "done"}, v)
	})
	t.Run("POST", func(t *testing.T) {
		seen := make(chan echo, 1)
		s := newEchoServer(t, 201, seen)
		c := CreateWithDoer(s.Client(), s.URL, request.Settings{})

		_, err := c.Post(context.Background(), "/v1/user", map[string]bool{"field": true}, nil)

		require.NoError(t, err)
		e := <-seen
		assert.Equal(t, "POST", e.Method)
		assert.Equal(t, `{"field":true}`, e.Body)
		assert.Equal(t, reqster.ContentTypeJSON, e.Headers.Get("Content-Type"))
	})
	t.Run("unexpected status", func(t *testing.T) {
		seen := make(chan echo, 1)
		s := newEchoServer(t, 555, seen)
		c := CreateWithDoer(s.Client(), s.URL, request.Settings{})

		_, err := c.Get(context.Background(), "/v1/user", nil)

		<-seen
		var rerr *reqster.Error
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, reqster.MsgUnexpectedStatus, rerr.Message)
		require.NotNil(t, rerr.Response)
		assert.Equal(t, 555, rerr.Response.Status)
		assert.Equal(t, `{"status":"done"}`, rerr.Response.Body)
		assert.Equal(t, "echo", rerr.Response.Headers["X-Server"])
	})
	t.Run("default doer", func(t *testing.T) {
		c := Create("http://localhost", request.Settings{})
		assert.Equal(t, "http://localhost", c.BaseURL())
	})
}
