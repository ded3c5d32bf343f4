// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqster

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gogama/reqster/request"
	"github.com/gogama/reqster/transient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "bad response", BadResponse.String())
	assert.Equal(t, "timeout", Timeout.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestError(t *testing.T) {
	req := RequestInfo{URL: "http://h/p", Method: "GET", Headers: request.Headers{}}

	t.Run("bad response", func(t *testing.T) {
		cause := errors.New("cause")
		e := NewBadResponse(MsgUnexpectedStatus, req, &ResponseInfo{Status: 555, Body: "x"}, cause)

		assert.Equal(t, "reqster: bad response (HTTP 555): GET http://h/p: Unexpected status", e.Error())
		assert.Same(t, cause, e.Unwrap())
		assert.True(t, errors.Is(e, ErrBadResponse))
		assert.True(t, errors.Is(e, cause))
		assert.False(t, errors.Is(e, ErrTimeout))
		assert.False(t, e.Timeout())
		assert.Equal(t, transient.Not, transient.Categorize(e))
	})
	t.Run("timeout", func(t *testing.T) {
		e := NewTimeoutError("Timeout reached after 10 ms", req, context.DeadlineExceeded)

		assert.Equal(t, "reqster: timeout: GET http://h/p: Timeout reached after 10 ms", e.Error())
		assert.Nil(t, e.Response)
		assert.True(t, errors.Is(e, ErrTimeout))
		assert.True(t, errors.Is(e, context.DeadlineExceeded))
		assert.False(t, errors.Is(e, ErrBadResponse))
		assert.True(t, e.Timeout())
		assert.Equal(t, transient.Timeout, transient.Categorize(e))
	})
	t.Run("wrapped", func(t *testing.T) {
		e := NewTimeoutError("m", req, nil)
		wrapped := fmt.Errorf("outer: %w", e)

		var target *Error
		require.True(t, errors.As(wrapped, &target))
		assert.Same(t, e, target)
		assert.True(t, errors.Is(wrapped, ErrTimeout))
		assert.Nil(t, e.Unwrap())
	})
}

func TestNewTimeoutFor(t *testing.T) {
	p := request.Merge(DefaultSettings(), request.Options{
		Method:  "POST",
		Headers: request.Headers{"A": "b"},
		Timeout: request.Duration(1500 * time.Millisecond),
	})

	e := NewTimeoutFor("http://h/t", p, context.DeadlineExceeded)

	assert.Equal(t, Timeout, e.Kind)
	assert.Equal(t, "Timeout reached after 1500 ms", e.Message)
	assert.Equal(t, RequestInfo{URL: "http://h/t", Method: "POST", Headers: request.Headers{"A": "b"}}, e.Request)
	p.Headers["A"] = "changed"
	assert.Equal(t, "b", e.Request.Headers["A"])
}

func TestBadResponseSnapshot(t *testing.T) {
	p := request.Merge(DefaultSettings(), request.Options{})

	t.Run("body stays readable", func(t *testing.T) {
		r := newFakeResponse(500, "body")
		e := badResponse(MsgUnexpectedStatus, "http://h", p, r, nil)

		assert.Equal(t, "body", e.Response.Body)
		assert.Nil(t, e.Err)
		text, err := r.Text()
		require.NoError(t, err)
		assert.Equal(t, "body", text)
	})
	t.Run("unreadable body", func(t *testing.T) {
		readErr := errors.New("read failed")
		r := newFakeResponse(500, "")
		r.textErr = readErr

		e := badResponse(MsgUnexpectedStatus, "http://h", p, r, nil)
		assert.Same(t, readErr, e.Err)

		cause := errors.New("cause")
		e = badResponse(MsgBadJSON, "http://h", p, r, cause)
		assert.Same(t, cause, e.Err)
	})
}
