// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"

	"github.com/gogama/reqster/query"
)

// Parameters are the effective settings of a single call, produced by
// Merge. A fresh Parameters value is built for every call, including
// each restart caused by a response interceptor asking for a retry.
//
// Interceptors may modify exported fields in place. Changes made
// before the executor runs (for example adding a signing header)
// affect the request that is sent. Changes are never carried over to a
// retried call, which starts again from the original Options.
type Parameters struct {
	// Settings holds the merged settings. Headers is a private copy
	// and may be modified freely.
	Settings

	// Method is the HTTP method. It is never empty.
	Method string

	// Data is the payload given by the caller.
	Data interface{}

	// Params is the query bag given by the caller. It has already
	// been serialized into the URL by the time interceptors run.
	Params query.Bag

	// Body is the request body produced by the request transform. It
	// is nil when the call has no data.
	Body []byte

	// Attempt is the zero-based number of this attempt. It is zero on
	// the initial call and grows by one each time a response
	// interceptor asks for a retry.
	Attempt int

	data context.Context
}

// SetValue stores call-scoped data for use by interceptors, for
// example a start time recorded by a request interceptor and read back
// by a response interceptor.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should be of an unexported type to avoid collisions between
// different interceptors.
func (p *Parameters) SetValue(key, value interface{}) {
	ctx := p.data
	if ctx == nil {
		ctx = context.Background()
	}

	p.data = context.WithValue(ctx, key, value)
}

// Value returns the data associated with key by SetValue, or nil if
// there is none.
func (p *Parameters) Value(key interface{}) interface{} {
	if p.data == nil {
		return nil
	}

	return p.data.Value(key)
}
