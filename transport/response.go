// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gogama/reqster/request"
)

// Response is a request.Response whose body has been read into memory.
// The body is never modified, so clones share it and every read
// returns the full body.
type Response struct {
	status int
	header Header
	body   []byte
}

// NewResponse returns a buffered response. A nil header is treated as
// empty.
func NewResponse(status int, header http.Header, body []byte) *Response {
	if header == nil {
		header = http.Header{}
	}
	return &Response{
		status: status,
		header: Header(header),
		body:   body,
	}
}

// OK reports whether the status is in the range [200, 300).
func (r *Response) OK() bool {
	return r.status >= 200 && r.status < 300
}

// Status returns the HTTP status code.
func (r *Response) Status() int {
	return r.status
}

// Header returns the response headers.
func (r *Response) Header() request.ResponseHeader {
	return r.header
}

// Clone returns a shallow copy of r.
func (r *Response) Clone() request.Response {
	r2 := *r
	return &r2
}

// Text returns the body as a string.
func (r *Response) Text() (string, error) {
	return string(r.body), nil
}

// JSON decodes the body into v.
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.body, v)
}

// Bytes returns the raw body. The returned slice must not be modified.
func (r *Response) Bytes() []byte {
	return r.body
}

// Header adapts an http.Header to request.ResponseHeader. Lookups are
// case-insensitive.
type Header http.Header

// Get returns the first value of the named header.
func (h Header) Get(name string) string {
	return http.Header(h).Get(name)
}

// Has reports whether the named header is present.
func (h Header) Has(name string) bool {
	_, ok := h[http.CanonicalHeaderKey(name)]
	return ok
}

// All returns each header with its first value.
func (h Header) All() map[string]string {
	all := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			all[k] = v[0]
		}
	}
	return all
}
