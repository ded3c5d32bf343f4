// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gogama/reqster/query"
)

// Headers is a bag of request headers. Keys are kept exactly as given.
type Headers map[string]string

// Clone returns a copy of h. The clone of a nil bag is an empty,
// non-nil bag.
func (h Headers) Clone() Headers {
	h2 := make(Headers, len(h))
	for k, v := range h {
		h2[k] = v
	}
	return h2
}

// Lookup returns the value of the first key equal to name under
// case-insensitive comparison, and whether one was found.
func (h Headers) Lookup(name string) (string, bool) {
	if v, ok := h[name]; ok {
		return v, true
	}
	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// SetIfUnset sets key to value unless h already holds the header
// under any capitalization.
func (h Headers) SetIfUnset(key, value string) {
	if _, ok := h.Lookup(key); !ok {
		h[key] = value
	}
}

// A SerializeFunc turns a query bag into a query string without the
// leading "?".
type SerializeFunc func(query.Bag) string

// A TransformRequestFunc turns call data into a request body. It may
// add headers, for example Content-Type, to h.
type TransformRequestFunc func(data interface{}, h Headers) ([]byte, error)

// A TransformResponseFunc turns a validated response into the value
// returned to the caller.
type TransformResponseFunc func(ctx context.Context, r Response, url string, p *Parameters) (interface{}, error)

// A ValidateStatusFunc reports whether a status code is acceptable.
type ValidateStatusFunc func(status int) bool

// Settings are the defaults a client applies to every call.
type Settings struct {
	// Headers are sent with every request unless a call overrides
	// them key by key.
	Headers Headers

	// Timeout is passed through to the executor. Zero means no
	// timeout.
	Timeout time.Duration

	SerializeParams   SerializeFunc
	TransformRequest  TransformRequestFunc
	TransformResponse TransformResponseFunc
	ValidateStatus    ValidateStatusFunc
}

// Options override Settings for a single call. Nil fields are absent
// and leave the corresponding setting untouched.
type Options struct {
	// Method is the HTTP method. An empty string means GET.
	Method string

	// Data is the payload passed to the request transform. Nil means
	// no body.
	Data interface{}

	// Params is serialized into the URL query string.
	Params query.Bag

	// Headers are merged over Settings.Headers.
	Headers Headers

	Timeout           *time.Duration
	SerializeParams   SerializeFunc
	TransformRequest  TransformRequestFunc
	TransformResponse TransformResponseFunc
	ValidateStatus    ValidateStatusFunc
}

// Duration returns a pointer to d, for use as Options.Timeout.
func Duration(d time.Duration) *time.Duration {
	return &d
}

// ValidMethod reports whether method is one of the methods a client
// will send: GET, POST, PUT, PATCH, DELETE or OPTIONS.
func ValidMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

// CheckMethod returns an error unless method is valid according to
// ValidMethod.
func CheckMethod(method string) error {
	if !ValidMethod(method) {
		return fmt.Errorf("reqster/request: invalid method %q", method)
	}
	return nil
}

// Merge builds fresh Parameters from s and o. Neither input is
// modified, and the returned Parameters share no header bag with
// either of them.
func Merge(s Settings, o Options) *Parameters {
	p := &Parameters{
		Settings: s,
		Method:   o.Method,
		Data:     o.Data,
		Params:   o.Params,
	}
	if p.Method == "" {
		p.Method = http.MethodGet
	}

	p.Headers = s.Headers.Clone()
	for k, v := range o.Headers {
		p.Headers[k] = v
	}

	if o.Timeout != nil {
		p.Timeout = *o.Timeout
	}
	if o.SerializeParams != nil {
		p.SerializeParams = o.SerializeParams
	}
	if o.TransformRequest != nil {
		p.TransformRequest = o.TransformRequest
	}
	if o.TransformResponse != nil {
		p.TransformResponse = o.TransformResponse
	}
	if o.ValidateStatus != nil {
		p.ValidateStatus = o.ValidateStatus
	}

	return p
}
