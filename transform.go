// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqster

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/gogama/reqster/query"
	"github.com/gogama/reqster/request"
)

// ContentTypeJSON is the Content-Type set by TransformJSONRequest.
const ContentTypeJSON = "application/json;charset=utf-8"

// DefaultSettings returns the settings a client falls back to for
// every field left unset: no headers, no timeout, query.Encode as the
// serializer, JSON request and response transforms, and a 2XX status
// validator.
func DefaultSettings() request.Settings {
	return request.Settings{
		Headers:           request.Headers{},
		Timeout:           0,
		SerializeParams:   query.Encode,
		TransformRequest:  TransformJSONRequest,
		TransformResponse: TransformJSONResponse,
		ValidateStatus:    ValidateStatus2XX,
	}
}

// ValidateStatus2XX accepts every status in the range [200, 300).
func ValidateStatus2XX(status int) bool {
	return status >= 200 && status < 300
}

// TransformJSONRequest encodes data as JSON. Unless h already has a
// Content-Type header, under any capitalization, it sets one to
// ContentTypeJSON. A nil data produces a nil body and leaves h alone.
func TransformJSONRequest(data interface{}, h request.Headers) ([]byte, error) {
	if data == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}

	h.SetIfUnset("Content-Type", ContentTypeJSON)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// TransformRawRequest sends data as an already encoded body, using
// request.BodyBytes. It never touches the headers. Data must be
// re-readable because a retried call transforms it again, so readers
// fail with request.ErrReaderBody.
func TransformRawRequest(data interface{}, _ request.Headers) ([]byte, error) {
	return request.BodyBytes(data)
}

// TransformJSONResponse decodes the body of r, read from a clone, as
// JSON into an interface{} value. If the body is not valid JSON it
// returns a BadResponse error with message MsgBadJSON whose response
// snapshot holds the literal body text.
func TransformJSONResponse(_ context.Context, r request.Response, url string, p *request.Parameters) (interface{}, error) {
	var v interface{}
	if err := r.Clone().JSON(&v); err != nil {
		return nil, badResponse(MsgBadJSON, url, p, r, err)
	}
	return v, nil
}

// TransformTextResponse returns the body of r, read from a clone, as a
// string.
func TransformTextResponse(_ context.Context, r request.Response, _ string, _ *request.Parameters) (interface{}, error) {
	return r.Clone().Text()
}

// TransformIdentityResponse returns r itself, leaving all body handling
// to the caller.
func TransformIdentityResponse(_ context.Context, r request.Response, _ string, _ *request.Parameters) (interface{}, error) {
	return r, nil
}

func transformInto[T any](_ context.Context, r request.Response, url string, p *request.Parameters) (interface{}, error) {
	var v T
	if err := r.Clone().JSON(&v); err != nil {
		return nil, badResponse(MsgBadJSON, url, p, r, err)
	}
	return v, nil
}
