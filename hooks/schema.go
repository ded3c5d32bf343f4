// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// MsgSchemaMismatch is the message of the error returned when a
// response body does not match the expected JSON schema.
const MsgSchemaMismatch = "Schema mismatch"

// Schema compiles schema, a JSON Schema document, and returns a
// response interceptor which validates the body of every OK response
// against it. A body that is not JSON produces a reqster.MsgBadJSON
// error and a body that does not match produces a MsgSchemaMismatch
// error, both of kind reqster.BadResponse and wrapping the underlying
// cause. Responses that are not OK are left to the client's status
// validation.
func Schema(schema string) (reqster.ResponseInterceptor, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("reqster/hooks: invalid schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("reqster/hooks: invalid schema: %w", err)
	}

	return func(_ context.Context, url string, p *request.Parameters, r request.Response) (reqster.Result, error) {
		if !r.OK() {
			return reqster.Continue, nil
		}
		var v interface{}
		if err := r.Clone().JSON(&v); err != nil {
			return reqster.Continue, reqster.NewBadResponseFor(reqster.MsgBadJSON, url, p, r, err)
		}
		if err := compiled.Validate(v); err != nil {
			return reqster.Continue, reqster.NewBadResponseFor(MsgSchemaMismatch, url, p, r, err)
		}
		return reqster.Continue, nil
	}, nil
}
