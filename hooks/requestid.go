// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hooks

import (
	"context"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
	"github.com/google/uuid"
)

// HeaderRequestID is the conventional request ID header.
const HeaderRequestID = "X-Request-Id"

// RequestID returns a request interceptor which sets header to a new
// random UUID unless the request already carries the header. Since
// each attempt starts from fresh parameters, retries get a new ID.
func RequestID(header string) reqster.RequestInterceptor {
	return func(_ context.Context, _ string, p *request.Parameters) error {
		p.Headers.SetIfUnset(header, uuid.New().String())
		return nil
	}
}
