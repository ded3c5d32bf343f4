// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqster

import (
	"context"

	"github.com/gogama/reqster/request"
)

// A RequestInterceptor runs before the executor is invoked. It may
// modify p, for example to add an authentication header. A non-nil
// error aborts the call and is returned to the caller unchanged.
type RequestInterceptor func(ctx context.Context, url string, p *request.Parameters) error

// A ResponseInterceptor runs after the executor returns a response and
// before the response is validated. Returning Retry re-issues the
// call. A non-nil error aborts the call and is returned to the caller
// unchanged.
type ResponseInterceptor func(ctx context.Context, url string, p *request.Parameters, r request.Response) (Result, error)

// A Registry holds interceptors in registration order. There is no way
// to remove an interceptor once registered.
//
// A Registry is not safe for concurrent registration. Register all
// interceptors before the client starts sending requests; after that
// the client only reads the registry, and concurrent calls are safe.
type Registry[T any] struct {
	items []T
}

// Use appends interceptor to the registry and returns its 1-based
// position, which is also the number of registered interceptors.
func (r *Registry[T]) Use(interceptor T) int {
	r.items = append(r.items, interceptor)
	return len(r.items)
}

// List returns the registered interceptors in registration order.
// The returned slice must not be modified.
func (r *Registry[T]) List() []T {
	return r.items
}

// Len returns the number of registered interceptors.
func (r *Registry[T]) Len() int {
	return len(r.items)
}

// Interceptors groups the two independent interceptor registries of a
// client.
type Interceptors struct {
	Request  Registry[RequestInterceptor]
	Response Registry[ResponseInterceptor]
}
