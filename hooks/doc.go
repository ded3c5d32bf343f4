// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package hooks provides ready-made request and response interceptors
// for a reqster.Client: logging, request IDs, rate limiting, metrics,
// bearer token signing and JSON schema validation.
//
// Every constructor returns a plain interceptor, registered like any
// other:
//
//	client.Interceptors.Request.Use(hooks.RequestID(hooks.HeaderRequestID))
//	client.Interceptors.Request.Use(hooks.RateLimit(rate.NewLimiter(10, 1)))
//	client.Interceptors.Response.Use(hooks.LogResponse(logger))
//
// Interceptors run in registration order, so register header-adding
// request interceptors before the ones that sign or log the request.
package hooks
