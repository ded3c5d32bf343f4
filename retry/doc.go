// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides policies deciding whether a failed attempt
// should be retried, and how long to wait before retrying.
//
// A Policy is built with NewPolicy from a decision-maker, Decider, and
// a wait time calculator, Waiter. Both have constructors for common use
// cases, so a useful policy can be assembled quickly:
//
//	decider := retry.Times(3).
//	               And(retry.StatusCode(500, 503).Or(retry.TransientErr))
//	waiter := retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now())
//	policy := retry.NewPolicy(decider, waiter)
//
// A policy is put to work in one of two places. Interceptor turns it
// into a response interceptor which asks the client to re-issue the
// whole call, re-running the request interceptors, when the response
// status calls for it:
//
//	client.Interceptors.Response.Use(retry.Interceptor(policy))
//
// Executor wraps an executor and re-sends the same request when the
// executor fails with an error, typically a transient transport fault
// that never reaches the response interceptors.
package retry
