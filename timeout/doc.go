// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout sets and enforces per-attempt timeouts.
//
// A Policy chooses the timeout of each attempt of a call, including
// attempts re-issued by a retrying response interceptor. Interceptor
// installs a policy on a client as a request interceptor:
//
//	client.Interceptors.Request.Use(timeout.Interceptor(
//		timeout.Escalating(200*time.Millisecond, time.Second, 10*time.Second)))
//
// Executors are responsible for honouring Parameters.Timeout. Enforce
// adds that behaviour to an executor which does not have it.
package timeout
