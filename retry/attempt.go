// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import "github.com/gogama/reqster/request"

// An Attempt describes the outcome of one attempt at a call. Exactly
// one of Response and Err is set.
type Attempt struct {
	// Index is the zero-based index of the attempt.
	Index int

	// URL is the fully built request URL.
	URL string

	// Params are the merged parameters of the attempt.
	Params *request.Parameters

	// Response is the response received, if any.
	Response request.Response

	// Err is the error returned by the executor, if any.
	Err error
}

// StatusCode returns the status of the response, or zero if there is
// no response.
func (a *Attempt) StatusCode() int {
	if a.Response == nil {
		return 0
	}
	return a.Response.Status()
}
