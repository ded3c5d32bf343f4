// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqster

// A Result is returned by a response interceptor to tell the client
// how to proceed.
type Result int

const (
	// Continue lets the client run the next response interceptor, or
	// go on to validate and transform the response.
	Continue Result = iota
	// Retry makes the client abandon the remaining response
	// interceptors and re-issue the whole call from the original
	// endpoint and options: settings are merged afresh, the body is
	// rebuilt from the original data, and request interceptors run
	// again.
	//
	// The client does not limit retries unless it was built with
	// WithMaxRetries. An interceptor that always returns Retry makes
	// the call run forever.
	Retry
)

var resultNames = []string{
	"Continue",
	"Retry",
}

// String returns the name of the result.
func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return "Unknown"
	}
	return resultNames[r]
}
