// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport provides a reqster executor built on the Go standard
HTTP client, and a fully buffered Response implementation that other
executors may reuse.

	c := transport.Create("https://api.example.com", request.Settings{
		Timeout: 10 * time.Second,
	})

The executor enforces the call timeout through the request context.
When the timeout expires the in-flight request is cancelled, not left
running, and the call fails with a reqster timeout error.
*/
package transport
