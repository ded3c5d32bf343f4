// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the data model shared by the reqster client,
its interceptors and its executors.

Settings are the per-client defaults. Options are the per-call
overrides. The client merges the two into a fresh Parameters value for
every call:

	p := request.Merge(settings, request.Options{
		Method:  "POST",
		Headers: request.Headers{"X-Sign": sig},
	})

Header bags are merged key by key, with the call's headers winning on
conflict; every other field present in Options replaces the Settings
value wholesale. Parameters are handed by pointer to request
interceptors, the executor, response interceptors and the response
transform of a single call, and are discarded when the call ends.
Interceptors may change them (for example to add a signature header)
and may stash call-scoped data with SetValue.

The Response interface is the contract executors satisfy. A Response
must support repeated body reads through Clone, since the client reads
the body for diagnostics independently of the final transform.
*/
package request
