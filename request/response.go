// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// A Response is a transport-agnostic HTTP response as produced by an
// executor.
//
// Implementations must allow the body to be read more than once: Text
// and JSON may be called on the same Response, and on any number of
// clones, without interfering with each other.
type Response interface {
	// OK reports whether the transport considers the response
	// successful, typically a 2XX status.
	OK() bool

	// Status returns the numeric HTTP status code.
	Status() int

	// Header returns the response headers.
	Header() ResponseHeader

	// Clone returns a Response whose body can be read independently
	// of r.
	Clone() Response

	// Text returns the whole body as a string.
	Text() (string, error)

	// JSON decodes the body into v. It returns an error if the body is
	// not valid JSON.
	JSON(v interface{}) error
}

// A ResponseHeader gives read access to response headers.
type ResponseHeader interface {
	// Get returns the first value of the named header, or "" if the
	// header is absent.
	Get(name string) string

	// Has reports whether the named header is present.
	Has(name string) bool

	// All returns every header with its first value.
	All() map[string]string
}
