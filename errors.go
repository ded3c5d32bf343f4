// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqster

import (
	"errors"
	"fmt"

	"github.com/gogama/reqster/request"
)

// Kind classifies an Error.
type Kind int

const (
	// BadResponse indicates a response that failed status validation,
	// or whose body could not be decoded by the response transform.
	BadResponse Kind = iota
	// Timeout indicates the executor gave up waiting for a response.
	// Timeout errors carry no response snapshot.
	Timeout
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case BadResponse:
		return "bad response"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Messages used by the client and the default transforms.
const (
	MsgUnexpectedStatus = "Unexpected status"
	MsgBadJSON          = "Bad JSON"
)

var (
	// ErrBadResponse matches every Error of kind BadResponse under
	// errors.Is.
	ErrBadResponse = errors.New("reqster: bad response")
	// ErrTimeout matches every Error of kind Timeout under errors.Is.
	ErrTimeout = errors.New("reqster: timeout")
	// ErrRetryLimit is returned when a client built WithMaxRetries
	// receives one retry signal too many.
	ErrRetryLimit = errors.New("reqster: retry limit reached")
)

// RequestInfo is a snapshot of the request a failed call sent.
type RequestInfo struct {
	URL     string
	Headers request.Headers
	Method  string
}

// ResponseInfo is a snapshot of the response a failed call received.
type ResponseInfo struct {
	OK      bool
	Status  int
	Headers map[string]string
	Body    string
}

// Error is the error type produced for failed calls: by the client
// when a response fails validation, by the default response transform
// when the body is not JSON, and by executors when a deadline expires.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Message describes the failure, for example "Unexpected status".
	Message string
	// Request describes the request that was sent.
	Request RequestInfo
	// Response describes the response received. It is nil for
	// timeouts, which happen before any response exists.
	Response *ResponseInfo
	// Err is the underlying cause, if any.
	Err error
}

// NewBadResponse creates a BadResponse error.
func NewBadResponse(msg string, req RequestInfo, resp *ResponseInfo, cause error) *Error {
	return &Error{
		Kind:     BadResponse,
		Message:  msg,
		Request:  req,
		Response: resp,
		Err:      cause,
	}
}

// NewTimeoutError creates a Timeout error with no response snapshot.
func NewTimeoutError(msg string, req RequestInfo, cause error) *Error {
	return &Error{
		Kind:    Timeout,
		Message: msg,
		Request: req,
		Err:     cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("reqster: %s (HTTP %d): %s %s: %s",
			e.Kind, e.Response.Status, e.Request.Method, e.Request.URL, e.Message)
	}
	return fmt.Sprintf("reqster: %s: %s %s: %s", e.Kind, e.Request.Method, e.Request.URL, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match e against ErrBadResponse and ErrTimeout.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrBadResponse:
		return e.Kind == BadResponse
	case ErrTimeout:
		return e.Kind == Timeout
	}
	return false
}

// Timeout reports whether e is a timeout. It lets transient.Categorize
// recognize timeout errors.
func (e *Error) Timeout() bool {
	return e.Kind == Timeout
}

// requestInfo snapshots the request side of p.
func requestInfo(url string, p *request.Parameters) RequestInfo {
	return RequestInfo{
		URL:     url,
		Headers: p.Headers.Clone(),
		Method:  p.Method,
	}
}

// responseInfo snapshots r, reading the body from a clone so r itself
// stays readable.
func responseInfo(r request.Response) (*ResponseInfo, error) {
	body, err := r.Clone().Text()
	return &ResponseInfo{
		OK:      r.OK(),
		Status:  r.Status(),
		Headers: r.Header().All(),
		Body:    body,
	}, err
}

// badResponse builds a BadResponse error with full request and
// response snapshots. A failure to read the body for the snapshot is
// kept as the cause if there is no other one.
func badResponse(msg, url string, p *request.Parameters, r request.Response, cause error) *Error {
	info, err := responseInfo(r)
	if cause == nil {
		cause = err
	}
	return NewBadResponse(msg, requestInfo(url, p), info, cause)
}

// NewTimeoutFor creates a Timeout error for a call described by url
// and p, using the message format shared by all executors.
func NewTimeoutFor(url string, p *request.Parameters, cause error) *Error {
	msg := fmt.Sprintf("Timeout reached after %d ms", p.Timeout.Milliseconds())
	return NewTimeoutError(msg, requestInfo(url, p), cause)
}

// NewBadResponseFor creates a BadResponse error for a call described
// by url and p which received r. The response snapshot reads the body
// from a clone of r.
func NewBadResponseFor(msg, url string, p *request.Parameters, r request.Response, cause error) *Error {
	return badResponse(msg, url, p, r, cause)
}
