// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqster

import (
	"context"

	"github.com/gogama/reqster/request"
)

// An Executor performs the network I/O for a call.
//
// Execute sends a request for url described by p (method, merged
// headers and pre-built body) and returns the response. It must not
// return an error for ordinary non-2XX statuses; those are reported
// through Response.OK and Response.Status. It must return an error for
// transport-level faults such as a refused connection or a failed DNS
// lookup.
//
// If p.Timeout is positive, Execute is responsible for enforcing it and
// must report expiry with an *Error of kind Timeout, for example one
// made by NewTimeoutFor. Each executor documents whether the abandoned
// I/O is cancelled or left to finish.
//
// Execute must be safe for concurrent use by multiple goroutines.
type Executor interface {
	Execute(ctx context.Context, url string, p *request.Parameters) (request.Response, error)
}

// The ExecutorFunc type is an adapter to allow the use of ordinary
// functions as executors.
type ExecutorFunc func(ctx context.Context, url string, p *request.Parameters) (request.Response, error)

// Execute calls f(ctx, url, p).
func (f ExecutorFunc) Execute(ctx context.Context, url string, p *request.Parameters) (request.Response, error) {
	return f(ctx, url, p)
}

// Requester is the interface that wraps the basic Request method.
//
// Request runs the request pipeline for endpoint, relative to the base
// URL, and returns the value produced by the response transform.
// Client implements Requester.
type Requester interface {
	Request(ctx context.Context, endpoint string, o request.Options) (interface{}, error)
}

// Getter is the interface that wraps the basic Get method.
type Getter interface {
	Get(ctx context.Context, endpoint string, o *request.Options) (interface{}, error)
}

// Poster is the interface that wraps the basic Post method.
type Poster interface {
	Post(ctx context.Context, endpoint string, data interface{}, o *request.Options) (interface{}, error)
}

// Putter is the interface that wraps the basic Put method.
type Putter interface {
	Put(ctx context.Context, endpoint string, data interface{}, o *request.Options) (interface{}, error)
}

// Patcher is the interface that wraps the basic Patch method.
type Patcher interface {
	Patch(ctx context.Context, endpoint string, data interface{}, o *request.Options) (interface{}, error)
}

// Deleter is the interface that wraps the basic Delete method.
type Deleter interface {
	Delete(ctx context.Context, endpoint string, o *request.Options) (interface{}, error)
}

// API is the interface that groups the Request, Get, Post, Put, Patch
// and Delete methods. Client implements API.
type API interface {
	Requester
	Getter
	Poster
	Putter
	Patcher
	Deleter
}

// Get issues a GET for endpoint through any Requester.
func Get(ctx context.Context, r Requester, endpoint string, o *request.Options) (interface{}, error) {
	return r.Request(ctx, endpoint, shape("GET", nil, false, o))
}

// Post issues a POST with data for endpoint through any Requester.
func Post(ctx context.Context, r Requester, endpoint string, data interface{}, o *request.Options) (interface{}, error) {
	return r.Request(ctx, endpoint, shape("POST", data, true, o))
}

// Put issues a PUT with data for endpoint through any Requester.
func Put(ctx context.Context, r Requester, endpoint string, data interface{}, o *request.Options) (interface{}, error) {
	return r.Request(ctx, endpoint, shape("PUT", data, true, o))
}

// Patch issues a PATCH with data for endpoint through any Requester.
func Patch(ctx context.Context, r Requester, endpoint string, data interface{}, o *request.Options) (interface{}, error) {
	return r.Request(ctx, endpoint, shape("PATCH", data, true, o))
}

// Delete issues a DELETE for endpoint through any Requester.
func Delete(ctx context.Context, r Requester, endpoint string, o *request.Options) (interface{}, error) {
	return r.Request(ctx, endpoint, shape("DELETE", nil, false, o))
}

// Inflate converts any non-nil Requester into an API.
func Inflate(r Requester) API {
	if r == nil {
		panic("reqster: nil requester")
	}

	if a, ok := r.(API); ok {
		return a
	}

	return inflated{r}
}

type inflated struct {
	r Requester
}

func (i inflated) Request(ctx context.Context, endpoint string, o request.Options) (interface{}, error) {
	return i.r.Request(ctx, endpoint, o)
}

func (i inflated) Get(ctx context.Context, endpoint string, o *request.Options) (interface{}, error) {
	return Get(ctx, i.r, endpoint, o)
}

func (i inflated) Post(ctx context.Context, endpoint string, data interface{}, o *request.Options) (interface{}, error) {
	return Post(ctx, i.r, endpoint, data, o)
}

func (i inflated) Put(ctx context.Context, endpoint string, data interface{}, o *request.Options) (interface{}, error) {
	return Put(ctx, i.r, endpoint, data, o)
}

func (i inflated) Patch(ctx context.Context, endpoint string, data interface{}, o *request.Options) (interface{}, error) {
	return Patch(ctx, i.r, endpoint, data, o)
}

func (i inflated) Delete(ctx context.Context, endpoint string, o *request.Options) (interface{}, error) {
	return Delete(ctx, i.r, endpoint, o)
}

// shape copies o and sets the method, plus the data when withData is
// set.
func shape(method string, data interface{}, withData bool, o *request.Options) request.Options {
	var o2 request.Options
	if o != nil {
		o2 = *o
	}
	o2.Method = method
	if withData {
		o2.Data = data
	}
	return o2
}
