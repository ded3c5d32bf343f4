// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"net"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// Not means a new attempt after the error is unlikely to succeed. Every
// other category means a new attempt has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error, including nil.
	Not Category = iota
	// Timeout indicates a client-side timeout: the error or one of its
	// wrapped causes has a Timeout method reporting true. This covers
	// context.DeadlineExceeded, net/http client timeouts and reqster
	// timeout errors.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (ECONNREFUSED). The remote service may still be starting.
	ConnRefused
	// ConnReset indicates the remote host reset an active connection
	// (ECONNRESET), typical of a service or load balancer going down
	// mid-response.
	ConnReset
	// DNS indicates a temporary name resolution failure. A resolver
	// answer that the host does not exist is categorized as Not.
	DNS
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"DNS",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err, looking through
// wrapped causes. Timeout takes precedence over every other category.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTemporary && !dnsErr.IsNotFound {
		return DNS
	}

	return Not
}

// Is reports whether err is transient, that is whether Categorize
// returns anything other than Not.
func Is(err error) bool {
	return Categorize(err) != Not
}

type hasTimeout interface {
	Timeout() bool
}
