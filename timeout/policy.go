// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"context"
	"time"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
)

// A Policy decides the timeout of an attempt.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the attempt described by
	// p. The zero-based attempt index is p.Attempt.
	Timeout(p *request.Parameters) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 5 seconds on each attempt.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(0)

// Fixed constructs a timeout policy that returns d for every attempt.
func Fixed(d time.Duration) Policy {
	return policy([]time.Duration{d})
}

// Escalating constructs a timeout policy that gives retries more time
// than the initial attempt.
//
// Parameter usual is the timeout of the initial attempt. Parameter
// after holds the timeouts of the retries: after[0] for the first
// retry, after[1] for the second, and so on. If more retries are made
// than after has elements, the last element of after is used.
//
// Consider the following timeout policy:
//
//	p := Escalating(200*time.Millisecond, time.Second, 10*time.Second)
//
// The policy p uses 200 milliseconds for the initial attempt, 1 second
// for the first retry and 10 seconds for every retry after that.
func Escalating(usual time.Duration, after ...time.Duration) Policy {
	p := make([]time.Duration, 1, 1+len(after))
	p[0] = usual
	return policy(append(p, after...))
}

type policy []time.Duration

func (p policy) Timeout(params *request.Parameters) time.Duration {
	i := params.Attempt
	if i < 0 {
		i = 0
	}
	if i > len(p)-1 {
		i = len(p) - 1
	}

	return p[i]
}

// Interceptor returns a request interceptor which sets Parameters.Timeout
// according to policy, replacing any timeout from the client settings
// or call options.
func Interceptor(policy Policy) reqster.RequestInterceptor {
	if policy == nil {
		panic("reqster/timeout: nil policy")
	}
	return func(_ context.Context, _ string, p *request.Parameters) error {
		p.Timeout = policy.Timeout(p)
		return nil
	}
}
