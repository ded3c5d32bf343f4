// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// A Waiter specifies how long to wait before retrying a failed attempt.
// It is only consulted after the Decider of the same policy has decided
// to retry.
//
// Implementations of Waiter must be safe for concurrent use by multiple
// goroutines.
type Waiter interface {
	Wait(a *Attempt) time.Duration
}

// DefaultWaiter is the default retry wait policy. It uses a jittered
// exponential backoff formula with a base wait of 50 milliseconds and a
// maximum wait of 1 second.
var DefaultWaiter = NewExpWaiter(50*time.Millisecond, 1*time.Second, time.Now())

// NewFixedWaiter constructs a Waiter that always returns the given
// duration.
//
// Use NewFixedWaiter to obtain a constant retry backoff.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *Attempt) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter constructs a Waiter implementing an exponential backoff
// formula with optional jitter.
//
// The formula implemented is the "Full Jitter" approach described in:
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
//
// Parameters base and max control the exponential calculation of the
// ceiling:
//
//	ceil := max(base * 2**attempt, max)
//
// Base and max must be positive values, and max must be at least equal
// to base.
//
// Parameter jitter is used to generate a random number between 0 and
// ceil. To make a waiter that does not jitter and simply returns
// ceil on each attempt, pass nil for jitter. Otherwise you may specify
// either a random number generator seed value (as a time.Time, int, or
// int64) or a random number generator (as a rand.Source). If a seed
// value is specified, it is used to seed a random number generator
// for calculating jitter. If a rand.Source is specified, it is used to
// calculate jitter.
func NewExpWaiter(base, max time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("reqster/retry: base must be positive")
	}
	if max < base {
		panic("reqster/retry: max must be at least base")
	}
	r := jitterToRand(jitter)
	return &jitterExpWaiter{
		base: base,
		max:  max,
		rand: r,
	}
}

type jitterExpWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (w *jitterExpWaiter) Wait(a *Attempt) time.Duration {
	n := a.Index
	if n < 0 {
		n = 0
	}
	ceil := int64(w.max)
	if n < 62 {
		exp := int64(1) << n
		if exp <= int64(w.max)/int64(w.base) {
			ceil = int64(w.base) * exp
		}
	}

	duration := ceil
	if ceil > 0 {
		w.lock.Lock()
		defer w.lock.Unlock()
		if w.rand != nil {
			duration = w.rand.Int63n(ceil)
		}
	}

	return time.Duration(duration)
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("reqster/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("reqster/retry: invalid jitter type")
	}
	return rand.New(s)
}

// NewRetryAfterWaiter constructs a Waiter which honours a Retry-After
// response header given in seconds, capped at max. Attempts without a
// usable header, including attempts that failed with an error, wait as
// long as fallback says.
func NewRetryAfterWaiter(fallback Waiter, max time.Duration) Waiter {
	if fallback == nil {
		panic("reqster/retry: nil fallback waiter")
	}
	return &retryAfterWaiter{fallback: fallback, max: max}
}

type retryAfterWaiter struct {
	fallback Waiter
	max      time.Duration
}

func (w *retryAfterWaiter) Wait(a *Attempt) time.Duration {
	if a.Response != nil {
		if s, err := strconv.ParseInt(a.Response.Header().Get("Retry-After"), 10, 64); err == nil && s >= 0 {
			if s > int64(math.MaxInt64/time.Second) {
				return w.max
			}
			d := time.Duration(s) * time.Second
			if d > w.max {
				d = w.max
			}
			return d
		}
	}
	return w.fallback.Wait(a)
}
