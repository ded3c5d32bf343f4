// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"time"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/hooks"
	"github.com/gogama/reqster/retry"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RetryPolicy returns the retry policy described by c.Retry: up to Max
// retries of responses with one of Statuses, waiting with jittered
// exponential backoff between BaseWait and MaxWait.
func (c *Config) RetryPolicy() retry.Policy {
	if c.Retry.Max <= 0 {
		return retry.Never
	}
	return retry.NewPolicy(
		retry.Times(c.Retry.Max).And(retry.StatusCode(c.Retry.Statuses...)),
		retry.NewRetryAfterWaiter(retry.NewExpWaiter(c.Retry.BaseWait, c.Retry.MaxWait, time.Now()), c.Retry.MaxWait),
	)
}

// Limiter returns the rate limiter described by c.RateLimit, or nil if
// rate limiting is disabled.
func (c *Config) Limiter() *rate.Limiter {
	if c.RateLimit.RPS <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(c.RateLimit.RPS), c.RateLimit.Burst)
}

// NewClient creates a client for c sending requests through executor.
// It registers, in order, a request ID interceptor, the rate limiter
// if any, and logging interceptors on l, followed by the retry
// interceptor if retries are enabled.
func (c *Config) NewClient(executor reqster.Executor, l zerolog.Logger) *reqster.Client {
	client := reqster.New(executor, c.BaseURL, c.Settings(), reqster.WithLogger(l))

	client.Interceptors.Request.Use(hooks.RequestID(hooks.HeaderRequestID))
	if lim := c.Limiter(); lim != nil {
		client.Interceptors.Request.Use(hooks.RateLimit(lim))
	}
	client.Interceptors.Request.Use(hooks.LogRequest(l))
	client.Interceptors.Response.Use(hooks.LogResponse(l))
	if c.Retry.Max > 0 {
		client.Interceptors.Response.Use(retry.Interceptor(c.RetryPolicy()))
	}

	return client
}
