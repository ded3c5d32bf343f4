// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"context"
	"time"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
)

// Interceptor returns a response interceptor driven by policy. When the
// policy decides to retry, the interceptor waits for the policy's wait
// period and returns reqster.Retry. The attempt index is the
// Parameters.Attempt of the call.
//
// If ctx is done while waiting, the interceptor returns ctx.Err().
func Interceptor(policy Policy) reqster.ResponseInterceptor {
	if policy == nil {
		panic("reqster/retry: nil policy")
	}
	return func(ctx context.Context, url string, p *request.Parameters, r request.Response) (reqster.Result, error) {
		a := &Attempt{
			Index:    p.Attempt,
			URL:      url,
			Params:   p,
			Response: r,
		}
		if !policy.Decide(a) {
			return reqster.Continue, nil
		}
		if err := sleep(ctx, policy.Wait(a)); err != nil {
			return reqster.Continue, err
		}
		return reqster.Retry, nil
	}
}

// Executor wraps next so that an attempt failing with an error is sent
// again, with the same parameters, for as long as policy decides to
// retry. Responses are returned as soon as they arrive, whatever their
// status. The last error is returned when policy gives up.
//
// If ctx is done while waiting, the last error is returned.
func Executor(next reqster.Executor, policy Policy) reqster.Executor {
	if next == nil {
		panic("reqster/retry: nil executor")
	}
	if policy == nil {
		panic("reqster/retry: nil policy")
	}
	return reqster.ExecutorFunc(func(ctx context.Context, url string, p *request.Parameters) (request.Response, error) {
		for i := 0; ; i++ {
			r, err := next.Execute(ctx, url, p)
			if err == nil {
				return r, nil
			}
			a := &Attempt{
				Index:  i,
				URL:    url,
				Params: p,
				Err:    err,
			}
			if !policy.Decide(a) {
				return nil, err
			}
			if sleep(ctx, policy.Wait(a)) != nil {
				return nil, err
			}
		}
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
