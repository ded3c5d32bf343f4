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

// Enforce wraps next so that a positive Parameters.Timeout is enforced
// whether or not next honours it.
//
// The attempt runs on its own goroutine. If the timeout expires first,
// Enforce returns a timeout error made by reqster.NewTimeoutFor and
// cancels the context passed to next. Whether the abandoned I/O stops
// then depends on next honouring its context; its eventual result is
// discarded.
//
// If ctx is done before either outcome, Enforce returns ctx.Err().
func Enforce(next reqster.Executor) reqster.Executor {
	if next == nil {
		panic("reqster/timeout: nil executor")
	}
	return reqster.ExecutorFunc(func(ctx context.Context, url string, p *request.Parameters) (request.Response, error) {
		if p.Timeout <= 0 {
			return next.Execute(ctx, url, p)
		}

		attemptCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		type outcome struct {
			r   request.Response
			err error
		}
		ch := make(chan outcome, 1)
		go func() {
			r, err := next.Execute(attemptCtx, url, p)
			ch <- outcome{r, err}
		}()

		t := time.NewTimer(p.Timeout)
		defer t.Stop()
		select {
		case o := <-ch:
			return o.r, o.err
		case <-t.C:
			return nil, reqster.NewTimeoutFor(url, p, context.DeadlineExceeded)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
}
