// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hooks

import (
	"context"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
	"golang.org/x/time/rate"
)

// RateLimit returns a request interceptor which blocks each attempt
// until l permits it. If ctx is done first, or l can never permit the
// attempt within the context deadline, the call fails with the
// limiter's error.
func RateLimit(l *rate.Limiter) reqster.RequestInterceptor {
	if l == nil {
		panic("reqster/hooks: nil limiter")
	}
	return func(ctx context.Context, _ string, _ *request.Parameters) error {
		return l.Wait(ctx)
	}
}
