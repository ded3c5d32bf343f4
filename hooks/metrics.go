// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hooks

import (
	"context"
	"strconv"
	"time"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/request"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records Prometheus metrics for the attempts a client makes.
// It is safe for concurrent use.
//
// Register both interceptors on the same client:
//
//	m := hooks.NewMetrics(prometheus.DefaultRegisterer, "myapp")
//	client.Interceptors.Request.Use(m.Request())
//	client.Interceptors.Response.Use(m.Response())
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
}

type metricsStartKey struct{}

// NewMetrics creates the metrics on registerer. Metric names are
// prefixed with namespace, which may be empty. It panics if the
// metrics are already registered.
func NewMetrics(registerer prometheus.Registerer, namespace string) *Metrics {
	return &Metrics{
		requestsTotal: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reqster_requests_total",
				Help:      "Total number of responses received",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: promauto.With(registerer).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reqster_request_duration_seconds",
				Help:      "Duration of request attempts in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "status_code"},
		),
		retriesTotal: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reqster_retries_total",
				Help:      "Total number of retried attempts",
			},
			[]string{"method"},
		),
	}
}

// Request returns the request interceptor half of m. It counts retries
// and records the attempt start time.
func (m *Metrics) Request() reqster.RequestInterceptor {
	return func(_ context.Context, _ string, p *request.Parameters) error {
		if p.Attempt > 0 {
			m.retriesTotal.WithLabelValues(p.Method).Inc()
		}
		p.SetValue(metricsStartKey{}, time.Now())
		return nil
	}
}

// Response returns the response interceptor half of m. It counts the
// response and, if Request ran for the same attempt, observes the
// attempt duration.
func (m *Metrics) Response() reqster.ResponseInterceptor {
	return func(_ context.Context, _ string, p *request.Parameters, r request.Response) (reqster.Result, error) {
		status := strconv.Itoa(r.Status())
		m.requestsTotal.WithLabelValues(p.Method, status).Inc()
		if start, ok := p.Value(metricsStartKey{}).(time.Time); ok {
			m.requestDuration.WithLabelValues(p.Method, status).Observe(time.Since(start).Seconds())
		}
		return reqster.Continue, nil
	}
}
