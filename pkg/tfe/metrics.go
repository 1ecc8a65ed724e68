package tfe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsStartKey = "metrics_start"

// Metrics records request counts and latencies in Prometheus collectors.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the collectors and registers them on reg.
// If the collectors are already registered the existing ones are reused.
func NewPrometheusMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tfe_client",
		Name:      "requests_total",
		Help:      "API requests by method and status code.",
	}, []string{"method", "code"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tfe_client",
		Name:      "request_duration_seconds",
		Help:      "API request latency by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	var err error

	requests, err = register(reg, requests)
	if err != nil {
		return nil, err
	}

	latency, err = register(reg, latency)
	if err != nil {
		return nil, err
	}

	return &Metrics{Requests: requests, Latency: latency}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, fmt.Errorf("registering metrics: %w", err)
}

// RequestInterceptor records the request start time.
func (m *Metrics) RequestInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[metricsStartKey] = time.Now()

		return nil
	}
}

// ResponseInterceptor counts the response and observes its latency.
// Transport failures are counted under code "error".
func (m *Metrics) ResponseInterceptor() ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		code := "error"
		if resp.StatusCode > 0 {
			code = strconv.Itoa(resp.StatusCode)
		}

		m.Requests.WithLabelValues(req.Method, code).Inc()

		elapsed := resp.Duration
		if start, ok := req.Metadata[metricsStartKey].(time.Time); ok {
			elapsed = time.Since(start)
		}

		m.Latency.WithLabelValues(req.Method).Observe(elapsed.Seconds())

		return nil
	}
}
