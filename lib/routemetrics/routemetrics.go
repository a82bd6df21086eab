// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package routemetrics records Prometheus metrics around router
// dispatch. The router itself has no side effects; callers that want
// metrics dispatch through [Dispatch] instead of calling the router
// directly.
//
// Metrics (with the default namespace):
//   - tokenroute_dispatches_total{outcome}: dispatches by outcome,
//     where outcome is "ok" or the router error kind
//   - tokenroute_dispatch_errors_total{kind}: router errors by kind
//   - tokenroute_dispatch_duration_seconds: dispatch latency
package routemetrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bureau-foundation/tokenroute/lib/clock"
	"github.com/bureau-foundation/tokenroute/lib/router"
)

// Config configures a Recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "tokenroute").
	Namespace string

	// Subsystem is the metrics subsystem, typically the table name.
	Subsystem string

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the registerer the metrics are created in.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// Clock times dispatches. Default: clock.Real()
	Clock clock.Clock
}

// Option configures a Recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// WithClock sets the clock used to time dispatches.
func WithClock(source clock.Clock) Option {
	return func(c *Config) {
		c.Clock = source
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "tokenroute",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
		Clock:     clock.Real(),
	}
}

// Recorder holds the dispatch metrics. A nil *Recorder records
// nothing.
type Recorder struct {
	clock      clock.Clock
	dispatched string
	dispatches *prometheus.CounterVec
	errors     *prometheus.CounterVec
	duration   prometheus.Histogram
}

// New creates and registers the dispatch metrics. Registering twice
// in the same registry panics, as with promauto.
func New(options ...Option) *Recorder {
	config := defaultConfig()
	for _, option := range options {
		option(&config)
	}
	factory := promauto.With(config.Registry)

	return &Recorder{
		clock:      config.Clock,
		dispatched: prometheus.BuildFQName(config.Namespace, config.Subsystem, "dispatches_total"),
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "dispatches_total",
			Help:      "Total number of token streams dispatched, by outcome",
		}, []string{"outcome"}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "dispatch_errors_total",
			Help:      "Total number of routing errors, by kind",
		}, []string{"kind"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "dispatch_duration_seconds",
			Help:      "Dispatch duration in seconds",
			Buckets:   config.Buckets,
		}),
	}
}

// Observe records one dispatch result.
func (r *Recorder) Observe(result router.Result, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.duration.Observe(elapsed.Seconds())

	outcome := Outcome(result)
	r.dispatches.WithLabelValues(outcome).Inc()
	if !result.IsOk() {
		r.errors.WithLabelValues(outcome).Inc()
	}
}

// Outcome labels a result: "ok" on success, otherwise the error kind.
func Outcome(result router.Result) string {
	var routeErr *router.Error
	if errors.As(result.Err(), &routeErr) {
		return routeErr.Kind.String()
	}
	return "ok"
}

// Outcomes reads the dispatch counter back from gatherer, which must
// gather the registry r was created in. The result maps each outcome
// seen so far to its count. A nil Recorder has no outcomes.
func (r *Recorder) Outcomes(gatherer prometheus.Gatherer) (map[string]uint64, error) {
	if r == nil {
		return nil, nil
	}
	families, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}
	outcomes := make(map[string]uint64)
	for _, family := range families {
		if family.GetName() != r.dispatched {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" {
					outcomes[label.GetValue()] = uint64(metric.GetCounter().GetValue())
				}
			}
		}
	}
	return outcomes, nil
}

// Dispatch runs table.Dispatch and records the result in r, which may
// be nil.
func Dispatch[C any](r *Recorder, table *router.Router[C], ctx C, tokens []string) router.Result {
	if r == nil {
		return table.Dispatch(ctx, tokens)
	}
	start := r.clock.Now()
	result := table.Dispatch(ctx, tokens)
	r.Observe(result, r.clock.Since(start))
	return result
}
