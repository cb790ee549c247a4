// Package metrics exposes the Prometheus collectors for request handling,
// upstream analytics calls, screener logins and circuit breaker state.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	obserrors "github.com/crakhack/crakhack-web/internal/observability/errors"
)

// Result constants for metric labels.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// Login outcomes.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginLimited = "rate_limited"
)

// RequestMetric describes one served HTTP request.
type RequestMetric struct {
	Method   string
	Route    string
	Status   int
	Duration time.Duration
}

// UpstreamMetric describes one call to the analytics provider.
type UpstreamMetric struct {
	Operation string
	Result    string
	Duration  time.Duration
	Err       error
}

// Collector owns the application's collectors. A nil *Collector is valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	logins           *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec
}

// New registers the collectors on reg. A nil reg uses a fresh private registry.
func New(namespace string, reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	c := &Collector{
		gatherer: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Analytics provider calls, by operation, result and error class.",
		}, []string{"operation", "result", "error_class"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "call_duration_seconds",
			Help:      "Analytics provider call latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"operation"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "screener",
			Name:      "login_attempts_total",
			Help:      "Screener login attempts, by outcome.",
		}, []string{"outcome"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open).",
		}, []string{"name"}),
	}

	reg.MustRegister(
		c.requests, c.requestDuration,
		c.upstreamCalls, c.upstreamDuration,
		c.logins, c.breakerState,
	)
	return c
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records a served request.
func (c *Collector) ObserveRequest(in RequestMetric) {
	if c == nil {
		return
	}
	route := in.Route
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(in.Method, route, strconv.Itoa(in.Status)).Inc()
	c.requestDuration.WithLabelValues(in.Method, route).Observe(in.Duration.Seconds())
}

// ObserveUpstream records a provider call. Failed calls are tagged with their error class.
func (c *Collector) ObserveUpstream(in UpstreamMetric) {
	if c == nil {
		return
	}
	class := ""
	if in.Err != nil && in.Result != ResultSuccess {
		class = obserrors.Classify(in.Err)
	}
	c.upstreamCalls.WithLabelValues(in.Operation, in.Result, class).Inc()
	if in.Duration > 0 {
		c.upstreamDuration.WithLabelValues(in.Operation).Observe(in.Duration.Seconds())
	}
}

// CountLogin records a screener login attempt.
func (c *Collector) CountLogin(outcome string) {
	if c == nil {
		return
	}
	c.logins.WithLabelValues(outcome).Inc()
}

// SetBreakerState records a circuit breaker transition.
func (c *Collector) SetBreakerState(name string, state float64) {
	if c == nil {
		return
	}
	c.breakerState.WithLabelValues(name).Set(state)
}
