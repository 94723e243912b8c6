package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetricsCollector handles metrics for the weather and NOTAM feeds
type UpstreamMetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retries         *prometheus.CounterVec
	rateLimitWait   *prometheus.HistogramVec
	circuitState    *prometheus.GaugeVec
}

// NewUpstreamMetricsCollector creates a new upstream metrics collector
func NewUpstreamMetricsCollector() *UpstreamMetricsCollector {
	return &UpstreamMetricsCollector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream requests by source and status code",
			},
			[]string{"source", "status_code"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream request duration distribution",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"source"},
		),

		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "upstream_retries_total",
				Help:      "Total number of upstream retry attempts",
			},
			[]string{"source", "reason"},
		),

		rateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "upstream_rate_limit_wait_seconds",
				Help:      "Time spent waiting for the upstream rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"source"},
		),

		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "upstream_circuit_state",
				Help:      "Breaker state per feed: 0 closed, 1 open, 2 half-open",
			},
			[]string{"source"},
		),
	}
}

// Register registers all upstream metrics with the Prometheus registry
func (c *UpstreamMetricsCollector) Register() error {
	return register(c.requestsTotal, c.requestDuration, c.retries, c.rateLimitWait, c.circuitState)
}

// RecordUpstreamRequest records a completed upstream request; statusCode 0 means a network error
func (c *UpstreamMetricsCollector) RecordUpstreamRequest(source string, statusCode int, duration float64) {
	c.requestsTotal.WithLabelValues(source, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(source).Observe(duration)
}

// RecordUpstreamRetry records an upstream retry attempt
func (c *UpstreamMetricsCollector) RecordUpstreamRetry(source string, reason string) {
	c.retries.WithLabelValues(source, reason).Inc()
}

// RecordRateLimitWait records time spent waiting for the rate limiter
func (c *UpstreamMetricsCollector) RecordRateLimitWait(source string, duration float64) {
	c.rateLimitWait.WithLabelValues(source).Observe(duration)
}

// RecordCircuitState sets the breaker state gauge for a feed
func (c *UpstreamMetricsCollector) RecordCircuitState(source string, state int) {
	c.circuitState.WithLabelValues(source).Set(float64(state))
}
