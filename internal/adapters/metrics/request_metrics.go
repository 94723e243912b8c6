package metrics

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// RequestMetricsCollector times every mediator request and counts how it ended
type RequestMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

func NewRequestMetricsCollector() *RequestMetricsCollector {
	labels := []string{"request", "outcome"}
	return &RequestMetricsCollector{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Mediator request latency; plans include the weather and NOTAM fetch",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, labels),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Mediator requests by type and outcome",
		}, labels),
	}
}

func (c *RequestMetricsCollector) Register() error {
	return register(c.duration, c.total)
}

// Observe records one finished request
func (c *RequestMetricsCollector) Observe(request string, seconds float64, err error) {
	outcome := Outcome(err)
	c.duration.WithLabelValues(request, outcome).Observe(seconds)
	c.total.WithLabelValues(request, outcome).Inc()
}

// Outcome buckets an error for labelling: "ok", "validation", a lower-cased
// routing code such as "no_route", or "internal".
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var ve *shared.ValidationError
	if errors.As(err, &ve) {
		return "validation"
	}
	if re, ok := shared.AsRoutingError(err); ok {
		return strings.ToLower(string(re.Code))
	}
	return "internal"
}
