package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "aeroroute"
	// Subsystem for routing engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalUpstreamCollector is set by SetGlobalUpstreamCollector when metrics are enabled
	globalUpstreamCollector UpstreamMetricsRecorder
)

// UpstreamMetricsRecorder records calls made to the weather and NOTAM feeds
type UpstreamMetricsRecorder interface {
	RecordUpstreamRequest(source string, statusCode int, duration float64)
	RecordUpstreamRetry(source string, reason string)
	RecordRateLimitWait(source string, duration float64)
	RecordCircuitState(source string, state int)
}

// InitRegistry initializes the Prometheus registry.
// Should be called once at startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry, nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalUpstreamCollector sets the collector used by the upstream HTTP clients
func SetGlobalUpstreamCollector(collector UpstreamMetricsRecorder) {
	globalUpstreamCollector = collector
}

// RecordUpstreamRequest records an upstream request globally
func RecordUpstreamRequest(source string, statusCode int, duration float64) {
	if globalUpstreamCollector != nil {
		globalUpstreamCollector.RecordUpstreamRequest(source, statusCode, duration)
	}
}

// RecordUpstreamRetry records an upstream retry globally
func RecordUpstreamRetry(source string, reason string) {
	if globalUpstreamCollector != nil {
		globalUpstreamCollector.RecordUpstreamRetry(source, reason)
	}
}

// RecordRateLimitWait records time spent in the upstream rate limiter globally
func RecordRateLimitWait(source string, duration float64) {
	if globalUpstreamCollector != nil {
		globalUpstreamCollector.RecordRateLimitWait(source, duration)
	}
}

// RecordCircuitState records a breaker transition globally
func RecordCircuitState(source string, state int) {
	if globalUpstreamCollector != nil {
		globalUpstreamCollector.RecordCircuitState(source, state)
	}
}

func register(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil // Metrics not enabled
	}
	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
