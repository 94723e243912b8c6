package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/aeroroute-go/internal/application/routeplan"
)

// PlanMetricsCollector records route plan outcomes
type PlanMetricsCollector struct {
	plansTotal       *prometheus.CounterVec
	planDuration     *prometheus.HistogramVec
	planFailures     *prometheus.CounterVec
	fuelStops        prometheus.Histogram
	riskScore        prometheus.Histogram
	routingCost      *prometheus.HistogramVec
	weatherFallbacks prometheus.Counter
	notamAlerts      *prometheus.CounterVec
}

// NewPlanMetricsCollector creates a new plan metrics collector
func NewPlanMetricsCollector() *PlanMetricsCollector {
	return &PlanMetricsCollector{
		plansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plans_total",
				Help:      "Total number of route plans computed by optimization mode",
			},
			[]string{"mode"},
		),

		planDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_duration_seconds",
				Help:      "Route plan computation time including the environment fetch",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"mode"},
		),

		planFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_failures_total",
				Help:      "Total number of failed route plans by error code",
			},
			[]string{"code"},
		),

		fuelStops: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_fuel_stops",
				Help:      "Number of fuel stops per plan",
				Buckets:   []float64{0, 1, 2, 3, 4, 6, 8},
			},
		),

		riskScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_risk_score",
				Help:      "Risk score distribution",
				Buckets:   prometheus.LinearBuckets(0, 10, 11),
			},
		),

		routingCost: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_routing_cost_usd",
				Help:      "Total routing cost per plan",
				Buckets:   prometheus.ExponentialBuckets(500, 2, 10),
			},
			[]string{"mode"},
		),

		weatherFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "weather_fallbacks_total",
				Help:      "Airports scored with default weather because no report was available",
			},
		),

		notamAlerts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "notam_alerts_total",
				Help:      "NOTAM alerts attached to plans by type and severity",
			},
			[]string{"type", "severity"},
		),
	}
}

var _ routeplan.PlanRecorder = (*PlanMetricsCollector)(nil)

// Register registers all plan metrics with the Prometheus registry
func (c *PlanMetricsCollector) Register() error {
	return register(
		c.plansTotal,
		c.planDuration,
		c.planFailures,
		c.fuelStops,
		c.riskScore,
		c.routingCost,
		c.weatherFallbacks,
		c.notamAlerts,
	)
}

// RecordPlan records a successfully computed plan
func (c *PlanMetricsCollector) RecordPlan(result *routeplan.RoutePlanResult, duration time.Duration) {
	mode := string(result.Mode)

	c.plansTotal.WithLabelValues(mode).Inc()
	c.planDuration.WithLabelValues(mode).Observe(duration.Seconds())
	c.fuelStops.Observe(float64(len(result.Stops)))
	c.riskScore.Observe(float64(result.RiskScore))
	c.routingCost.WithLabelValues(mode).Observe(result.CostBreakdown.TotalRoutingCostUSD)

	for _, w := range result.Weather {
		if w.Fallback {
			c.weatherFallbacks.Inc()
		}
	}
	for _, n := range result.Notams {
		c.notamAlerts.WithLabelValues(string(n.Type), string(n.Severity)).Inc()
	}
}

// RecordFailure records a failed plan by error code
func (c *PlanMetricsCollector) RecordFailure(code string) {
	c.planFailures.WithLabelValues(code).Inc()
}
