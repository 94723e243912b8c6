package routeplan

import (
	"context"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
	"github.com/andrescamacho/aeroroute-go/internal/domain/risk"
	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// ComputeRoutePlanCommand requests a complete route plan for one aircraft
type ComputeRoutePlanCommand struct {
	AircraftID       string                  `json:"aircraft_id" validate:"required"`
	Legs             []routing.LegRequest    `json:"legs" validate:"required,min=1,dive"`
	Mode             shared.OptimizationMode `json:"optimization_mode" validate:"required,oneof=cost time balanced"`
	SkipWeatherNotam bool                    `json:"skip_weather_notam"`
}

// RoutePlanResult is the assembled plan returned to callers
type RoutePlanResult struct {
	PlanID             string                       `json:"plan_id"`
	AircraftID         string                       `json:"aircraft_id"`
	Mode               shared.OptimizationMode      `json:"optimization_mode"`
	ComputedAt         time.Time                    `json:"computed_at"`
	Legs               []routing.RouteLeg           `json:"route_legs"`
	Stops              []routing.RefuelStop         `json:"refuel_stops"`
	TotalDistanceNM    float64                      `json:"total_distance_nm"`
	TotalFlightTimeMin float64                      `json:"total_flight_time_min"`
	TotalFuelGal       float64                      `json:"total_fuel_gal"`
	Weather            []environment.WeatherSummary `json:"weather"`
	Notams             []environment.NotamAlert     `json:"notams"`
	RiskScore          int                          `json:"risk_score"`
	OnTimeProbability  float64                      `json:"on_time_probability"`
	RiskFactors        []risk.Factor                `json:"risk_factors"`
	CostBreakdown      routing.CostBreakdown        `json:"cost_breakdown"`
	Alternative        *routing.AlternativeRoute    `json:"alternative,omitempty"`
}

// Route returns the visited ICAOs in order, origin first
func (r *RoutePlanResult) Route() []string {
	if len(r.Legs) == 0 {
		return nil
	}
	route := []string{r.Legs[0].From}
	for _, leg := range r.Legs {
		route = append(route, leg.To)
	}
	return route
}

// PlanSummary is the event published after a plan is computed
type PlanSummary struct {
	PlanID              string                  `json:"plan_id"`
	AircraftID          string                  `json:"aircraft_id"`
	Mode                shared.OptimizationMode `json:"optimization_mode"`
	Route               []string                `json:"route"`
	FuelStops           int                     `json:"fuel_stops"`
	TotalDistanceNM     float64                 `json:"total_distance_nm"`
	TotalFlightTimeMin  float64                 `json:"total_flight_time_min"`
	TotalRoutingCostUSD float64                 `json:"total_routing_cost_usd"`
	AvgFuelPriceUSDGal  float64                 `json:"avg_fuel_price_usd_gal"`
	RiskScore           int                     `json:"risk_score"`
	OnTimeProbability   float64                 `json:"on_time_probability"`
	ComputedAt          time.Time               `json:"computed_at"`
}

// Summarize builds the published event for a result
func Summarize(r *RoutePlanResult) PlanSummary {
	return PlanSummary{
		PlanID:              r.PlanID,
		AircraftID:          r.AircraftID,
		Mode:                r.Mode,
		Route:               r.Route(),
		FuelStops:           len(r.Stops),
		TotalDistanceNM:     r.TotalDistanceNM,
		TotalFlightTimeMin:  r.TotalFlightTimeMin,
		TotalRoutingCostUSD: r.CostBreakdown.TotalRoutingCostUSD,
		AvgFuelPriceUSDGal:  r.CostBreakdown.AvgFuelPriceUSDGal,
		RiskScore:           r.RiskScore,
		OnTimeProbability:   r.OnTimeProbability,
		ComputedAt:          r.ComputedAt,
	}
}

// EnvironmentFetcher collects weather and NOTAMs without failing
type EnvironmentFetcher interface {
	FetchAll(ctx context.Context, icaos []string, window environment.TimeWindow) ([]environment.WeatherSummary, []environment.NotamAlert)
}

// PlanPublisher announces computed plans; failures never fail the plan
type PlanPublisher interface {
	PublishPlan(ctx context.Context, summary PlanSummary) error
}

// PlanRecorder receives plan metrics
type PlanRecorder interface {
	RecordPlan(result *RoutePlanResult, duration time.Duration)
	RecordFailure(code string)
}
