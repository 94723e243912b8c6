package routing

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// LegRequest is one requested origin→destination segment of a trip, departure in UTC
type LegRequest struct {
	FromICAO string `json:"from_icao" validate:"required,min=3,max=4"`
	ToICAO   string `json:"to_icao" validate:"required,min=3,max=4"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
}

// DepartureTime parses Date (YYYY-MM-DD) and Time (HH:MM) as a UTC instant
func (r LegRequest) DepartureTime() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(r.Date)+" "+strings.TrimSpace(r.Time), time.UTC)
	if err != nil {
		return time.Time{}, shared.NewValidationError("date/time",
			fmt.Sprintf("invalid departure %q %q (want YYYY-MM-DD and HH:MM)", r.Date, r.Time))
	}
	return t, nil
}

// RouteLeg is one flown segment of the final itinerary
type RouteLeg struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	DistanceNM    float64   `json:"distance_nm"`
	FlightTimeMin float64   `json:"flight_time_min"`
	FuelBurnGal   float64   `json:"fuel_burn_gal"`
	FuelCostUSD   float64   `json:"fuel_cost_usd"`
	IsFuelStopLeg bool      `json:"is_fuel_stop_leg"`
	DepartureUTC  time.Time `json:"departure_utc"`
	ArrivalUTC    time.Time `json:"arrival_utc"`
}

func (l RouteLeg) String() string {
	stop := ""
	if l.IsFuelStopLeg {
		stop = " [FUEL STOP]"
	}
	return fmt.Sprintf("%s → %s (%.0fnm, %.0fmin, %.0fgal)%s", l.From, l.To, l.DistanceNM, l.FlightTimeMin, l.FuelBurnGal, stop)
}

// RefuelStop is an airport inserted between a requested origin and destination
type RefuelStop struct {
	ICAO             string  `json:"icao"`
	Name             string  `json:"name"`
	DetourNM         float64 `json:"detour_nm"`
	FuelPriceUSDGal  float64 `json:"fuel_price_usd_gal"`
	FuelUpliftGal    float64 `json:"fuel_uplift_gal"`
	FuelCostUSD      float64 `json:"fuel_cost_usd"`
	FBOFeeUSD        float64 `json:"fbo_fee_usd"`
	GroundTimeMin    float64 `json:"ground_time_min"`
	CustomsAvailable bool    `json:"customs_available"`
	DeicingAvailable bool    `json:"deicing_available"`
	Reason           string  `json:"reason"`
}

// CostBreakdown is the routing-only cost of a plan; margin and tax belong to pricing
type CostBreakdown struct {
	FuelCostUSD         float64 `json:"fuel_cost_usd"`
	FBOFeesUSD          float64 `json:"fbo_fees_usd"`
	DetourCostUSD       float64 `json:"detour_cost_usd"`
	AvgFuelPriceUSDGal  float64 `json:"avg_fuel_price_usd_gal"`
	TotalRoutingCostUSD float64 `json:"total_routing_cost_usd"`
}

// Plan is the optimizer output for one optimization mode
type Plan struct {
	Mode               shared.OptimizationMode `json:"mode"`
	Legs               []RouteLeg              `json:"route_legs"`
	Stops              []RefuelStop            `json:"refuel_stops"`
	TotalDistanceNM    float64                 `json:"total_distance_nm"`
	TotalFlightTimeMin float64                 `json:"total_flight_time_min"`
	TotalFuelGal       float64                 `json:"total_fuel_gal"`
	CostBreakdown      CostBreakdown           `json:"cost_breakdown"`
}

// TouchedICAOs returns every airport the legs visit, in first-visit order
func (p *Plan) TouchedICAOs() []string {
	seen := make(map[string]bool)
	var icaos []string
	add := func(icao string) {
		if !seen[icao] {
			seen[icao] = true
			icaos = append(icaos, icao)
		}
	}
	for _, leg := range p.Legs {
		add(leg.From)
		add(leg.To)
	}
	return icaos
}

// StopICAOs returns the set of planned refuel stops
func (p *Plan) StopICAOs() map[string]bool {
	stops := make(map[string]bool, len(p.Stops))
	for _, s := range p.Stops {
		stops[s.ICAO] = true
	}
	return stops
}

// IsInternational reports whether any leg crosses a country prefix boundary
func IsInternational(legs []RouteLeg, countryOf func(icao string) string) bool {
	for _, leg := range legs {
		if countryOf(leg.From) != countryOf(leg.To) {
			return true
		}
	}
	return false
}

// AlternativeRoute is the plan under the complementary mode with its trade-off against the primary
type AlternativeRoute struct {
	Mode               shared.OptimizationMode `json:"mode"`
	Legs               []RouteLeg              `json:"route_legs"`
	Stops              []RefuelStop            `json:"refuel_stops"`
	TotalDistanceNM    float64                 `json:"total_distance_nm"`
	TotalFlightTimeMin float64                 `json:"total_flight_time_min"`
	CostBreakdown      CostBreakdown           `json:"cost_breakdown"`
	CostDeltaUSD       float64                 `json:"cost_delta_usd"`
	TimeDeltaMin       float64                 `json:"time_delta_min"`
	TradeOffNote       string                  `json:"trade_off_note"`
	RiskScore          int                     `json:"risk_score"`
	OnTimeProbability  float64                 `json:"on_time_probability"`
}

// validateContinuity checks that consecutive legs share their joining airport
func validateContinuity(legs []RouteLeg) error {
	for i := 0; i < len(legs)-1; i++ {
		if legs[i].To != legs[i+1].From {
			return fmt.Errorf("legs not connected: %s → %s", legs[i].To, legs[i+1].From)
		}
	}
	return nil
}
