package routing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

type resultKind int

const (
	resultDirect resultKind = iota
	resultViaStop
	resultFailed
)

func (k resultKind) String() string {
	switch k {
	case resultDirect:
		return "direct"
	case resultViaStop:
		return "via-stop"
	default:
		return "failed"
	}
}

// legResult is the outcome of solving one origin→destination pair
type legResult struct {
	kind   resultKind
	legs   []RouteLeg
	stops  []RefuelStop
	reason string
}

func failed(reason string) legResult {
	return legResult{kind: resultFailed, reason: reason}
}

func (r legResult) arrival() time.Time {
	return r.legs[len(r.legs)-1].ArrivalUTC
}

// search carries per-call state through the recursion. It is never shared between calls.
type search struct {
	perf *aircraft.Performance
	mode shared.OptimizationMode

	// candidates loaded by the wide box, keyed by from|to, reused by the graph fallback
	candidates map[string][]*airport.Airport
}

func pairKey(from, to *airport.Airport) string {
	return from.ICAO + "|" + to.ICAO
}

// Optimizer inserts fuel stops into legs the aircraft cannot fly direct
type Optimizer struct {
	directory  *airport.Directory
	tuning     Tuning
	strategies []stopStrategy
	logger     *slog.Logger
}

// OptimizerOption configures an Optimizer
type OptimizerOption func(*Optimizer)

// WithLogger sets the logger used for degraded candidate searches
func WithLogger(logger *slog.Logger) OptimizerOption {
	return func(o *Optimizer) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOptimizer creates an optimizer with the standard strategy ladder:
// narrow box, wide box, graph fallback.
func NewOptimizer(directory *airport.Directory, tuning Tuning, opts ...OptimizerOption) *Optimizer {
	t := tuning.withDefaults()
	o := &Optimizer{
		directory: directory,
		tuning:    t,
		strategies: []stopStrategy{
			&boxStrategy{radiusFactor: t.NarrowRadiusFactor},
			&boxStrategy{radiusFactor: t.WideRadiusFactor},
			&graphStrategy{},
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Tuning returns the effective parameters
func (o *Optimizer) Tuning() Tuning {
	return o.tuning
}

// Optimize plans every requested leg independently and aggregates the result
func (o *Optimizer) Optimize(ctx context.Context, perf *aircraft.Performance, requests []LegRequest, mode shared.OptimizationMode) (*Plan, error) {
	if len(requests) == 0 {
		return nil, shared.NewValidationError("legs", "at least one leg is required")
	}
	if !mode.IsValid() {
		return nil, shared.NewValidationError("optimization_mode", fmt.Sprintf("unknown mode %q", mode))
	}
	if perf == nil {
		return nil, shared.NewValidationError("aircraft", "performance record is required")
	}

	s := &search{perf: perf, mode: mode, candidates: make(map[string][]*airport.Airport)}
	plan := &Plan{Mode: mode}

	for i, req := range requests {
		departure, err := req.DepartureTime()
		if err != nil {
			return nil, err
		}
		from, err := o.directory.RequireLookup(ctx, req.FromICAO)
		if err != nil {
			return nil, err
		}
		to, err := o.directory.RequireLookup(ctx, req.ToICAO)
		if err != nil {
			return nil, err
		}
		if from.ICAO == to.ICAO {
			return nil, shared.NewValidationError(fmt.Sprintf("legs[%d]", i), "origin and destination are the same airport")
		}

		res, err := o.solve(ctx, s, from, to, departure, 0)
		if err != nil {
			return nil, err
		}
		if res.kind == resultFailed {
			dist := airport.DistanceNM(from, to)
			o.logger.Info("no route found", "from", from.ICAO, "to", to.ICAO, "reason", res.reason)
			return nil, shared.NewNoRouteError(from.ICAO, to.ICAO, dist, perf.MaxDirectNM(0))
		}
		if err := validateContinuity(res.legs); err != nil {
			return nil, fmt.Errorf("leg %s → %s: %w", from.ICAO, to.ICAO, err)
		}

		plan.Legs = append(plan.Legs, res.legs...)
		plan.Stops = append(plan.Stops, res.stops...)
	}

	for _, leg := range plan.Legs {
		plan.TotalDistanceNM += leg.DistanceNM
		plan.TotalFlightTimeMin += leg.FlightTimeMin
		plan.TotalFuelGal += leg.FuelBurnGal
	}
	plan.CostBreakdown = BuildCostBreakdown(plan.Legs, plan.Stops, o.tuning)

	return plan, nil
}

// solve plans from→to departing at departure. depth counts nested stop searches.
func (o *Optimizer) solve(ctx context.Context, s *search, from, to *airport.Airport, departure time.Time, depth int) (legResult, error) {
	if depth > o.tuning.MaxDepth {
		return legResult{}, shared.NewMaxDepthExceededError(from.ICAO, to.ICAO, o.tuning.MaxDepth)
	}
	if err := ctx.Err(); err != nil {
		return legResult{}, err
	}

	dist := airport.DistanceNM(from, to)
	if s.perf.CanFlyDirect(dist) {
		return legResult{kind: resultDirect, legs: []RouteLeg{o.directLeg(s.perf, from, to, departure)}}, nil
	}

	for _, strategy := range o.strategies {
		res, ok, err := strategy.attempt(ctx, o, s, from, to, departure, depth)
		if err != nil {
			return legResult{}, err
		}
		if ok {
			o.logger.Debug("fuel stop strategy succeeded",
				"strategy", strategy.name(), "from", from.ICAO, "to", to.ICAO, "depth", depth, "stops", len(res.stops))
			return res, nil
		}
	}

	return failed(fmt.Sprintf("direct %.0fnm exceeds max range %.0fnm and no strategy produced a stop", dist, s.perf.MaxDirectNM(0))), nil
}

func (o *Optimizer) directLeg(perf *aircraft.Performance, from, to *airport.Airport, departure time.Time) RouteLeg {
	dist := airport.DistanceNM(from, to)
	hours := perf.LegTimeHours(dist, 0)
	fuel := perf.LegFuelGal(dist, 0)
	return RouteLeg{
		From:          from.ICAO,
		To:            to.ICAO,
		DistanceNM:    dist,
		FlightTimeMin: hours * 60,
		FuelBurnGal:   fuel,
		FuelCostUSD:   fuel * o.tuning.fuelPriceAt(from),
		DepartureUTC:  departure,
		ArrivalUTC:    departure.Add(time.Duration(hours * float64(time.Hour))),
	}
}

// newStop describes refuelling at stop between prev and next
func (o *Optimizer) newStop(perf *aircraft.Performance, prev, stop, next *airport.Airport, reason string) RefuelStop {
	uplift := perf.LegFuelGal(airport.DistanceNM(stop, next), 0)
	price := o.tuning.fuelPriceAt(stop)
	return RefuelStop{
		ICAO:             stop.ICAO,
		Name:             stop.Name,
		DetourNM:         detourNM(prev, stop, next),
		FuelPriceUSDGal:  price,
		FuelUpliftGal:    uplift,
		FuelCostUSD:      uplift * price,
		FBOFeeUSD:        stop.FBOFeeUSD,
		GroundTimeMin:    o.tuning.GroundTime.Minutes(),
		CustomsAvailable: stop.CustomsAvailable,
		DeicingAvailable: stop.DeicingAvailable,
		Reason:           reason,
	}
}

func detourNM(prev, stop, next *airport.Airport) float64 {
	return math.Max(0, airport.DistanceNM(prev, stop)+airport.DistanceNM(stop, next)-airport.DistanceNM(prev, next))
}

// scoreCandidate ranks stop candidates for the mode; lower is better
func (o *Optimizer) scoreCandidate(s *search, from, stop, to *airport.Airport) float64 {
	detour := detourNM(from, stop, to)
	uplift := s.perf.LegFuelGal(airport.DistanceNM(stop, to), 0)
	costScore := o.tuning.DetourCostPerNM*detour + uplift*o.tuning.fuelPriceAt(stop) + stop.FBOFeeUSD
	detourHours := detour / s.perf.GroundSpeed(0)

	switch s.mode {
	case shared.ModeTime:
		return detourHours * 3600
	case shared.ModeBalanced:
		return o.tuning.BalancedCostWeight*costScore + o.tuning.BalancedHourWeight*detourHours
	default:
		return costScore
	}
}

// Alternative re-plans under the complementary mode. Any failure omits the alternative.
func (o *Optimizer) Alternative(ctx context.Context, perf *aircraft.Performance, requests []LegRequest, primary *Plan) *AlternativeRoute {
	if primary == nil {
		return nil
	}
	mode := primary.Mode.Complement()
	plan, err := o.Optimize(ctx, perf, requests, mode)
	if err != nil {
		o.logger.Debug("alternative route omitted", "mode", mode, "error", err)
		return nil
	}

	costDelta := plan.CostBreakdown.TotalRoutingCostUSD - primary.CostBreakdown.TotalRoutingCostUSD
	timeDelta := plan.TotalFlightTimeMin - primary.TotalFlightTimeMin

	return &AlternativeRoute{
		Mode:               mode,
		Legs:               plan.Legs,
		Stops:              plan.Stops,
		TotalDistanceNM:    plan.TotalDistanceNM,
		TotalFlightTimeMin: plan.TotalFlightTimeMin,
		CostBreakdown:      plan.CostBreakdown,
		CostDeltaUSD:       round2(costDelta),
		TimeDeltaMin:       round2(timeDelta),
		TradeOffNote:       TradeOffNote(mode, primary.Mode, costDelta, timeDelta),
	}
}

// TradeOffNote renders e.g. "time-optimized alternative: +$412, -38 min vs cost plan"
func TradeOffNote(alt, primary shared.OptimizationMode, costDeltaUSD, timeDeltaMin float64) string {
	return fmt.Sprintf("%s-optimized alternative: %s$%.0f, %s%.0f min vs %s plan",
		alt, sign(costDeltaUSD), math.Abs(costDeltaUSD), sign(timeDeltaMin), math.Abs(timeDeltaMin), primary)
}

func sign(v float64) string {
	if math.Round(v) < 0 {
		return "-"
	}
	return "+"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
