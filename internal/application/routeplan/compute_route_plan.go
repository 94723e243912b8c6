package routeplan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/andrescamacho/aeroroute-go/internal/application/common"
	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
	"github.com/andrescamacho/aeroroute-go/internal/domain/risk"
	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// notamWindowMargin widens the NOTAM query around the flying period
const notamWindowMargin = time.Hour

// ComputeRoutePlanHandler orchestrates optimization, environment fetch and risk scoring
type ComputeRoutePlanHandler struct {
	aircraftRepo aircraft.AircraftRepository
	directory    *airport.Directory
	planner      routing.Planner
	fetcher      EnvironmentFetcher
	clock        shared.Clock
	publisher    PlanPublisher
	recorder     PlanRecorder
	validate     *validator.Validate
	newID        func() string
}

// HandlerOption configures optional collaborators
type HandlerOption func(*ComputeRoutePlanHandler)

// WithPublisher announces every computed plan
func WithPublisher(p PlanPublisher) HandlerOption {
	return func(h *ComputeRoutePlanHandler) { h.publisher = p }
}

// WithRecorder records plan metrics
func WithRecorder(r PlanRecorder) HandlerOption {
	return func(h *ComputeRoutePlanHandler) { h.recorder = r }
}

// WithIDGenerator replaces uuid plan ids, used by tests
func WithIDGenerator(newID func() string) HandlerOption {
	return func(h *ComputeRoutePlanHandler) { h.newID = newID }
}

// NewComputeRoutePlanHandler creates the handler. fetcher may be nil when weather and
// NOTAMs are never wanted; clock defaults to the real clock.
func NewComputeRoutePlanHandler(
	aircraftRepo aircraft.AircraftRepository,
	directory *airport.Directory,
	planner routing.Planner,
	fetcher EnvironmentFetcher,
	clock shared.Clock,
	opts ...HandlerOption,
) *ComputeRoutePlanHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	h := &ComputeRoutePlanHandler{
		aircraftRepo: aircraftRepo,
		directory:    directory,
		planner:      planner,
		fetcher:      fetcher,
		clock:        clock,
		validate:     validator.New(),
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle executes the compute route plan command
func (h *ComputeRoutePlanHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ComputeRoutePlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ComputeRoutePlanCommand")
	}

	start := h.clock.Now()
	result, err := h.compute(ctx, cmd)
	if err != nil {
		h.recordFailure(err)
		return nil, err
	}

	if h.recorder != nil {
		h.recorder.RecordPlan(result, h.clock.Now().Sub(start))
	}
	h.publish(ctx, result)

	return result, nil
}

func (h *ComputeRoutePlanHandler) compute(ctx context.Context, cmd *ComputeRoutePlanCommand) (*RoutePlanResult, error) {
	logger := common.LoggerFromContext(ctx)

	if err := h.validateCommand(cmd); err != nil {
		return nil, err
	}

	perf, err := h.loadAircraft(ctx, cmd.AircraftID)
	if err != nil {
		return nil, err
	}

	plan, err := h.planner.Optimize(ctx, perf, cmd.Legs, cmd.Mode)
	if err != nil {
		return nil, err
	}
	alternative := h.planner.Alternative(ctx, perf, cmd.Legs, plan)

	touched := plan.TouchedICAOs()
	weather := []environment.WeatherSummary{}
	notams := []environment.NotamAlert{}
	if !cmd.SkipWeatherNotam && h.fetcher != nil {
		weather, notams = h.fetcher.FetchAll(ctx, touched, notamWindow(plan))
	}

	countries, err := h.countryPrefixes(ctx, touched)
	if err != nil {
		return nil, err
	}

	assessment := risk.Score(riskInput(plan, perf, weather, notams, countries))
	if alternative != nil {
		// the alternative reuses the same environmental snapshot
		alternative.RiskScore = assessment.Score
		alternative.OnTimeProbability = assessment.OnTimeProbability
	}

	result := &RoutePlanResult{
		PlanID:             h.newID(),
		AircraftID:         perf.AircraftID,
		Mode:               plan.Mode,
		ComputedAt:         h.clock.Now(),
		Legs:               plan.Legs,
		Stops:              nonNilStops(plan.Stops),
		TotalDistanceNM:    round1(plan.TotalDistanceNM),
		TotalFlightTimeMin: round1(plan.TotalFlightTimeMin),
		TotalFuelGal:       round1(plan.TotalFuelGal),
		Weather:            weather,
		Notams:             notams,
		RiskScore:          assessment.Score,
		OnTimeProbability:  assessment.OnTimeProbability,
		RiskFactors:        assessment.Factors,
		CostBreakdown:      plan.CostBreakdown,
		Alternative:        alternative,
	}

	logger.Info("route plan computed",
		"plan_id", result.PlanID,
		"aircraft", result.AircraftID,
		"mode", result.Mode,
		"route", strings.Join(result.Route(), "→"),
		"stops", len(result.Stops),
		"risk_score", result.RiskScore,
		"total_routing_cost_usd", result.CostBreakdown.TotalRoutingCostUSD,
	)

	return result, nil
}

func (h *ComputeRoutePlanHandler) validateCommand(cmd *ComputeRoutePlanCommand) error {
	if len(cmd.Legs) == 0 {
		return shared.NewValidationError("legs", "at least one leg is required")
	}
	if _, err := shared.ParseOptimizationMode(string(cmd.Mode)); err != nil {
		return err
	}
	cmd.Mode = shared.OptimizationMode(strings.ToLower(strings.TrimSpace(string(cmd.Mode))))

	if err := h.validate.Struct(cmd); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return shared.NewValidationError(verrs[0].Namespace(), fmt.Sprintf("failed %q check", verrs[0].Tag()))
		}
		return shared.NewValidationError("command", err.Error())
	}
	return nil
}

func (h *ComputeRoutePlanHandler) loadAircraft(ctx context.Context, aircraftID string) (*aircraft.Performance, error) {
	perf, err := h.aircraftRepo.FindByID(ctx, aircraftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load aircraft %s: %w", aircraftID, err)
	}
	if perf == nil {
		return nil, shared.NewAircraftNotFoundError(aircraftID)
	}
	return perf, nil
}

func (h *ComputeRoutePlanHandler) countryPrefixes(ctx context.Context, icaos []string) (map[string]string, error) {
	countries := make(map[string]string, len(icaos))
	for _, icao := range icaos {
		a, err := h.directory.RequireLookup(ctx, icao)
		if err != nil {
			return nil, err
		}
		countries[icao] = a.CountryPrefix
	}
	return countries, nil
}

func (h *ComputeRoutePlanHandler) publish(ctx context.Context, result *RoutePlanResult) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishPlan(ctx, Summarize(result)); err != nil {
		common.LoggerFromContext(ctx).Warn("failed to publish plan summary", "plan_id", result.PlanID, "error", err)
	}
}

func (h *ComputeRoutePlanHandler) recordFailure(err error) {
	if h.recorder == nil {
		return
	}
	code := "INTERNAL"
	if re, ok := shared.AsRoutingError(err); ok {
		code = string(re.Code)
	} else {
		var ve *shared.ValidationError
		if errors.As(err, &ve) {
			code = "VALIDATION"
		}
	}
	h.recorder.RecordFailure(code)
}

func riskInput(plan *routing.Plan, perf *aircraft.Performance, weather []environment.WeatherSummary,
	notams []environment.NotamAlert, countries map[string]string) risk.Input {

	stops := make([]string, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, s.ICAO)
	}
	legs := make([]risk.LegTimes, 0, len(plan.Legs))
	for _, l := range plan.Legs {
		legs = append(legs, risk.LegTimes{DepartureUTC: l.DepartureUTC, ArrivalUTC: l.ArrivalUTC})
	}

	return risk.Input{
		Weather:            weather,
		Notams:             notams,
		StopICAOs:          stops,
		TotalFlightTimeMin: plan.TotalFlightTimeMin,
		International:      routing.IsInternational(plan.Legs, func(icao string) string { return countries[icao] }),
		Legs:               legs,
		Category:           perf.Category,
	}
}

// notamWindow spans first departure to last arrival, widened by an hour each side
func notamWindow(plan *routing.Plan) environment.TimeWindow {
	if len(plan.Legs) == 0 {
		return environment.TimeWindow{}
	}
	return environment.TimeWindow{
		Start: plan.Legs[0].DepartureUTC.Add(-notamWindowMargin),
		End:   plan.Legs[len(plan.Legs)-1].ArrivalUTC.Add(notamWindowMargin),
	}
}

func nonNilStops(stops []routing.RefuelStop) []routing.RefuelStop {
	if stops == nil {
		return []routing.RefuelStop{}
	}
	return stops
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

// ComputeRoutePlan sends the command through the mediator and returns the typed result
func ComputeRoutePlan(ctx context.Context, m common.Mediator, cmd *ComputeRoutePlanCommand) (*RoutePlanResult, error) {
	resp, err := m.Send(ctx, cmd)
	if err != nil {
		return nil, err
	}
	result, ok := resp.(*RoutePlanResult)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return result, nil
}
