package routing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
	"github.com/andrescamacho/aeroroute-go/test/helpers"
)

func leg(from, to string) routing.LegRequest {
	return routing.LegRequest{FromICAO: from, ToICAO: to, Date: "2026-03-14", Time: "14:00"}
}

func newOptimizer(repo airport.AirportRepository, tuning routing.Tuning) *routing.Optimizer {
	return routing.NewOptimizer(airport.NewDirectory(repo), tuning)
}

func route(p *routing.Plan) []string {
	out := []string{p.Legs[0].From}
	for _, l := range p.Legs {
		out = append(out, l.To)
	}
	return out
}

func TestOptimizeDirectLeg(t *testing.T) {
	// Arrange
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())

	// Act
	plan, err := opt.Optimize(context.Background(), helpers.MidsizeAircraft("N100"), []routing.LegRequest{leg("KTEB", "KDEN")}, shared.ModeCost)

	// Assert
	require.NoError(t, err)
	require.Len(t, plan.Legs, 1)
	assert.Empty(t, plan.Stops)
	assert.False(t, plan.Legs[0].IsFuelStopLeg)
	assert.InDelta(t, 1394.7, plan.TotalDistanceNM, 0.5)
	assert.Zero(t, plan.CostBreakdown.FBOFeesUSD)
	assert.Equal(t, 8.2, plan.CostBreakdown.AvgFuelPriceUSDGal)
}

func TestOptimizeInsertsCheapestStopInCostMode(t *testing.T) {
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())
	perf := helpers.MidsizeAircraft("N100")

	plan, err := opt.Optimize(context.Background(), perf, []routing.LegRequest{leg("KTEB", "KLAX")}, shared.ModeCost)

	require.NoError(t, err)
	assert.Equal(t, []string{"KTEB", "KDEN", "KLAX"}, route(plan))
	require.Len(t, plan.Stops, 1)

	stop := plan.Stops[0]
	assert.Equal(t, "KDEN", stop.ICAO)
	assert.Equal(t, 6.80, stop.FuelPriceUSDGal)
	assert.Equal(t, 350.0, stop.FBOFeeUSD)
	assert.Equal(t, 45.0, stop.GroundTimeMin)
	assert.Greater(t, stop.DetourNM, 0.0)
	assert.Contains(t, stop.Reason, "refuel at KDEN")

	for _, l := range plan.Legs {
		assert.True(t, l.IsFuelStopLeg)
		assert.LessOrEqual(t, l.DistanceNM, perf.MaxDirectNM(0))
	}
	// the second leg departs after the ground time
	assert.Equal(t, 45*time.Minute, plan.Legs[1].DepartureUTC.Sub(plan.Legs[0].ArrivalUTC))

	b := plan.CostBreakdown
	assert.Greater(t, b.FuelCostUSD, 0.0)
	assert.Greater(t, b.FBOFeesUSD, 0.0)
	assert.Equal(t, 6.8, b.AvgFuelPriceUSDGal)
	assert.InDelta(t, b.FuelCostUSD+b.FBOFeesUSD+b.DetourCostUSD, b.TotalRoutingCostUSD, 0.011)
}

func TestOptimizePicksLeastDetourInTimeMode(t *testing.T) {
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())

	plan, err := opt.Optimize(context.Background(), helpers.MidsizeAircraft("N100"), []routing.LegRequest{leg("KTEB", "KLAX")}, shared.ModeTime)

	require.NoError(t, err)
	assert.Equal(t, []string{"KTEB", "KMKC", "KLAX"}, route(plan))
}

func TestOptimizeRespectsMinimumRunway(t *testing.T) {
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())
	perf := helpers.MidsizeAircraft("N100")
	// KMKC's longest runway is 6827ft
	perf.MinRunwayOverride = helpers.IntPtr(7000)

	plan, err := opt.Optimize(context.Background(), perf, []routing.LegRequest{leg("KTEB", "KLAX")}, shared.ModeTime)

	require.NoError(t, err)
	assert.Equal(t, []string{"KTEB", "KOMA", "KLAX"}, route(plan))
}

func TestOptimizeSkipsStopInsideCurfew(t *testing.T) {
	airports := helpers.FixtureAirports()
	for _, a := range airports {
		if a.ICAO == "KDEN" {
			// arrival from KTEB is about 17:06Z
			a.Curfew = &airport.TimeWindow{From: "16:00", To: "18:00"}
		}
	}
	opt := newOptimizer(helpers.NewMockAirportRepository(airports...), routing.DefaultTuning())

	plan, err := opt.Optimize(context.Background(), helpers.MidsizeAircraft("N100"), []routing.LegRequest{leg("KTEB", "KLAX")}, shared.ModeCost)

	require.NoError(t, err)
	assert.Equal(t, []string{"KTEB", "KICT", "KLAX"}, route(plan))
}

func TestOptimizeSkipsClosedStop(t *testing.T) {
	airports := helpers.FixtureAirports()
	for _, a := range airports {
		if a.ICAO == "KDEN" {
			a.OperatingHours = &airport.TimeWindow{From: "06:00", To: "16:00"}
		}
	}
	opt := newOptimizer(helpers.NewMockAirportRepository(airports...), routing.DefaultTuning())

	plan, err := opt.Optimize(context.Background(), helpers.MidsizeAircraft("N100"), []routing.LegRequest{leg("KTEB", "KLAX")}, shared.ModeCost)

	require.NoError(t, err)
	assert.NotContains(t, route(plan), "KDEN")
}

func TestOptimizeFallsBackToGraphForMultiStopRoutes(t *testing.T) {
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())
	perf := helpers.MidsizeAircraft("N100")
	req := routing.LegRequest{FromICAO: "KTEB", ToICAO: "EGLL", Date: "2026-03-14", Time: "10:00"}

	plan, err := opt.Optimize(context.Background(), perf, []routing.LegRequest{req}, shared.ModeCost)

	require.NoError(t, err)
	assert.Equal(t, []string{"KTEB", "CYQX", "BIKF", "EGLL"}, route(plan))
	require.Len(t, plan.Stops, 2)
	assert.Equal(t, "CYQX", plan.Stops[0].ICAO)
	assert.Equal(t, "BIKF", plan.Stops[1].ICAO)
	for _, l := range plan.Legs {
		assert.LessOrEqual(t, l.DistanceNM, perf.MaxDirectNM(0))
		assert.True(t, l.IsFuelStopLeg)
	}
}

func TestOptimizeChecksCurfewAtTheChainedArrival(t *testing.T) {
	// Arrange
	perf := helpers.MidsizeAircraft("N100")
	req := routing.LegRequest{FromICAO: "KTEB", ToICAO: "EGLL", Date: "2026-03-14", Time: "10:00"}
	baseline, err := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning()).
		Optimize(context.Background(), perf, []routing.LegRequest{req}, shared.ModeCost)
	require.NoError(t, err)
	arrival := baseline.Legs[len(baseline.Legs)-1].ArrivalUTC

	airports := helpers.FixtureAirports()
	for _, a := range airports {
		if a.ICAO == "EGLL" {
			a.Curfew = &airport.TimeWindow{
				From: arrival.Add(-10 * time.Minute).Format("15:04"),
				To:   arrival.Add(10 * time.Minute).Format("15:04"),
			}
		}
	}
	opt := newOptimizer(helpers.NewMockAirportRepository(airports...), routing.DefaultTuning())

	// Act
	plan, err := opt.Optimize(context.Background(), perf, []routing.LegRequest{req}, shared.ModeCost)

	// Assert
	if err != nil {
		assert.True(t, errors.Is(err, shared.ErrNoRoute), err.Error())
		return
	}
	byICAO := make(map[string]*airport.Airport, len(airports))
	for _, a := range airports {
		byICAO[a.ICAO] = a
	}
	for _, l := range plan.Legs {
		assert.False(t, byICAO[l.To].CurfewAt(l.ArrivalUTC), "%s→%s lands at %s inside the curfew",
			l.From, l.To, l.ArrivalUTC.Format("15:04"))
	}
}

func TestOptimizeNoRoute(t *testing.T) {
	repo := helpers.NewMockAirportRepository(helpers.FixtureAirportsExcept("CYQX", "BIKF")...)
	opt := newOptimizer(repo, routing.DefaultTuning())

	_, err := opt.Optimize(context.Background(), helpers.MidsizeAircraft("N100"), []routing.LegRequest{leg("KTEB", "EGLL")}, shared.ModeCost)

	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNoRoute))
	assert.Contains(t, err.Error(), "KTEB")
	assert.Contains(t, err.Error(), "EGLL")
}

func TestOptimizeDirectOnly(t *testing.T) {
	tuning := routing.DefaultTuning()
	tuning.DirectOnly = true
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), tuning)
	perf := helpers.MidsizeAircraft("N100")

	t.Run("a leg needing a stop exceeds the depth", func(t *testing.T) {
		_, err := opt.Optimize(context.Background(), perf, []routing.LegRequest{leg("KTEB", "KLAX")}, shared.ModeCost)

		assert.True(t, errors.Is(err, shared.ErrMaxDepthExceeded))
	})

	t.Run("direct legs still work", func(t *testing.T) {
		plan, err := opt.Optimize(context.Background(), perf, []routing.LegRequest{leg("KTEB", "KDEN")}, shared.ModeCost)

		require.NoError(t, err)
		assert.Len(t, plan.Legs, 1)
	})
}

func TestOptimizeZeroTuningUsesDefaultDepth(t *testing.T) {
	// Arrange
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.Tuning{})

	// Act
	plan, err := opt.Optimize(context.Background(), helpers.MidsizeAircraft("N100"), []routing.LegRequest{leg("KTEB", "KLAX")}, shared.ModeCost)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"KTEB", "KDEN", "KLAX"}, route(plan))
}

func TestOptimizeCandidateSearchFailureDegradesToNoRoute(t *testing.T) {
	repo := helpers.NewFixtureAirportRepository()
	repo.CandidateErr = errors.New("database is locked")
	opt := newOptimizer(repo, routing.DefaultTuning())
	perf := helpers.MidsizeAircraft("N100")

	_, err := opt.Optimize(context.Background(), perf, []routing.LegRequest{leg("KTEB", "KLAX")}, shared.ModeCost)
	assert.True(t, errors.Is(err, shared.ErrNoRoute))

	_, err = opt.Optimize(context.Background(), perf, []routing.LegRequest{leg("KTEB", "KDEN")}, shared.ModeCost)
	assert.NoError(t, err, "direct legs never query candidates")
}

func TestOptimizeIsDeterministic(t *testing.T) {
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())
	perf := helpers.MidsizeAircraft("N100")
	legs := []routing.LegRequest{leg("KTEB", "KLAX"), {FromICAO: "KLAX", ToICAO: "KTEB", Date: "2026-03-16", Time: "15:00"}}

	first, err := opt.Optimize(context.Background(), perf, legs, shared.ModeBalanced)
	require.NoError(t, err)
	second, err := opt.Optimize(context.Background(), perf, legs, shared.ModeBalanced)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOptimizeMultiLegTrip(t *testing.T) {
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())
	legs := []routing.LegRequest{
		leg("KTEB", "KDEN"),
		{FromICAO: "KDEN", ToICAO: "CYYZ", Date: "2026-03-15", Time: "09:00"},
	}

	plan, err := opt.Optimize(context.Background(), helpers.MidsizeAircraft("N100"), legs, shared.ModeCost)

	require.NoError(t, err)
	require.Len(t, plan.Legs, 2)
	assert.Equal(t, time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), plan.Legs[1].DepartureUTC)

	var dist, minutes, fuel float64
	for _, l := range plan.Legs {
		dist += l.DistanceNM
		minutes += l.FlightTimeMin
		fuel += l.FuelBurnGal
	}
	assert.InDelta(t, dist, plan.TotalDistanceNM, 1e-9)
	assert.InDelta(t, minutes, plan.TotalFlightTimeMin, 1e-9)
	assert.InDelta(t, fuel, plan.TotalFuelGal, 1e-9)
}

func TestOptimizeRejectsBadInput(t *testing.T) {
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())
	perf := helpers.MidsizeAircraft("N100")
	ctx := context.Background()

	t.Run("no legs", func(t *testing.T) {
		_, err := opt.Optimize(ctx, perf, nil, shared.ModeCost)
		var ve *shared.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := opt.Optimize(ctx, perf, []routing.LegRequest{leg("KTEB", "KDEN")}, "fastest")
		assert.Error(t, err)
	})

	t.Run("unknown airport", func(t *testing.T) {
		_, err := opt.Optimize(ctx, perf, []routing.LegRequest{leg("KTEB", "ZZZZ")}, shared.ModeCost)
		assert.True(t, errors.Is(err, shared.ErrUnknownAirport))
	})

	t.Run("same origin and destination", func(t *testing.T) {
		_, err := opt.Optimize(ctx, perf, []routing.LegRequest{leg("KTEB", "kteb")}, shared.ModeCost)
		var ve *shared.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("bad departure", func(t *testing.T) {
		_, err := opt.Optimize(ctx, perf, []routing.LegRequest{{FromICAO: "KTEB", ToICAO: "KDEN", Date: "tomorrow", Time: "14:00"}}, shared.ModeCost)
		var ve *shared.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := opt.Optimize(cancelled, perf, []routing.LegRequest{leg("KTEB", "KDEN")}, shared.ModeCost)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAlternativeUsesComplementaryMode(t *testing.T) {
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())
	perf := helpers.MidsizeAircraft("N100")
	legs := []routing.LegRequest{leg("KTEB", "KLAX")}

	primary, err := opt.Optimize(context.Background(), perf, legs, shared.ModeCost)
	require.NoError(t, err)

	alt := opt.Alternative(context.Background(), perf, legs, primary)

	require.NotNil(t, alt)
	assert.Equal(t, shared.ModeTime, alt.Mode)
	assert.Equal(t, "KMKC", alt.Stops[0].ICAO)
	assert.Less(t, alt.TimeDeltaMin, 0.0)
	assert.InDelta(t, alt.CostBreakdown.TotalRoutingCostUSD-primary.CostBreakdown.TotalRoutingCostUSD, alt.CostDeltaUSD, 0.011)
	assert.InDelta(t, alt.TotalFlightTimeMin-primary.TotalFlightTimeMin, alt.TimeDeltaMin, 0.011)
	assert.Contains(t, alt.TradeOffNote, "time-optimized alternative: ")
	assert.Contains(t, alt.TradeOffNote, "vs cost plan")
}

func TestAlternativeOmittedOnFailure(t *testing.T) {
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())

	assert.Nil(t, opt.Alternative(context.Background(), helpers.MidsizeAircraft("N100"), []routing.LegRequest{leg("KTEB", "ZZZZ")}, &routing.Plan{Mode: shared.ModeCost}))
	assert.Nil(t, opt.Alternative(context.Background(), helpers.MidsizeAircraft("N100"), nil, nil))
}

func TestOptimizeTurbopropStopsWithinItsRange(t *testing.T) {
	opt := newOptimizer(helpers.NewFixtureAirportRepository(), routing.DefaultTuning())
	perf := helpers.AircraftOfCategory("N200", aircraft.CategoryTurboprop)

	plan, err := opt.Optimize(context.Background(), perf, []routing.LegRequest{leg("KTEB", "KLAX")}, shared.ModeCost)

	require.NoError(t, err)
	assert.NotEmpty(t, plan.Stops)
	for _, l := range plan.Legs {
		assert.LessOrEqual(t, l.DistanceNM, perf.MaxDirectNM(0))
	}
}
