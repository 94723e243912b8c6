package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/persistence"
	"github.com/andrescamacho/aeroroute-go/internal/application/routeplan"
	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
	"github.com/andrescamacho/aeroroute-go/test/helpers"
)

type routePlanningContext struct {
	ctx      context.Context
	airports *persistence.GormAirportRepository
	aircraft *persistence.GormAircraftRepository
	result   *routeplan.RoutePlanResult
	err      error
}

func (rc *routePlanningContext) reset() error {
	rc.ctx = context.Background()
	rc.result = nil
	rc.err = nil
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	rc.airports = persistence.NewGormAirportRepository(helpers.SharedTestDB)
	rc.aircraft = persistence.NewGormAircraftRepository(helpers.SharedTestDB)
	return nil
}

// Given steps

func (rc *routePlanningContext) theFixtureAirportNetworkIsLoaded() error {
	return helpers.SeedFixtureAirports(rc.ctx, helpers.SharedTestDB)
}

func (rc *routePlanningContext) theFollowingAircraft(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		category, err := aircraft.ParseCategory(row["category"])
		if err != nil {
			return err
		}
		perf := helpers.AircraftOfCategory(row["id"], category)
		perf.TailNumber = row["tail"]
		if err := rc.aircraft.Save(rc.ctx, perf); err != nil {
			return err
		}
	}
	return nil
}

func (rc *routePlanningContext) airportsAreRemoved(list string) error {
	for _, icao := range splitList(list) {
		result := helpers.SharedTestDB.WithContext(rc.ctx).Where("icao = ?", icao).Delete(&persistence.AirportModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("airport %s is not loaded", icao)
		}
	}
	return nil
}

// When steps

func (rc *routePlanningContext) iPlanARoute(mode, aircraftID, from, to, date, clock string) error {
	directory := airport.NewDirectory(rc.airports)
	handler := routeplan.NewComputeRoutePlanHandler(
		rc.aircraft,
		directory,
		routing.NewOptimizer(directory, routing.DefaultTuning()),
		nil,
		shared.NewMockClock(time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)),
		routeplan.WithIDGenerator(func() string { return "plan-bdd" }),
	)

	resp, err := handler.Handle(rc.ctx, &routeplan.ComputeRoutePlanCommand{
		AircraftID:       aircraftID,
		Legs:             []routing.LegRequest{{FromICAO: from, ToICAO: to, Date: date, Time: clock}},
		Mode:             shared.OptimizationMode(mode),
		SkipWeatherNotam: true,
	})
	if err != nil {
		rc.err = err
		return nil
	}
	result, ok := resp.(*routeplan.RoutePlanResult)
	if !ok {
		return fmt.Errorf("unexpected response type %T", resp)
	}
	rc.result = result
	return nil
}

// Then steps

func (rc *routePlanningContext) theRouteShouldBe(expected string) error {
	if err := rc.requirePlan(); err != nil {
		return err
	}
	got := strings.Join(rc.result.Route(), " ")
	if got != expected {
		return fmt.Errorf("expected route %q, got %q", expected, got)
	}
	return nil
}

func (rc *routePlanningContext) thePlanShouldHaveFuelStops(n int) error {
	if err := rc.requirePlan(); err != nil {
		return err
	}
	if len(rc.result.Stops) != n {
		return fmt.Errorf("expected %d fuel stops, got %d", n, len(rc.result.Stops))
	}
	return nil
}

func (rc *routePlanningContext) thePlanShouldCarryARiskScoreOf(score int) error {
	if err := rc.requirePlan(); err != nil {
		return err
	}
	if rc.result.RiskScore != score {
		return fmt.Errorf("expected risk score %d, got %d (factors %v)", score, rc.result.RiskScore, rc.result.RiskFactors)
	}
	return nil
}

func (rc *routePlanningContext) thePlanRiskFactorShouldContribute(name string, points int) error {
	if err := rc.requirePlan(); err != nil {
		return err
	}
	for _, f := range rc.result.RiskFactors {
		if f.Name == name {
			if f.Points != points {
				return fmt.Errorf("factor %s: expected %d points, got %d", name, points, f.Points)
			}
			return nil
		}
	}
	return fmt.Errorf("factor %s not present in %v", name, rc.result.RiskFactors)
}

func (rc *routePlanningContext) theAlternativeShouldBeComputedInMode(mode string) error {
	if err := rc.requirePlan(); err != nil {
		return err
	}
	if rc.result.Alternative == nil {
		return fmt.Errorf("expected an alternative route")
	}
	if string(rc.result.Alternative.Mode) != mode {
		return fmt.Errorf("expected alternative mode %s, got %s", mode, rc.result.Alternative.Mode)
	}
	return nil
}

func (rc *routePlanningContext) everyStopShouldSellFuel() error {
	if err := rc.requirePlan(); err != nil {
		return err
	}
	for _, stop := range rc.result.Stops {
		a, err := rc.airports.FindByICAO(rc.ctx, stop.ICAO)
		if err != nil {
			return err
		}
		if a == nil || !a.HasFuel {
			return fmt.Errorf("stop %s does not sell fuel", stop.ICAO)
		}
	}
	return nil
}

func (rc *routePlanningContext) planningShouldFailWithCode(code string) error {
	if rc.err == nil {
		return fmt.Errorf("expected planning to fail with %s", code)
	}
	re, ok := shared.AsRoutingError(rc.err)
	if !ok {
		return fmt.Errorf("expected a routing error %s, got %v", code, rc.err)
	}
	if string(re.Code) != code {
		return fmt.Errorf("expected code %s, got %s (%v)", code, re.Code, rc.err)
	}
	return nil
}

func (rc *routePlanningContext) requirePlan() error {
	if rc.err != nil {
		return fmt.Errorf("planning failed: %w", rc.err)
	}
	if rc.result == nil {
		return fmt.Errorf("no plan computed")
	}
	return nil
}

func InitializeRoutePlanningScenario(ctx *godog.ScenarioContext) {
	rc := &routePlanningContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, rc.reset()
	})

	ctx.Step(`^the fixture airport network is loaded$`, rc.theFixtureAirportNetworkIsLoaded)
	ctx.Step(`^the following aircraft:$`, rc.theFollowingAircraft)
	ctx.Step(`^airports? "([^"]*)" (?:is|are) removed from the directory$`, rc.airportsAreRemoved)

	ctx.Step(`^I plan a "([^"]*)" route for "([^"]*)" from "([^"]*)" to "([^"]*)" departing "([^"]*)" at "([^"]*)"$`, rc.iPlanARoute)

	ctx.Step(`^the route should be "([^"]*)"$`, rc.theRouteShouldBe)
	ctx.Step(`^the plan should have (\d+) fuel stops?$`, rc.thePlanShouldHaveFuelStops)
	ctx.Step(`^the plan should carry a risk score of (\d+)$`, rc.thePlanShouldCarryARiskScoreOf)
	ctx.Step(`^the plan risk factor "([^"]*)" should contribute (\d+) points$`, rc.thePlanRiskFactorShouldContribute)
	ctx.Step(`^the alternative should be computed in "([^"]*)" mode$`, rc.theAlternativeShouldBeComputedInMode)
	ctx.Step(`^every fuel stop should sell fuel$`, rc.everyStopShouldSellFuel)
	ctx.Step(`^planning should fail with code "([^"]*)"$`, rc.planningShouldFailWithCode)
}
