package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
	"github.com/andrescamacho/aeroroute-go/internal/domain/risk"
)

type riskScoringContext struct {
	input      risk.Input
	assessment risk.Assessment
}

func (rc *riskScoringContext) reset() {
	rc.input = risk.Input{Category: aircraft.CategoryMidsize}
	rc.assessment = risk.Assessment{}
}

// Given steps

func (rc *riskScoringContext) theWeatherSummaries(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		crosswind, err := intCell(row, "crosswind")
		if err != nil {
			return err
		}
		wind, err := intCell(row, "wind")
		if err != nil {
			return err
		}
		rc.input.Weather = append(rc.input.Weather, environment.WeatherSummary{
			ICAO:         row["icao"],
			GoNoGo:       environment.GoNoGo(row["go_nogo"]),
			Icing:        intensityCell(row["icing"]),
			Convective:   intensityCell(row["convective"]),
			CrosswindKts: crosswind,
			WindKts:      wind,
		})
	}
	return nil
}

func (rc *riskScoringContext) theNotamAlerts(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		rc.input.Notams = append(rc.input.Notams, environment.NotamAlert{
			ICAO:     row["icao"],
			Type:     environment.NotamType(row["type"]),
			Severity: environment.Severity(row["severity"]),
		})
	}
	return nil
}

func (rc *riskScoringContext) thePlannedFuelStopsAre(list string) error {
	rc.input.StopICAOs = splitList(list)
	return nil
}

func (rc *riskScoringContext) theTotalFlightTimeIsMinutes(minutes int) error {
	rc.input.TotalFlightTimeMin = float64(minutes)
	return nil
}

func (rc *riskScoringContext) theAircraftCategoryIs(name string) error {
	category, err := aircraft.ParseCategory(name)
	if err != nil {
		return err
	}
	rc.input.Category = category
	return nil
}

func (rc *riskScoringContext) theTripCrossesABorder() error {
	rc.input.International = true
	return nil
}

func (rc *riskScoringContext) aLegDepartsAndArrives(departure, arrival string) error {
	dep, err := time.Parse(time.RFC3339, departure)
	if err != nil {
		return fmt.Errorf("departure: %w", err)
	}
	arr, err := time.Parse(time.RFC3339, arrival)
	if err != nil {
		return fmt.Errorf("arrival: %w", err)
	}
	rc.input.Legs = append(rc.input.Legs, risk.LegTimes{DepartureUTC: dep, ArrivalUTC: arr})
	return nil
}

// When steps

func (rc *riskScoringContext) iScoreTheTrip() error {
	rc.assessment = risk.Score(rc.input)
	return nil
}

// Then steps

func (rc *riskScoringContext) theRiskScoreShouldBe(score int) error {
	if rc.assessment.Score != score {
		return fmt.Errorf("expected risk score %d, got %d (factors %v)", score, rc.assessment.Score, rc.assessment.Factors)
	}
	return nil
}

func (rc *riskScoringContext) theOnTimeProbabilityShouldBe(raw string) error {
	want, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	if math.Abs(rc.assessment.OnTimeProbability-want) > 1e-9 {
		return fmt.Errorf("expected on-time probability %.3f, got %.3f", want, rc.assessment.OnTimeProbability)
	}
	return nil
}

func (rc *riskScoringContext) theRiskFactorShouldContribute(name string, points int) error {
	for _, f := range rc.assessment.Factors {
		if f.Name == name {
			if f.Points != points {
				return fmt.Errorf("factor %s: expected %d points, got %d", name, points, f.Points)
			}
			return nil
		}
	}
	return fmt.Errorf("factor %s not present in %v", name, rc.assessment.Factors)
}

func (rc *riskScoringContext) thereShouldBeNoRiskFactor(name string) error {
	for _, f := range rc.assessment.Factors {
		if f.Name == name {
			return fmt.Errorf("unexpected factor %s (%d points)", name, f.Points)
		}
	}
	return nil
}

func intensityCell(raw string) environment.Intensity {
	if raw == "" {
		return environment.IntensityNone
	}
	return environment.Intensity(raw)
}

func InitializeRiskScoringScenario(ctx *godog.ScenarioContext) {
	rc := &riskScoringContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		rc.reset()
		return ctx, nil
	})

	ctx.Step(`^the weather summaries:$`, rc.theWeatherSummaries)
	ctx.Step(`^the NOTAM alerts:$`, rc.theNotamAlerts)
	ctx.Step(`^the planned fuel stops are "([^"]*)"$`, rc.thePlannedFuelStopsAre)
	ctx.Step(`^the total flight time is (\d+) minutes$`, rc.theTotalFlightTimeIsMinutes)
	ctx.Step(`^the aircraft category is "([^"]*)"$`, rc.theAircraftCategoryIs)
	ctx.Step(`^the trip crosses a border$`, rc.theTripCrossesABorder)
	ctx.Step(`^a leg departs at "([^"]*)" and arrives at "([^"]*)"$`, rc.aLegDepartsAndArrives)

	ctx.Step(`^I score the trip$`, rc.iScoreTheTrip)

	ctx.Step(`^the risk score should be (\d+)$`, rc.theRiskScoreShouldBe)
	ctx.Step(`^the on-time probability should be ([0-9.]+)$`, rc.theOnTimeProbabilityShouldBe)
	ctx.Step(`^the risk factor "([^"]*)" should contribute (\d+) points$`, rc.theRiskFactorShouldContribute)
	ctx.Step(`^there should be no "([^"]*)" risk factor$`, rc.thereShouldBeNoRiskFactor)
}
