package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
)

type notamClassificationContext struct {
	raw   environment.RawNotam
	alert environment.NotamAlert
}

func (nc *notamClassificationContext) reset() {
	nc.raw = environment.RawNotam{Source: "aim"}
	nc.alert = environment.NotamAlert{}
}

func (nc *notamClassificationContext) aNotamAtReading(icao, text string) error {
	nc.raw.NotamID = "A0001/26"
	nc.raw.ICAO = icao
	nc.raw.Text = text
	return nil
}

func (nc *notamClassificationContext) theSourceReportsSeverity(severity string) error {
	nc.raw.Severity = severity
	return nil
}

func (nc *notamClassificationContext) iClassifyTheNotam() error {
	nc.alert = environment.ClassifyNotam(nc.raw)
	return nil
}

func (nc *notamClassificationContext) theNotamShouldBeClassifiedAs(notamType, severity string) error {
	if string(nc.alert.Type) != notamType {
		return fmt.Errorf("expected type %s, got %s", notamType, nc.alert.Type)
	}
	if string(nc.alert.Severity) != severity {
		return fmt.Errorf("expected severity %s, got %s", severity, nc.alert.Severity)
	}
	return nil
}

func (nc *notamClassificationContext) theAlertShouldBeFiledUnder(icao string) error {
	if nc.alert.ICAO != icao {
		return fmt.Errorf("expected airport %s, got %s", icao, nc.alert.ICAO)
	}
	if nc.alert.Text != nc.raw.Text {
		return fmt.Errorf("alert text %q does not keep the raw text %q", nc.alert.Text, nc.raw.Text)
	}
	return nil
}

func InitializeNotamClassificationScenario(ctx *godog.ScenarioContext) {
	nc := &notamClassificationContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		nc.reset()
		return ctx, nil
	})

	ctx.Step(`^a NOTAM at "([^"]*)" reading "([^"]*)"$`, nc.aNotamAtReading)
	ctx.Step(`^the source reports severity "([^"]*)"$`, nc.theSourceReportsSeverity)
	ctx.Step(`^I classify the NOTAM$`, nc.iClassifyTheNotam)
	ctx.Step(`^the NOTAM should be classified as "([^"]*)" with severity "([^"]*)"$`, nc.theNotamShouldBeClassifiedAs)
	ctx.Step(`^the alert should be filed under "([^"]*)"$`, nc.theAlertShouldBeFiledUnder)
}
