package bdd

import (
	"fmt"
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/aeroroute-go/test/bdd/steps"
	"github.com/andrescamacho/aeroroute-go/test/helpers"
)

func TestMain(m *testing.M) {
	if err := helpers.InitializeSharedTestDB(); err != nil {
		fmt.Fprintf(os.Stderr, "bdd: %v\n", err)
		os.Exit(1)
	}
	code := m.Run()
	_ = helpers.CloseSharedTestDB()
	os.Exit(code)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// first registration wins in godog; the planning steps own the shared "risk score" wording
	steps.InitializeRoutePlanningScenario(sc)
	steps.InitializeRiskScoringScenario(sc)
	steps.InitializeNotamClassificationScenario(sc)
}
