package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"

	"covidboard/e2e/steps/common"
)

// TestFeatures runs the black-box suite against a running service. Set
// COVIDBOARD_E2E=1 and point COVIDBOARD_BASE_URL at the instance to enable.
func TestFeatures(t *testing.T) {
	if os.Getenv("COVIDBOARD_E2E") == "" {
		t.Skip("set COVIDBOARD_E2E=1 to run the e2e suite against a live service")
	}

	tc := common.NewTestContext()

	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
				tc.Reset()
				return ctx, nil
			})
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("e2e suite failed")
	}
}
