package e2e

import (
	"github.com/cucumber/godog"

	"covidboard/e2e/steps/admin"
	"covidboard/e2e/steps/common"
	"covidboard/e2e/steps/dashboard"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *common.TestContext) {
	// Register common steps (background, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register dashboard panel steps
	dashboard.RegisterSteps(ctx, tc)

	// Register admin auth steps
	admin.RegisterSteps(ctx, tc)
}
