// Package dashboard holds the chart-panel step definitions.
package dashboard

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"covidboard/e2e/steps/common"
)

var panelPaths = map[string]string{
	"line":    "/charts/line",
	"bar":     "/charts/bar",
	"pie":     "/charts/pie",
	"scatter": "/charts/scatter",
}

// RegisterSteps wires the dashboard-specific steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc *common.TestContext) {
	ctx.Step(`^I open the "([^"]*)" chart panel$`, func(kind string) error {
		path, ok := panelPaths[kind]
		if !ok {
			return fmt.Errorf("unknown chart panel %q", kind)
		}
		return tc.Do(http.MethodGet, path)
	})

	ctx.Step(`^I open the "([^"]*)" chart panel for date "([^"]*)"$`, func(kind, date string) error {
		path, ok := panelPaths[kind]
		if !ok {
			return fmt.Errorf("unknown chart panel %q", kind)
		}
		return tc.Do(http.MethodGet, path+"?date="+date)
	})

	ctx.Step(`^the panel should render an ECharts page$`, func() error {
		if tc.LastStatus != http.StatusOK {
			return fmt.Errorf("expected status 200, got %d", tc.LastStatus)
		}
		if !strings.Contains(string(tc.LastBody), "echarts") {
			return fmt.Errorf("panel body does not embed echarts")
		}
		return nil
	})
}
