// Package charts turns filtered dataset slices into go-echarts renderables.
// Builders are pure: every request rebuilds its chart from scratch.
package charts

import (
	"fmt"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"covidboard/internal/dataset/models"
)

// ConfirmedLine plots cumulative confirmed cases over the window, with daily
// new cases as a second series.
func ConfirmedLine(series []models.SeriesPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Confirmed Cases Over Time",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "Cases",
			Type:  "value",
			Scale: opts.Bool(true),
		}),
	)

	dates := make([]string, 0, len(series))
	confirmed := make([]opts.LineData, 0, len(series))
	newCases := make([]opts.LineData, 0, len(series))
	for _, p := range series {
		dates = append(dates, p.Date.Format(models.DateFormat))
		confirmed = append(confirmed, opts.LineData{Value: p.Value})
		newCases = append(newCases, opts.LineData{Value: p.NewCases})
	}

	line.SetXAxis(dates)
	line.AddSeries("Confirmed", confirmed, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	line.AddSeries("New cases", newCases, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// TopRegionsBar ranks regions by confirmed count on one date. Axes are
// flipped so the largest region reads first from the top.
func TopRegionsBar(totals []models.RegionTotal, asOf time.Time) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Top %d Regions by Confirmed Cases as of %s", len(totals), asOf.Format(models.DateFormat)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	// Reversed so the biggest bar lands on top after the axis flip.
	names := make([]string, 0, len(totals))
	values := make([]opts.BarData, 0, len(totals))
	for i := len(totals) - 1; i >= 0; i-- {
		names = append(names, totals[i].Region)
		values = append(values, opts.BarData{Value: totals[i].Confirmed})
	}

	bar.SetXAxis(names)
	bar.AddSeries("Confirmed", values)
	bar.XYReversal()
	return bar
}

// BreakdownPie splits one date's confirmed total into active, recovered, and
// deaths.
func BreakdownPie(b models.Breakdown) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Case Distribution on %s", b.Date.Format(models.DateFormat)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	pie.AddSeries("cases", []opts.PieData{
		{Name: "Active", Value: b.Active},
		{Name: "Recovered", Value: b.Recovered},
		{Name: "Deaths", Value: b.Deaths},
	}).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c}",
		}),
	)
	return pie
}

// ConfirmedDeathsScatter plots each region as a (confirmed, deaths) point.
func ConfirmedDeathsScatter(totals []models.RegionTotal, asOf time.Time) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Confirmed vs Deaths by Region as of %s", asOf.Format(models.DateFormat)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:  "Confirmed",
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "Deaths",
			Type:  "value",
			Scale: opts.Bool(true),
		}),
	)

	points := make([]opts.ScatterData, 0, len(totals))
	for _, t := range totals {
		points = append(points, opts.ScatterData{
			Name:  t.Region,
			Value: []interface{}{t.Confirmed, t.Deaths},
		})
	}
	scatter.AddSeries("regions", points)
	return scatter
}
