// Package summary computes the short text blurb shown under the charts.
package summary

import (
	"fmt"
	"time"

	"covidboard/internal/dataset"
	"covidboard/internal/dataset/models"
)

// Summary aggregates a filtered slice of the dataset.
type Summary struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Days           int       `json:"days"`
	TotalConfirmed int64     `json:"total_confirmed"`
	TotalDeaths    int64     `json:"total_deaths"`
	TotalRecovered int64     `json:"total_recovered"`
	TotalActive    int64     `json:"total_active"`
	NewCases       int64     `json:"new_cases"`
	PeakDate       time.Time `json:"peak_date"`
	PeakNewCases   int64     `json:"peak_new_cases"`
	Text           string    `json:"text"`
}

// Compute builds the summary for a date-ordered window of rows. Totals are
// the cumulative counts on the window's last day; NewCases sums the daily
// increases inside the window. ok is false for an empty window.
func Compute(rows []models.Observation) (Summary, bool) {
	series := dataset.GlobalSeries(rows)
	if len(series) == 0 {
		return Summary{}, false
	}

	var s Summary
	s.From = series[0].Date
	s.To = series[len(series)-1].Date
	s.Days = len(series)

	for _, p := range series {
		s.NewCases += p.NewCases
		if p.NewCases >= s.PeakNewCases {
			s.PeakNewCases = p.NewCases
			s.PeakDate = p.Date
		}
	}
	s.TotalConfirmed = series[len(series)-1].Value

	last := dataset.SumBreakdown(lastDay(rows, s.To))
	s.TotalDeaths = last.Deaths
	s.TotalRecovered = last.Recovered
	s.TotalActive = last.Active

	s.Text = fmt.Sprintf(
		"Between %s and %s, confirmed cases reached %d (%d new over %d days). "+
			"The worst day was %s with %d new cases. As of %s: %d active, %d recovered, %d deaths.",
		s.From.Format(models.DateFormat), s.To.Format(models.DateFormat),
		s.TotalConfirmed, s.NewCases, s.Days,
		s.PeakDate.Format(models.DateFormat), s.PeakNewCases,
		s.To.Format(models.DateFormat), s.TotalActive, s.TotalRecovered, s.TotalDeaths,
	)
	return s, true
}

func lastDay(rows []models.Observation, date time.Time) []models.Observation {
	var out []models.Observation
	for _, r := range rows {
		if r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out
}
