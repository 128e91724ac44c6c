// Package models defines the observation records shared by dataset sources,
// the snapshot store, and the dashboard service.
package models

import "time"

// DateFormat is the canonical wire format for dates on the HTTP surface.
const DateFormat = "2006-01-02"

// GlobalRegion labels rows that aggregate all regions, e.g. the day-wise
// source which carries no per-country breakdown.
const GlobalRegion = "Global"

// Observation is one region's case counts as of one date. Confirmed, Deaths,
// Recovered, and Active are cumulative; NewCases is the day-over-day increase
// in Confirmed.
type Observation struct {
	Region    string    `json:"region"`
	Date      time.Time `json:"date"`
	Confirmed int64     `json:"confirmed"`
	Deaths    int64     `json:"deaths"`
	Recovered int64     `json:"recovered"`
	Active    int64     `json:"active"`
	NewCases  int64     `json:"new_cases"`
}

// SeriesPoint is one point of a per-date series feeding the line chart.
type SeriesPoint struct {
	Date     time.Time `json:"date"`
	Value    int64     `json:"value"`
	NewCases int64     `json:"new_cases"`
}

// RegionTotal is one region's cumulative counts on a single date, feeding the
// bar and scatter panels.
type RegionTotal struct {
	Region    string `json:"region"`
	Confirmed int64  `json:"confirmed"`
	Deaths    int64  `json:"deaths"`
}

// Breakdown splits one date's confirmed total into its disposition parts for
// the pie panel.
type Breakdown struct {
	Date      time.Time `json:"date"`
	Active    int64     `json:"active"`
	Recovered int64     `json:"recovered"`
	Deaths    int64     `json:"deaths"`
}

// Day truncates t to a UTC calendar date so observations from different
// sources compare equal on the same day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
