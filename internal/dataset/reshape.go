// Package dataset implements the reshape-and-aggregate pipeline that turns
// raw source rows into the immutable table the dashboard reads: melt wide
// time-series columns into long rows, collapse sub-regions by summing per
// (region, date), and derive new-case counts from cumulative confirmed.
package dataset

import (
	"sort"
	"time"

	"covidboard/internal/dataset/models"
)

// WideTable is a wide-form time series: one row per (sub-)region, one value
// column per date. This is the shape the upstream time-series CSV arrives in.
type WideTable struct {
	Dates []time.Time
	Rows  []WideRow
}

// WideRow holds one region's cumulative confirmed counts, aligned with the
// parent table's Dates slice. Region repeats when the upstream splits a
// country into provinces.
type WideRow struct {
	Region string
	Values []int64
}

// Melt converts a wide table into long (region, date, confirmed) rows. Rows
// shorter than the date header are taken as far as they go; the aggregation
// steps downstream do not require rectangular input.
func Melt(w WideTable) []models.Observation {
	out := make([]models.Observation, 0, len(w.Rows)*len(w.Dates))
	for _, row := range w.Rows {
		for i, date := range w.Dates {
			if i >= len(row.Values) {
				break
			}
			out = append(out, models.Observation{
				Region:    row.Region,
				Date:      models.Day(date),
				Confirmed: row.Values[i],
			})
		}
	}
	return out
}

// SumByRegionDate collapses duplicate (region, date) rows by summing every
// count, so provinces fold into their country. The result is sorted by region
// ascending, then date ascending.
func SumByRegionDate(rows []models.Observation) []models.Observation {
	type key struct {
		region string
		date   time.Time
	}
	sums := make(map[key]models.Observation, len(rows))
	for _, r := range rows {
		k := key{r.Region, models.Day(r.Date)}
		agg := sums[k]
		agg.Region = r.Region
		agg.Date = k.date
		agg.Confirmed += r.Confirmed
		agg.Deaths += r.Deaths
		agg.Recovered += r.Recovered
		agg.Active += r.Active
		agg.NewCases += r.NewCases
		sums[k] = agg
	}
	out := make([]models.Observation, 0, len(sums))
	for _, agg := range sums {
		out = append(out, agg)
	}
	sortByRegionDate(out)
	return out
}

// DiffByRegion derives NewCases as the first difference of cumulative
// Confirmed within each region, rows ordered by date ascending. The first row
// of a region diffs to zero, and downward corrections in the source clamp to
// zero rather than going negative. Input is not mutated.
func DiffByRegion(rows []models.Observation) []models.Observation {
	out := make([]models.Observation, len(rows))
	copy(out, rows)
	sortByRegionDate(out)

	for i := range out {
		if i == 0 || out[i].Region != out[i-1].Region {
			out[i].NewCases = 0
			continue
		}
		diff := out[i].Confirmed - out[i-1].Confirmed
		if diff < 0 {
			diff = 0
		}
		out[i].NewCases = diff
	}
	return out
}

func sortByRegionDate(rows []models.Observation) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Region != rows[j].Region {
			return rows[i].Region < rows[j].Region
		}
		return rows[i].Date.Before(rows[j].Date)
	})
}
