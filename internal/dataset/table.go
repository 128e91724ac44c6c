package dataset

import (
	"sort"
	"time"

	"covidboard/internal/dataset/models"
)

// Table is the immutable in-memory dataset the dashboard serves from. It is
// built once per ingestion; every accessor returns fresh slices so callers can
// never alias the underlying rows.
type Table struct {
	rows    []models.Observation // sorted by date asc, region asc
	dates   []time.Time          // unique, ascending
	regions []string             // unique, ascending, Global excluded
}

// NewTable copies and indexes rows. The input may arrive in any order.
// Sources can overlap on (region, date); duplicates collapse field-wise to the
// maximum, which is deterministic no matter which source loaded first.
func NewTable(rows []models.Observation) *Table {
	sorted := make([]models.Observation, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Region < sorted[j].Region
	})

	t := &Table{rows: make([]models.Observation, 0, len(sorted))}
	for _, r := range sorted {
		if n := len(t.rows); n > 0 && t.rows[n-1].Date.Equal(r.Date) && t.rows[n-1].Region == r.Region {
			prev := &t.rows[n-1]
			prev.Confirmed = max(prev.Confirmed, r.Confirmed)
			prev.Deaths = max(prev.Deaths, r.Deaths)
			prev.Recovered = max(prev.Recovered, r.Recovered)
			prev.Active = max(prev.Active, r.Active)
			prev.NewCases = max(prev.NewCases, r.NewCases)
			continue
		}
		t.rows = append(t.rows, r)
	}

	seenDate := make(map[time.Time]bool)
	seenRegion := make(map[string]bool)
	for _, r := range t.rows {
		if !seenDate[r.Date] {
			seenDate[r.Date] = true
			t.dates = append(t.dates, r.Date)
		}
		if r.Region != models.GlobalRegion && !seenRegion[r.Region] {
			seenRegion[r.Region] = true
			t.regions = append(t.regions, r.Region)
		}
	}
	sort.Strings(t.regions)
	return t
}

// Len reports the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Span returns the earliest and latest dates. ok is false for an empty table.
func (t *Table) Span() (min, max time.Time, ok bool) {
	if len(t.dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return t.dates[0], t.dates[len(t.dates)-1], true
}

// Dates returns the distinct dates in ascending order.
func (t *Table) Dates() []time.Time {
	out := make([]time.Time, len(t.dates))
	copy(out, t.dates)
	return out
}

// Regions returns the distinct region names in ascending order, excluding the
// synthetic global row.
func (t *Table) Regions() []string {
	out := make([]string, len(t.regions))
	copy(out, t.regions)
	return out
}

// Contains reports whether the table has any row on the given date.
func (t *Table) Contains(date time.Time) bool {
	d := models.Day(date)
	i := sort.Search(len(t.dates), func(i int) bool { return !t.dates[i].Before(d) })
	return i < len(t.dates) && t.dates[i].Equal(d)
}

// Range returns the rows with start <= date <= end, date-sorted. An empty
// result is valid, not an error.
func (t *Table) Range(start, end time.Time) []models.Observation {
	start, end = models.Day(start), models.Day(end)
	var out []models.Observation
	for _, r := range t.rows {
		if r.Date.Before(start) {
			continue
		}
		if r.Date.After(end) {
			break
		}
		out = append(out, r)
	}
	return out
}

// On returns the rows for exactly one date.
func (t *Table) On(date time.Time) []models.Observation {
	return t.Range(date, date)
}

// FilterRegions keeps only rows whose region is in names. Order is preserved.
func FilterRegions(rows []models.Observation, names []string) []models.Observation {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []models.Observation
	for _, r := range rows {
		if want[r.Region] {
			out = append(out, r)
		}
	}
	return out
}

// GlobalSeries sums the rows per date into one point per date. Synthetic
// global rows and per-region rows are never summed together: if global rows
// are present they win, since per-region rows would double-count them.
func GlobalSeries(rows []models.Observation) []models.SeriesPoint {
	hasGlobal := false
	for _, r := range rows {
		if r.Region == models.GlobalRegion {
			hasGlobal = true
			break
		}
	}

	sums := make(map[time.Time]*models.SeriesPoint)
	var dates []time.Time
	for _, r := range rows {
		if hasGlobal && r.Region != models.GlobalRegion {
			continue
		}
		p, ok := sums[r.Date]
		if !ok {
			p = &models.SeriesPoint{Date: r.Date}
			sums[r.Date] = p
			dates = append(dates, r.Date)
		}
		p.Value += r.Confirmed
		p.NewCases += r.NewCases
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]models.SeriesPoint, 0, len(dates))
	for _, d := range dates {
		out = append(out, *sums[d])
	}
	return out
}

// TopByConfirmed returns the n largest per-region totals, confirmed
// descending. Ties break on region name ascending so the ranking is stable
// across runs. Global rows are excluded.
func TopByConfirmed(rows []models.Observation, n int) []models.RegionTotal {
	totals := make([]models.RegionTotal, 0, len(rows))
	for _, r := range rows {
		if r.Region == models.GlobalRegion {
			continue
		}
		totals = append(totals, models.RegionTotal{
			Region:    r.Region,
			Confirmed: r.Confirmed,
			Deaths:    r.Deaths,
		})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Confirmed != totals[j].Confirmed {
			return totals[i].Confirmed > totals[j].Confirmed
		}
		return totals[i].Region < totals[j].Region
	})
	if n > 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// SumBreakdown collapses one date's rows into the active/recovered/deaths
// split for the pie panel. Global rows win over per-region rows for the same
// reason as GlobalSeries.
func SumBreakdown(rows []models.Observation) models.Breakdown {
	hasGlobal := false
	for _, r := range rows {
		if r.Region == models.GlobalRegion {
			hasGlobal = true
			break
		}
	}
	var b models.Breakdown
	for _, r := range rows {
		if hasGlobal && r.Region != models.GlobalRegion {
			continue
		}
		b.Date = r.Date
		b.Active += r.Active
		b.Recovered += r.Recovered
		b.Deaths += r.Deaths
	}
	return b
}
