// Package dashboard implements the filter-and-recompute operations behind the
// chart panels. Every call re-reads the current snapshot and rebuilds its
// result from a fresh filtered slice; nothing is cached between requests.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"covidboard/internal/dataset"
	"covidboard/internal/dataset/models"
	"covidboard/internal/dataset/store"
	"covidboard/internal/summary"
	dErrors "covidboard/pkg/domain-errors"
)

// Meta describes the loaded dataset for the page controls.
type Meta struct {
	From    time.Time   `json:"from"`
	To      time.Time   `json:"to"`
	Dates   []time.Time `json:"dates"`
	Regions []string    `json:"regions"`
}

// Service answers the dashboard queries from the snapshot store.
type Service struct {
	snapshots store.SnapshotStore
	logger    *slog.Logger
	topN      int
}

func NewService(snapshots store.SnapshotStore, logger *slog.Logger, topN int) *Service {
	if topN <= 0 {
		topN = 10
	}
	return &Service{snapshots: snapshots, logger: logger, topN: topN}
}

// Meta returns the dataset span, dates, and region names.
func (s *Service) Meta(ctx context.Context) (Meta, error) {
	table, from, to, err := s.table(ctx)
	if err != nil {
		return Meta{}, err
	}
	return Meta{From: from, To: to, Dates: table.Dates(), Regions: table.Regions()}, nil
}

// LineSeries computes the per-date confirmed series for the window, summed
// across the selected regions (all regions when none are selected). Zero
// start or end default to the dataset span.
func (s *Service) LineSeries(ctx context.Context, start, end time.Time, regions []string) ([]models.SeriesPoint, error) {
	rows, err := s.window(ctx, start, end, regions)
	if err != nil {
		return nil, err
	}
	return dataset.GlobalSeries(rows), nil
}

// TopRegions ranks regions by confirmed count on the given date (zero means
// the latest date). The resolved date is returned for chart titling.
func (s *Service) TopRegions(ctx context.Context, date time.Time, n int) ([]models.RegionTotal, time.Time, error) {
	if n <= 0 {
		n = s.topN
	}
	table, date, err := s.resolveDate(ctx, date)
	if err != nil {
		return nil, time.Time{}, err
	}
	totals := dataset.TopByConfirmed(table.On(date), n)
	if len(totals) == 0 {
		return nil, time.Time{}, dErrors.Newf(dErrors.CodeNotFound, "no per-region data on %s", date.Format(models.DateFormat))
	}
	return totals, date, nil
}

// Breakdown splits one date's confirmed total into active, recovered, and
// deaths.
func (s *Service) Breakdown(ctx context.Context, date time.Time) (models.Breakdown, error) {
	table, date, err := s.resolveDate(ctx, date)
	if err != nil {
		return models.Breakdown{}, err
	}
	return dataset.SumBreakdown(table.On(date)), nil
}

// Scatter returns every region's (confirmed, deaths) pair on the given date.
func (s *Service) Scatter(ctx context.Context, date time.Time) ([]models.RegionTotal, time.Time, error) {
	table, date, err := s.resolveDate(ctx, date)
	if err != nil {
		return nil, time.Time{}, err
	}
	totals := dataset.TopByConfirmed(table.On(date), 0)
	if len(totals) == 0 {
		return nil, time.Time{}, dErrors.Newf(dErrors.CodeNotFound, "no per-region data on %s", date.Format(models.DateFormat))
	}
	return totals, date, nil
}

// Summarize computes the text summary for the window.
func (s *Service) Summarize(ctx context.Context, start, end time.Time, regions []string) (summary.Summary, error) {
	rows, err := s.window(ctx, start, end, regions)
	if err != nil {
		return summary.Summary{}, err
	}
	sum, ok := summary.Compute(rows)
	if !ok {
		return summary.Summary{}, dErrors.New(dErrors.CodeNotFound, "no data in the selected window")
	}
	return sum, nil
}

func (s *Service) table(ctx context.Context) (*dataset.Table, time.Time, time.Time, error) {
	table, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	from, to, ok := table.Span()
	if !ok {
		return nil, time.Time{}, time.Time{}, dErrors.New(dErrors.CodeNotFound, "dataset is empty")
	}
	return table, from, to, nil
}

// window validates and applies the date-range and region predicates.
func (s *Service) window(ctx context.Context, start, end time.Time, regions []string) ([]models.Observation, error) {
	table, from, to, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	if start.IsZero() {
		start = from
	}
	if end.IsZero() {
		end = to
	}
	if start.After(end) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "start date after end date")
	}
	if err := s.checkRegions(table, regions); err != nil {
		return nil, err
	}

	rows := table.Range(start, end)
	if len(regions) > 0 {
		rows = dataset.FilterRegions(rows, regions)
	}
	return rows, nil
}

func (s *Service) resolveDate(ctx context.Context, date time.Time) (*dataset.Table, time.Time, error) {
	table, _, to, err := s.table(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	if date.IsZero() {
		return table, to, nil
	}
	date = models.Day(date)
	if !table.Contains(date) {
		return nil, time.Time{}, dErrors.Newf(dErrors.CodeNotFound, "no data on %s", date.Format(models.DateFormat))
	}
	return table, date, nil
}

func (s *Service) checkRegions(table *dataset.Table, regions []string) error {
	known := make(map[string]bool)
	for _, r := range table.Regions() {
		known[r] = true
	}
	known[models.GlobalRegion] = true
	for _, r := range regions {
		if !known[r] {
			return dErrors.Newf(dErrors.CodeBadRequest, "unknown region %q", r)
		}
	}
	return nil
}
