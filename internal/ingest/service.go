// Package ingest orchestrates dataset loading: fan out over the configured
// sources, merge their rows, build the immutable table, and swap it into the
// snapshot store. Used once at startup and again on admin reload.
package ingest

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"covidboard/internal/dataset"
	"covidboard/internal/dataset/models"
	"covidboard/internal/dataset/source"
	"covidboard/internal/dataset/store"
	"covidboard/internal/platform/metrics"
	dErrors "covidboard/pkg/domain-errors"
)

// Service loads all sources and publishes the result.
type Service struct {
	sources []source.Source
	store   store.SnapshotStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(sources []source.Source, snapshots store.SnapshotStore, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		sources: sources,
		store:   snapshots,
		logger:  logger,
		metrics: m,
	}
}

// Reload loads every source concurrently and swaps the merged table into the
// store. Any source failing fails the whole reload; the previous snapshot
// keeps serving.
func (s *Service) Reload(ctx context.Context) (*dataset.Table, error) {
	if len(s.sources) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "no dataset sources configured")
	}

	var mu sync.Mutex
	var merged []models.Observation

	g, ctx := errgroup.WithContext(ctx)
	for _, src := range s.sources {
		g.Go(func() error {
			rows, err := src.Load(ctx)
			if err != nil {
				s.metrics.IncrementSourceFailure(src.Name())
				s.logger.ErrorContext(ctx, "dataset source failed",
					"source", src.Name(),
					"error", err,
				)
				return err
			}
			s.metrics.RecordSourceRows(src.Name(), len(rows))
			s.logger.InfoContext(ctx, "dataset source loaded",
				"source", src.Name(),
				"rows", len(rows),
			)
			mu.Lock()
			merged = append(merged, rows...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := dataset.NewTable(merged)
	if err := s.store.Replace(ctx, table); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "swap snapshot")
	}
	s.metrics.RecordSnapshot(table.Len())

	min, max, ok := table.Span()
	if ok {
		s.logger.InfoContext(ctx, "snapshot published",
			"rows", table.Len(),
			"regions", len(table.Regions()),
			"from", min.Format(models.DateFormat),
			"to", max.Format(models.DateFormat),
		)
	} else {
		s.logger.WarnContext(ctx, "snapshot published empty")
	}
	return table, nil
}
