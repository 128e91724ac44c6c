package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidboard/internal/dataset/models"
	"covidboard/internal/dataset/source"
	"covidboard/internal/dataset/store"
)

type fakeSource struct {
	name string
	rows []models.Observation
	err  error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Load(_ context.Context) ([]models.Observation, error) {
	return f.rows, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(s string) time.Time {
	t, err := time.Parse(models.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestReloadMergesSources(t *testing.T) {
	snapshots := store.NewInMemorySnapshotStore()
	svc := New([]source.Source{
		&fakeSource{name: "a", rows: []models.Observation{
			{Region: models.GlobalRegion, Date: day("2020-03-01"), Confirmed: 100},
		}},
		&fakeSource{name: "b", rows: []models.Observation{
			{Region: "Italy", Date: day("2020-03-01"), Confirmed: 40},
			{Region: "Spain", Date: day("2020-03-01"), Confirmed: 20},
		}},
	}, snapshots, discardLogger(), nil)

	table, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	current, err := snapshots.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, table, current)
}

func TestReloadFailingSourceKeepsOldSnapshot(t *testing.T) {
	snapshots := store.NewInMemorySnapshotStore()

	good := &fakeSource{name: "good", rows: []models.Observation{
		{Region: models.GlobalRegion, Date: day("2020-03-01"), Confirmed: 100},
	}}
	svc := New([]source.Source{good}, snapshots, discardLogger(), nil)
	first, err := svc.Reload(context.Background())
	require.NoError(t, err)

	svc = New([]source.Source{good, &fakeSource{name: "bad", err: errors.New("boom")}},
		snapshots, discardLogger(), nil)
	_, err = svc.Reload(context.Background())
	require.Error(t, err)

	current, err := snapshots.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, current, "failed reload must not clobber the served snapshot")
}

func TestReloadNoSources(t *testing.T) {
	svc := New(nil, store.NewInMemorySnapshotStore(), discardLogger(), nil)
	_, err := svc.Reload(context.Background())
	assert.Error(t, err)
}
