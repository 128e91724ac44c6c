package source

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidboard/internal/dataset"
	"covidboard/internal/dataset/models"
	dErrors "covidboard/pkg/domain-errors"
)

var asOf = time.Date(2020, 7, 27, 0, 0, 0, 0, time.UTC)

func TestFileLoadsDayWise(t *testing.T) {
	src := NewFile("../testdata/day_wise.csv", dataset.SchemaDayWise, asOf)

	rows, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, models.GlobalRegion, rows[0].Region)
	assert.Equal(t, int64(555), rows[0].Confirmed)
	assert.Equal(t, int64(99), rows[1].NewCases)
}

func TestFileStampsRegionLatestWithAsOf(t *testing.T) {
	src := NewFile("../testdata/country_wise_latest.csv", dataset.SchemaRegionLatest, asOf)

	rows, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 3)
	for _, obs := range rows {
		assert.Equal(t, asOf, obs.Date)
	}
}

func TestFileMissing(t *testing.T) {
	src := NewFile("../testdata/nope.csv", dataset.SchemaDayWise, asOf)

	_, err := src.Load(context.Background())
	assert.Error(t, err)
}

func TestHTTPRunsTimeSeriesPipeline(t *testing.T) {
	payload := "Province/State,Country/Region,Lat,Long,1/22/20,1/23/20\n" +
		"Ontario,Canada,51.25,-85.32,0,1\n" +
		"British Columbia,Canada,53.72,-127.64,1,1\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, payload)
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL, dataset.SchemaTimeSeries, asOf, 5*time.Second)
	rows, err := src.Load(context.Background())
	require.NoError(t, err)

	// Two provinces collapse into one Canada series with derived new cases.
	require.Len(t, rows, 2)
	assert.Equal(t, "Canada", rows[0].Region)
	assert.Equal(t, int64(1), rows[0].Confirmed)
	assert.Equal(t, int64(0), rows[0].NewCases)
	assert.Equal(t, int64(2), rows[1].Confirmed)
	assert.Equal(t, int64(1), rows[1].NewCases)
}

func TestHTTPUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL, dataset.SchemaDayWise, asOf, 5*time.Second)
	_, err := src.Load(context.Background())

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestCachedHTTPWithoutClientPassesThrough(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = io.WriteString(w, "Date,Confirmed\n2020-01-22,555\n")
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	src := NewCachedHTTP(NewHTTP(srv.URL, dataset.SchemaDayWise, asOf, 5*time.Second), nil, time.Hour, logger)

	for i := 0; i < 2; i++ {
		rows, err := src.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
	}
	assert.Equal(t, 2, hits)
}
