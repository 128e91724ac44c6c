package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidboard/internal/dataset"
	"covidboard/internal/dataset/models"
	"covidboard/internal/jwttoken"
	dErrors "covidboard/pkg/domain-errors"
	"covidboard/pkg/testutil"
)

type fakeIngestor struct {
	table *dataset.Table
	err   error
	calls int
}

func (f *fakeIngestor) Reload(_ context.Context) (*dataset.Table, error) {
	f.calls++
	return f.table, f.err
}

func newTestRouter(t *testing.T, ingestor Ingestor) (chi.Router, *jwttoken.JWTService) {
	t.Helper()
	jwtService := jwttoken.NewJWTService("test-signing-key", "covidboard")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(ingestor, logger, jwtService).Register(r)
	return r, jwtService
}

func TestReloadRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t, &fakeIngestor{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(t, http.MethodPost, "/admin/reload"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReloadRejectsWrongScope(t *testing.T) {
	ingestor := &fakeIngestor{}
	r, jwtService := newTestRouter(t, ingestor)

	token, err := jwtService.GenerateToken("viewer@example.com", "read", time.Hour)
	require.NoError(t, err)

	req := testutil.NewRequest(t, http.MethodPost, "/admin/reload")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, ingestor.calls)
}

func TestReloadSwapsSnapshot(t *testing.T) {
	ingestor := &fakeIngestor{table: dataset.NewTable([]models.Observation{
		{Region: "Italy", Date: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), Confirmed: 1694},
	})}
	r, jwtService := newTestRouter(t, ingestor)

	token, err := jwtService.GenerateToken("ops@example.com", "admin", time.Hour)
	require.NoError(t, err)

	req := testutil.NewRequest(t, http.MethodPost, "/admin/reload")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, ingestor.calls)

	var body map[string]any
	testutil.DecodeJSON(t, rec, &body)
	assert.Equal(t, float64(1), body["rows"])
	assert.Equal(t, "2020-03-01", body["from"])
}

func TestReloadFailurePropagates(t *testing.T) {
	ingestor := &fakeIngestor{err: dErrors.Wrap(errors.New("boom"), dErrors.CodeUnavailable, "fetch dataset")}
	r, jwtService := newTestRouter(t, ingestor)

	token, err := jwtService.GenerateToken("ops@example.com", "admin", time.Hour)
	require.NoError(t, err)

	req := testutil.NewRequest(t, http.MethodPost, "/admin/reload")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	testutil.AssertErrorEnvelope(t, rec, http.StatusBadGateway, "upstream_unavailable")
}
