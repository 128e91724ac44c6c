// Package handler is the thin HTTP layer over the dashboard service: parse
// the control values from the query string, delegate, render the panel.
package handler

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"covidboard/internal/charts"
	"covidboard/internal/dashboard"
	"covidboard/internal/dashboard/metrics"
	"covidboard/internal/dataset/models"
	"covidboard/internal/platform/middleware"
	"covidboard/internal/summary"
	dErrors "covidboard/pkg/domain-errors"
	"covidboard/pkg/platform/httputil"
	pstrings "covidboard/pkg/platform/strings"
)

//go:embed index.html.tmpl
var indexFS embed.FS

var indexTmpl = template.Must(template.ParseFS(indexFS, "index.html.tmpl"))

//go:generate mockgen -source=handler.go -destination=mocks/dashboard-mocks.go -package=mocks Service

// Service defines the interface for dashboard queries.
type Service interface {
	Meta(ctx context.Context) (dashboard.Meta, error)
	LineSeries(ctx context.Context, start, end time.Time, regions []string) ([]models.SeriesPoint, error)
	TopRegions(ctx context.Context, date time.Time, n int) ([]models.RegionTotal, time.Time, error)
	Breakdown(ctx context.Context, date time.Time) (models.Breakdown, error)
	Scatter(ctx context.Context, date time.Time) ([]models.RegionTotal, time.Time, error)
	Summarize(ctx context.Context, start, end time.Time, regions []string) (summary.Summary, error)
}

// Handler serves the dashboard page, the chart panels, and the JSON API.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a new dashboard Handler.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{service: service, logger: logger, metrics: metrics}
}

// Register registers the dashboard routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/charts/line", h.handleLine)
	r.Get("/charts/bar", h.handleBar)
	r.Get("/charts/pie", h.handlePie)
	r.Get("/charts/scatter", h.handleScatter)
	r.Get("/api/summary", h.handleSummary)
	r.Get("/api/meta", h.handleMeta)
}

// indexData feeds the page template.
type indexData struct {
	From    string
	To      string
	Dates   []string
	Regions []string
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meta, err := h.service.Meta(ctx)
	if err != nil {
		h.logError(ctx, "load meta", err)
		httputil.WriteError(w, err)
		return
	}

	data := indexData{
		From:    meta.From.Format(models.DateFormat),
		To:      meta.To.Format(models.DateFormat),
		Regions: meta.Regions,
	}
	for _, d := range meta.Dates {
		data.Dates = append(data.Dates, d.Format(models.DateFormat))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		h.logError(ctx, "render index", err)
	}
}

func (h *Handler) handleLine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end, regions, err := h.windowParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	began := time.Now()
	series, err := h.service.LineSeries(ctx, start, end, regions)
	if err != nil {
		h.logError(ctx, "line series", err)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.ConfirmedLine(series).Render(w); err != nil {
		h.logError(ctx, "render line chart", err)
		return
	}
	h.metrics.ObserveRender("line", time.Since(began))
}

func (h *Handler) handleBar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date, err := dateParam(r, "date")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	n, err := intParam(r, "n")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	began := time.Now()
	totals, resolved, err := h.service.TopRegions(ctx, date, n)
	if err != nil {
		h.logError(ctx, "top regions", err)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.TopRegionsBar(totals, resolved).Render(w); err != nil {
		h.logError(ctx, "render bar chart", err)
		return
	}
	h.metrics.ObserveRender("bar", time.Since(began))
}

func (h *Handler) handlePie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date, err := dateParam(r, "date")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	began := time.Now()
	breakdown, err := h.service.Breakdown(ctx, date)
	if err != nil {
		h.logError(ctx, "breakdown", err)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.BreakdownPie(breakdown).Render(w); err != nil {
		h.logError(ctx, "render pie chart", err)
		return
	}
	h.metrics.ObserveRender("pie", time.Since(began))
}

func (h *Handler) handleScatter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date, err := dateParam(r, "date")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	began := time.Now()
	totals, resolved, err := h.service.Scatter(ctx, date)
	if err != nil {
		h.logError(ctx, "scatter", err)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.ConfirmedDeathsScatter(totals, resolved).Render(w); err != nil {
		h.logError(ctx, "render scatter chart", err)
		return
	}
	h.metrics.ObserveRender("scatter", time.Since(began))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end, regions, err := h.windowParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	sum, err := h.service.Summarize(ctx, start, end, regions)
	if err != nil {
		h.logError(ctx, "summarize", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sum)
}

func (h *Handler) handleMeta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meta, err := h.service.Meta(ctx)
	if err != nil {
		h.logError(ctx, "load meta", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, meta)
}

func (h *Handler) windowParams(r *http.Request) (start, end time.Time, regions []string, err error) {
	if start, err = dateParam(r, "start"); err != nil {
		return
	}
	if end, err = dateParam(r, "end"); err != nil {
		return
	}
	if raw := r.URL.Query().Get("regions"); raw != "" {
		regions = pstrings.DedupeAndTrim(strings.Split(raw, ","))
	}
	return
}

func (h *Handler) logError(ctx context.Context, op string, err error) {
	h.logger.WarnContext(ctx, "dashboard request failed",
		"request_id", middleware.GetRequestID(ctx),
		"op", op,
		"error", err,
	)
}

// dateParam parses an optional YYYY-MM-DD query parameter; absent means zero.
func dateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.DateFormat, raw)
	if err != nil {
		return time.Time{}, dErrors.Newf(dErrors.CodeBadRequest, "invalid %s date %q, want YYYY-MM-DD", name, raw)
	}
	return models.Day(t), nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "invalid %s value %q", name, raw)
	}
	return n, nil
}
