// Package handler exposes the operational endpoints. Reloading swaps the
// dataset snapshot without restarting the process; the previous snapshot
// keeps serving until the new one is fully built.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"covidboard/internal/dataset"
	"covidboard/internal/dataset/models"
	"covidboard/internal/platform/middleware"
	"covidboard/pkg/platform/httputil"
)

// Ingestor defines the interface for dataset reloads.
type Ingestor interface {
	Reload(ctx context.Context) (*dataset.Table, error)
}

// Handler handles admin endpoints.
type Handler struct {
	ingestor     Ingestor
	logger       *slog.Logger
	jwtValidator middleware.JWTValidator
}

// New creates a new admin Handler.
func New(ingestor Ingestor, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{ingestor: ingestor, logger: logger, jwtValidator: jwtValidator}
}

// Register registers the admin routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	adminRouter := chi.NewRouter()
	adminRouter.Use(middleware.RequireAuth(h.jwtValidator, "admin", h.logger))
	adminRouter.Post("/reload", h.handleReload)

	r.Mount("/admin", adminRouter)
}

// reloadResponse reports the published snapshot.
type reloadResponse struct {
	Rows    int    `json:"rows"`
	Regions int    `json:"regions"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	h.logger.InfoContext(ctx, "admin reload requested",
		"request_id", requestID,
		"subject", middleware.GetSubject(ctx),
	)

	table, err := h.ingestor.Reload(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "admin reload failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := reloadResponse{Rows: table.Len(), Regions: len(table.Regions())}
	if from, to, ok := table.Span(); ok {
		resp.From = from.Format(models.DateFormat)
		resp.To = to.Format(models.DateFormat)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
