// Package httptransport assembles the service's single HTTP router: the
// dashboard surface, the admin surface, and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminhandler "covidboard/internal/admin/handler"
	dashhandler "covidboard/internal/dashboard/handler"
	"covidboard/internal/dataset/store"
	"covidboard/internal/platform/metrics"
	"covidboard/internal/platform/middleware"
	platformredis "covidboard/internal/platform/redis"
	"covidboard/pkg/platform/httputil"
)

// Deps carries everything the router wires together.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Dashboard *dashhandler.Handler
	Admin     *adminhandler.Handler
	Snapshots store.SnapshotStore

	// Redis is optional; nil skips it in health checks.
	Redis *platformredis.Client
}

// NewRouter wires all endpoints behind the shared middleware chain.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Latency(d.Metrics))
	r.Use(middleware.Timeout(30 * time.Second))

	d.Dashboard.Register(r)
	d.Admin.Register(r)

	r.Get("/healthz", healthHandler(d))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// healthHandler reports ready only once a snapshot is being served and the
// optional cache responds.
func healthHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if _, err := d.Snapshots.Current(ctx); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": "dataset not loaded",
			})
			return
		}
		if d.Redis != nil {
			if err := d.Redis.Health(ctx); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"reason": "cache unreachable",
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
