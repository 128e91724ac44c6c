package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	adminhandler "covidboard/internal/admin/handler"
	"covidboard/internal/dashboard"
	dashhandler "covidboard/internal/dashboard/handler"
	dashmetrics "covidboard/internal/dashboard/metrics"
	"covidboard/internal/dataset"
	"covidboard/internal/dataset/models"
	"covidboard/internal/dataset/source"
	"covidboard/internal/dataset/store"
	"covidboard/internal/ingest"
	"covidboard/internal/jwttoken"
	"covidboard/internal/platform/config"
	"covidboard/internal/platform/httpserver"
	"covidboard/internal/platform/logger"
	"covidboard/internal/platform/metrics"
	platformredis "covidboard/internal/platform/redis"
	httptransport "covidboard/internal/transport/http"
)

// main wires high-level dependencies, loads the initial snapshot, and keeps
// the server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	sources, cleanup, err := buildSources(cfg, redisClient, log)
	if err != nil {
		log.Error("dataset source setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	snapshots := store.NewInMemorySnapshotStore()
	ingestSvc := ingest.New(sources, snapshots, log, m)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	if _, err := ingestSvc.Reload(loadCtx); err != nil {
		cancelLoad()
		log.Error("initial dataset load failed", "error", err)
		os.Exit(1)
	}
	cancelLoad()

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "covidboard")
	dashService := dashboard.NewService(snapshots, log, cfg.TopN)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:    log,
		Metrics:   m,
		Dashboard: dashhandler.New(dashService, log, dashmetrics.New()),
		Admin:     adminhandler.New(ingestSvc, log, jwtService),
		Snapshots: snapshots,
		Redis:     redisClient,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting covidboard", "addr", cfg.Addr, "sources", len(sources))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildSources assembles the configured dataset sources. The returned cleanup
// closes any database handles.
func buildSources(cfg config.Server, redisClient *platformredis.Client, log *slog.Logger) ([]source.Source, func(), error) {
	asOf := time.Now()
	if cfg.SnapshotDate != "" {
		parsed, err := time.Parse(models.DateFormat, cfg.SnapshotDate)
		if err != nil {
			return nil, nil, err
		}
		asOf = parsed
	}

	var sources []source.Source
	cleanup := func() {}

	for _, spec := range cfg.Sources {
		schema, err := dataset.ParseSchema(spec.Schema)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case spec.URL != "":
			httpSrc := source.NewHTTP(spec.URL, schema, asOf, cfg.FetchTimeout)
			sources = append(sources, source.NewCachedHTTP(httpSrc, redisClient, cfg.Redis.TTL, log))
		case spec.Path != "":
			sources = append(sources, source.NewFile(spec.Path, schema, asOf))
		}
	}

	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		sources = append(sources, source.NewPostgres(db))
		cleanup = func() { _ = db.Close() }
	}

	if len(sources) == 0 {
		log.Warn("no dataset sources configured")
	}
	return sources, cleanup, nil
}
