package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/handler"
	"github.com/MKhiriev/go-job-tracker/internal/handler/http"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/metrics"
	"github.com/MKhiriev/go-job-tracker/internal/ratelimit"
	"github.com/MKhiriev/go-job-tracker/internal/server"
	"github.com/MKhiriev/go-job-tracker/internal/service"
	"github.com/MKhiriev/go-job-tracker/internal/store"
	"github.com/MKhiriev/go-job-tracker/internal/workers"
	"github.com/MKhiriev/go-job-tracker/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(build)

	log := logger.NewLogger("job-tracker-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" && build.Known() {
		cfg.App.Version = build.Version()
	}

	ctx := context.Background()

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	m := metrics.New()

	services, err := service.NewServices(storages, db, cfg.App, log, service.NewAuthMetricsService(m))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	opts := []http.Option{http.WithMetrics(m)}
	limiter, err := ratelimit.NewFromConfig(ctx, cfg.RateLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to rate limit store")
	}
	if limiter != nil {
		defer limiter.Close()
		opts = append(opts, http.WithRateLimiter(limiter))
	} else {
		log.Warn().Msg("rate limiting is disabled: no redis address configured")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := workers.NewWorkers(
		workers.NewSessionCleanup(storages.SessionRepository, m, cfg.Workers, log),
	)

	srv, err := server.NewServer(handlers, cfg.Server, log, background)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
