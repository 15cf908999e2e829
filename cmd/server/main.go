package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/gsc-identity/internal/adapter"
	"github.com/MKhiriev/gsc-identity/internal/clock"
	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/handler"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/metrics"
	"github.com/MKhiriev/gsc-identity/internal/server"
	"github.com/MKhiriev/gsc-identity/internal/service"
	"github.com/MKhiriev/gsc-identity/internal/store"
	"github.com/MKhiriev/gsc-identity/internal/workers"
	"github.com/MKhiriev/gsc-identity/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewLogger("gsc-identity")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, cfg.Storage, log)
	m := metrics.NewMetrics(metrics.NewRegistry())

	notifier, err := adapter.NewNotificationSender(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating notification sender")
	}

	dispatcher := workers.NewDispatcher(cfg.Workers, m, log)

	services, err := service.NewServices(storages, notifier, dispatcher, cfg.App, clock.System{}, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	sweeper := workers.NewResetTokenSweeper(services.PasswordResetService, cfg.Workers.ResetSweepInterval, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	// Workers outlive the transports so tasks queued by the last requests
	// still run; they stop once the servers have shut down.
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	workersDone := make(chan struct{})
	go func() {
		workers.NewWorkers(dispatcher, sweeper).Run(workersCtx)
		close(workersDone)
	}()

	if err = srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}

	stopWorkers()
	<-workersDone
	log.Info().Msg("workers stopped")
}
