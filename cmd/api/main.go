package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-service/internal/api/http"
	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/service"
	"github.com/spec-kit/employee-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	var nc *nats.Conn
	if cfg.UsesNATS() {
		nc, err = persistence.ConnectNATS(cfg.NATS, cfg.App.Name, logger)
		if err != nil {
			logger.Fatal("failed to connect nats", zap.Error(err))
		}
		defer nc.Drain() //nolint:errcheck
	}

	store, err := persistence.Open(ctx, *cfg, logger, persistence.Backends{NATS: nc})
	if err != nil {
		logger.Fatal("failed to open snapshot store", zap.Error(err))
	}
	defer store.Close() //nolint:errcheck

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))
	if cfg.NATS.PublishEvents {
		events.NewNATSPublisher(nc, cfg.NATS.EventSubject, logger).Register(dispatcher)
	}

	repo := repository.NewDepartmentRepository(store, repository.OptionsFromConfig(cfg.Snapshot), logger, metrics)
	employeeService := service.NewEmployeeService(repo, dispatcher, logger, service.OptionsFromConfig(*cfg))

	var workers sync.WaitGroup
	if cfg.Snapshot.Autosave {
		autosave := worker.NewAutosaveWorker(dispatcher, employeeService, logger, cfg.App.RequestTimeout())
		workers.Add(1)
		go func() {
			defer workers.Done()
			autosave.Run(ctx)
		}()
	}

	if err := employeeService.Load(ctx); err != nil {
		logger.Fatal("failed to load departments", zap.Error(err))
	}

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{store.Driver(): store}),
		Employees:   handlers.NewEmployeesHandler(employeeService),
		Departments: handlers.NewDepartmentsHandler(employeeService),
		Snapshot:    handlers.NewSnapshotHandler(employeeService),
		Metrics:     metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	workers.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
