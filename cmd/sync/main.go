package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/asset-sync/internal/api/http"
	"github.com/spec-kit/asset-sync/internal/api/http/handlers"
	"github.com/spec-kit/asset-sync/internal/config"
	"github.com/spec-kit/asset-sync/internal/events"
	"github.com/spec-kit/asset-sync/internal/observability"
	"github.com/spec-kit/asset-sync/internal/persistence"
	"github.com/spec-kit/asset-sync/internal/repository"
	"github.com/spec-kit/asset-sync/internal/source"
	"github.com/spec-kit/asset-sync/internal/syncer"
)

// runLockTTL bounds how long a crashed run can keep others out.
const runLockTTL = 2 * time.Hour

func main() {
	entity := flag.String("entity", "", "sync a single entity instead of the full pipeline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	lock := persistence.NewRunLock(cfg.Redis, logger)
	defer lock.Close()
	if err := lock.Acquire(ctx, uuid.NewString(), runLockTTL); err != nil {
		if errors.Is(err, persistence.ErrLockHeld) {
			logger.Fatal("another sync run is in progress")
		}
		logger.Fatal("failed to acquire run lock", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	client := source.NewClient(cfg.Source, logger, metrics)

	pool := pg.PoolHandle()
	repos := syncer.Repos{
		Employees:  repository.NewEmployeeRepository(pool),
		Addresses:  repository.NewAddressRepository(pool),
		Countries:  repository.NewCountryRepository(pool),
		Warehouses: repository.NewWarehouseRepository(pool),
		Offices:    repository.NewOfficeRepository(pool),
		Assets:     repository.NewAssetRepository(pool),
		Orders:     repository.NewOrderRepository(pool),
		Products:   repository.NewProductRepository(pool),
		Offboards:  repository.NewOffboardRepository(pool),
	}

	dispatcher := events.NewInMemoryDispatcher()
	runner := syncer.NewRunner(client, repos, metrics, logger)
	orchestrator := syncer.NewOrchestrator(runner, dispatcher, metrics, logger)

	var app *fiber.App
	if cfg.App.StatusPort != "" {
		app = fiber.New(fiber.Config{DisableStartupMessage: true})
		httptransport.RegisterMiddlewares(app, logger)
		httptransport.RegisterRoutes(app, httptransport.RouteConfig{
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg),
			Status: handlers.NewStatusHandler(orchestrator, metrics),
		})
		go func() {
			if err := app.Listen(":" + cfg.App.StatusPort); err != nil {
				logger.Error("status server listen", zap.Error(err))
			}
		}()
	}

	var runErr error
	if *entity != "" {
		name := strings.ToLower(*entity)
		logger.Info("starting single-entity sync", zap.String("entity", name))
		runErr = orchestrator.RunEntity(ctx, name)
	} else {
		logger.Info("starting full sync",
			zap.Strings("entities", orchestrator.Entities()))
		runErr = orchestrator.Run(ctx)
	}

	lock.Release(context.Background())
	if app != nil {
		_ = app.Shutdown()
	}
	if runErr != nil {
		logger.Error("sync run failed", zap.Error(runErr))
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}
}
