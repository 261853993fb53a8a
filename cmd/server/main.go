package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/config"
	"github.com/mamadbah2/railtools/internal/repository/kv"
	"github.com/mamadbah2/railtools/internal/repository/mongodb"
	"github.com/mamadbah2/railtools/internal/repository/sheets"
	"github.com/mamadbah2/railtools/internal/repository/sqlite"
	"github.com/mamadbah2/railtools/internal/scheduler"
	"github.com/mamadbah2/railtools/internal/server/handlers"
	"github.com/mamadbah2/railtools/internal/server/router"
	calculationsvc "github.com/mamadbah2/railtools/internal/service/calculations"
	gallerysvc "github.com/mamadbah2/railtools/internal/service/gallery"
	historysvc "github.com/mamadbah2/railtools/internal/service/history"
	inventorysvc "github.com/mamadbah2/railtools/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/railtools/internal/service/reporting"
	"github.com/mamadbah2/railtools/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	store, closeStore, err := openStore(startCtx, cfg)
	if err != nil {
		baseLogger.Fatal("failed to init storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer closeStore()
	baseLogger.Info("storage ready", zap.String("backend", cfg.Storage.Backend))

	historySvc := historysvc.NewService(store, logger.Named(baseLogger, "svc.history"))
	inventorySvc := inventorysvc.NewService(store, logger.Named(baseLogger, "svc.inventory"))
	gallerySvc, err := gallerysvc.NewService(store, logger.Named(baseLogger, "svc.gallery"))
	if err != nil {
		baseLogger.Fatal("failed to init gallery", zap.Error(err))
	}

	// Unreadable persisted state is logged by each service; the session starts empty.
	_ = historySvc.Load(startCtx)
	_ = inventorySvc.Load(startCtx)
	_ = gallerySvc.Load(startCtx)

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(startCtx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Warn("google sheets not configured, scheduled export disabled")
	}

	reportingSvc := reportingsvc.NewService(sheetsRepo, historySvc, inventorySvc, logger.Named(baseLogger, "svc.reporting"))
	calculationSvc := calculationsvc.NewService(historySvc, logger.Named(baseLogger, "svc.calculations"))

	engine := router.New(router.Handlers{
		Calculations: handlers.NewCalculationHandler(calculationSvc, logger.Named(baseLogger, "handlers.calculations")),
		History:      handlers.NewHistoryHandler(historySvc, reportingSvc, logger.Named(baseLogger, "handlers.history")),
		Gallery:      handlers.NewGalleryHandler(gallerySvc, logger.Named(baseLogger, "handlers.gallery")),
		Inventory:    handlers.NewInventoryHandler(inventorySvc, logger.Named(baseLogger, "handlers.inventory")),
	}, logger.Named(baseLogger, "router"))

	if reportingSvc.SheetsEnabled() {
		sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, logger.Named(baseLogger, "scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				zap.L().Error("failed to close sqlite database", zap.Error(err))
			}
		}, nil
	case config.BackendMongoDB:
		repo, err := mongodb.NewKVRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(context.Background()); err != nil {
				zap.L().Error("failed to close mongodb connection", zap.Error(err))
			}
		}, nil
	case config.BackendMemory:
		return kv.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
