package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/egg-gacha/internal/catalog"
	"github.com/xtding233/egg-gacha/internal/config"
	eggsgrpc "github.com/xtding233/egg-gacha/internal/grpc"
	"github.com/xtding233/egg-gacha/internal/server/handlers"
	"github.com/xtding233/egg-gacha/internal/server/router"
	"github.com/xtding233/egg-gacha/internal/service"
	"github.com/xtding233/egg-gacha/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	cat, err := loadCatalog(cfg)
	if err != nil {
		baseLogger.Fatal("failed to load species catalog", zap.Error(err))
	}
	baseLogger.Info("species catalog loaded",
		zap.Int("species", len(cat)),
		zap.Int("egg_eligible", cat.EligibleCount()),
		zap.String("config_version", cfg.Version))

	store := catalog.NewStore(cat)
	if cfg.CatalogPath != "" && cfg.ReloadInterval > 0 {
		watcher := catalog.NewFileWatcher(cfg.CatalogPath, cfg.ReloadInterval, store, logger.Named(baseLogger, "catalog.watcher"))
		watcher.Start()
		defer watcher.Stop()
	}

	eggSvc := service.NewEggService(store, cfg, logger.Named(baseLogger, "svc.eggs"))
	eggsHandler := handlers.NewEggsHandler(eggSvc, logger.Named(baseLogger, "handlers.eggs"))
	engine := router.New(eggsHandler, logger.Named(baseLogger, "router"))

	grpcSrv, err := eggsgrpc.StartGRPCServer(cfg.GRPCAddr, eggSvc, logger.Named(baseLogger, "grpc"))
	if err != nil {
		baseLogger.Fatal("failed to start grpc server", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
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
	grpcSrv.GracefulStop()
}

// loadCatalog prefers the local file and falls back to the remote mirror.
func loadCatalog(cfg config.Settings) (catalog.Catalog, error) {
	if cfg.CatalogPath != "" {
		return catalog.LoadFile(cfg.CatalogPath)
	}
	src, err := catalog.NewHTTPSource(cfg.CatalogURL, cfg.FetchTimeout)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()
	return src.Fetch(ctx)
}
