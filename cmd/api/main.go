package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/maisonvela/storefront-backend/api/routes"
	"github.com/maisonvela/storefront-backend/internal/cart"
	"github.com/maisonvela/storefront-backend/internal/checkout"
	"github.com/maisonvela/storefront-backend/internal/drafts"
	"github.com/maisonvela/storefront-backend/pkg/config"
	"github.com/maisonvela/storefront-backend/pkg/kv"
	"github.com/maisonvela/storefront-backend/pkg/logger"
	"github.com/maisonvela/storefront-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	durable, err := openStorage(context.Background(), cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to open durable storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := durable.Close(); err != nil {
			logg.Error(context.Background(), "error closing durable storage", err)
		}
	}()

	promRegistry := prometheus.NewRegistry()
	stateMetrics := metrics.NewStateStoreMetrics(promRegistry)

	carts, err := cart.NewManager(durable, cfg.Storage.CartTTL, logg, stateMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	draftRegistry, err := drafts.NewRegistry(durable, logg, stateMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft registry", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(carts, checkout.NewLoggingPlacer(logg), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, carts, draftRegistry, checkoutService, promRegistry),
	}

	stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop.Done():
		logg.Info(ctx, "shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error shutting down api server", err)
		}
		if err := carts.FlushAll(); err != nil {
			logg.Error(ctx, "error flushing carts", err)
		}
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		return kv.NewRedisStore(ctx, cfg.Redis)
	case config.StorageBackendMemory:
		return kv.NewMemoryStore(), nil
	default:
		return kv.NewFileStore(cfg.Storage.FilePath)
	}
}
