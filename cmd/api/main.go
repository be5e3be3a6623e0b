package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/caffeineveins/api"
	"github.com/angelmondragon/caffeineveins/api/routes"
	"github.com/angelmondragon/caffeineveins/internal/cron"
	"github.com/angelmondragon/caffeineveins/internal/persistence"
	"github.com/angelmondragon/caffeineveins/internal/shop"
	"github.com/angelmondragon/caffeineveins/pkg/config"
	"github.com/angelmondragon/caffeineveins/pkg/instance"
	"github.com/angelmondragon/caffeineveins/pkg/kvstore"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
	"github.com/angelmondragon/caffeineveins/pkg/metrics"
)

const serviceName = "caffeineveins"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.NewStoreMetrics(registry)
	jobMetrics := metrics.NewJobMetrics(registry)

	store, err := kvstore.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open storage", err)
		os.Exit(1)
	}

	gateway, err := persistence.NewGateway(store, logg, storeMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create persistence gateway", err)
		_ = store.Close()
		os.Exit(1)
	}

	coffeeShop, err := shop.New(shop.Params{Gateway: gateway, Logger: logg, Metrics: storeMetrics})
	if err != nil {
		logg.Error(ctx, "failed to create shop", err)
		_ = gateway.Close()
		os.Exit(1)
	}
	defer func() {
		if err := coffeeShop.Close(); err != nil {
			logg.Error(context.Background(), "error closing storage", err)
		}
	}()

	// fallback data keeps the shop usable; the cause is already logged
	if err := coffeeShop.Bootstrap(ctx); err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "bootstrap degraded")
	}

	if cfg.Housekeeping.Enabled {
		housekeeping, err := newHousekeeping(cfg, logg, store, coffeeShop, storeMetrics, jobMetrics)
		if err != nil {
			logg.Error(ctx, "failed to create housekeeping", err)
			_ = coffeeShop.Close()
			os.Exit(1)
		}
		go func() {
			_ = housekeeping.Run(ctx)
		}()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	runCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"storage":  cfg.Storage.Driver,
		"instance": instance.GetID(),
	})
	logg.Info(runCtx, "starting api server")

	handler := routes.NewRouter(cfg, logg, coffeeShop, coffeeShop, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if err := api.Serve(runCtx, addr, handler, logg); err != nil {
		logg.Error(runCtx, "api server stopped unexpectedly", err)
		stop()
		_ = coffeeShop.Close()
		os.Exit(1)
	}
	logg.Info(runCtx, "api server stopped")
}

func newHousekeeping(
	cfg *config.Config,
	logg *logger.Logger,
	store kvstore.Store,
	coffeeShop *shop.Shop,
	storeMetrics *metrics.StoreMetrics,
	jobMetrics *metrics.JobMetrics,
) (*cron.Service, error) {
	jobs := cron.NewRegistry()

	pending, err := cron.NewPendingOrdersJob(coffeeShop.Ledger(), storeMetrics)
	if err != nil {
		return nil, err
	}
	jobs.Register(pending)

	if heartbeater, ok := store.(kvstore.Heartbeater); ok {
		heartbeat, err := cron.NewLeaseHeartbeatJob(heartbeater)
		if err != nil {
			return nil, err
		}
		jobs.Register(heartbeat)
	}

	return cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: jobs,
		Metrics:  jobMetrics,
		Interval: cfg.Housekeeping.Interval,
	})
}
