// cmd/worker-manager/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dogmatch-workers/internal/common/camunda"
	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/health"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/observability"
	"dogmatch-workers/pkg/registry"

	"go.uber.org/zap"
)

func main() {
	boot := logger.New("info", "console")
	defer boot.Sync()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal("config load failed", zap.Error(err))
	}

	log := logger.NewFromOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	if err := run(cfg, log); err != nil {
		log.Error("worker manager failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	reg, err := registry.LoadRegistry(registry.DefaultPath)
	if err != nil {
		log.Warn("activity registry unavailable, using config only", map[string]interface{}{"error": err.Error()})
	}

	zeebe, err := connectZeebe(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer zeebe.Close()

	deps, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	if fetcher, err := catalogFetcher(cfg, deps, log); err == nil {
		if _, err := deps.reportPredictor(ctx, fetcher, log); err != nil {
			log.Warn("predictor model info unavailable", map[string]interface{}{"error": err.Error()})
		}
	}

	registrations, err := buildRegistrations(cfg, reg, deps, log, obs)
	if err != nil {
		return err
	}

	pool := camunda.NewWorkerPool(zeebe.GetClient(), log)
	started := 0
	for _, r := range registrations {
		ok, err := pool.Start(r)
		if err != nil {
			pool.Stop()
			return err
		}
		if ok {
			started++
		}
	}
	log.Info("workers registered", map[string]interface{}{
		"started":   started,
		"available": len(registrations),
		"taskTypes": pool.TaskTypes(),
	})

	srv := health.NewServer(cfg.App.Version, config.GetDuration(cfg.Server.ReadinessTimeout), log)
	srv.AddCheck("zeebe", zeebe.HealthCheck)
	deps.AddChecks(srv)

	serveErr := srv.ListenAndServe(ctx, cfg.Server.Address)

	log.Info("shutdown signal received, stopping workers", nil)
	pool.Stop()
	log.Info("worker manager stopped", nil)
	return serveErr
}

func connectZeebe(ctx context.Context, cfg *config.Config, log logger.Logger) (*camunda.Client, error) {
	var client *camunda.Client
	err := retry(ctx, log, "Zeebe client initialization", 10, func(context.Context) error {
		var err error
		client, err = camunda.NewClientWithConfig(camunda.ConfigFromApp(cfg.Camunda))
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info("Zeebe client connected", map[string]interface{}{"address": cfg.Camunda.BrokerAddress})
	return client, nil
}
