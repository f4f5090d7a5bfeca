package main

import (
	"fmt"
	"time"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/common/camunda"
	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/observability"
	"dogmatch-workers/pkg/registry"

	qbc "dogmatch-workers/internal/workers/catalog/query-breed-catalog"
	sb "dogmatch-workers/internal/workers/catalog/search-breeds"
	sr "dogmatch-workers/internal/workers/communication/send-recommendation"
	cc "dogmatch-workers/internal/workers/recommendation/calculate-compatibility"
	fsb "dogmatch-workers/internal/workers/recommendation/find-similar-breeds"
	rb "dogmatch-workers/internal/workers/recommendation/recommend-breed"
)

// catalogFetcher picks the configured catalog source and puts it behind the
// Redis cache when Redis is connected.
func catalogFetcher(cfg *config.Config, d *dependencies, log logger.Logger) (catalog.Fetcher, error) {
	var f catalog.Fetcher
	switch cfg.Recommendation.CatalogSource {
	case config.CatalogSourcePostgres:
		if d.postgres == nil {
			return nil, fmt.Errorf("catalog source %q but PostgreSQL is not connected", config.CatalogSourcePostgres)
		}
		f = catalog.NewPostgresStore(d.postgres.DB)
	case config.CatalogSourceFixture:
		f = catalog.NewStaticFetcher(catalog.FixtureBreeds())
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Recommendation.CatalogSource)
	}

	if d.redis != nil && cfg.Recommendation.CatalogCacheTTL > 0 {
		f = catalog.NewCachedFetcher(f, d.redis, config.GetDuration(cfg.Recommendation.CatalogCacheTTL), log)
	}
	return f, nil
}

// workerConfig returns the config.yaml settings for taskType, or the
// registry's timeout with the broker defaults when the worker is not listed.
func workerConfig(cfg *config.Config, reg *registry.ActivityRegistry, taskType string) config.WorkerConfig {
	if wc, ok := cfg.Workers[taskType]; ok {
		return wc
	}
	wc := config.WorkerConfig{
		Enabled:       true,
		MaxJobsActive: cfg.Camunda.MaxJobsActive,
		Timeout:       cfg.Camunda.Timeout,
	}
	if reg == nil {
		return wc
	}
	if a, err := reg.FindByTaskType(taskType); err == nil {
		if a.ImplementationStatus == registry.StatusPlanned {
			wc.Enabled = false
		}
		if ms := registryTimeoutMs(a.Timeout); ms > 0 {
			wc.Timeout = ms
		}
		wc.MaxRetries = a.Retries
	}
	return wc
}

func registryTimeoutMs(s string) int {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return int(d / time.Millisecond)
}

// buildRegistrations creates a handler for every worker whose backing
// services are available. Workers whose dependencies are missing are left
// out with a warning.
func buildRegistrations(cfg *config.Config, reg *registry.ActivityRegistry, d *dependencies, log logger.Logger, obs *observability.Observability) ([]camunda.Registration, error) {
	fetcher, err := catalogFetcher(cfg, d, log)
	if err != nil {
		return nil, err
	}

	var out []camunda.Registration
	add := func(taskType string, h camunda.JobHandler, err error) error {
		if err != nil {
			return fmt.Errorf("failed to create %s handler: %w", taskType, err)
		}
		out = append(out, camunda.Registration{
			TaskType: taskType,
			Handler:  h,
			Config:   workerConfig(cfg, reg, taskType),
		})
		return nil
	}
	skip := func(taskType, missing string) {
		log.Warn("worker not registered", map[string]interface{}{"taskType": taskType, "missing": missing})
	}

	rbOpts := rb.HandlerOptions{AppConfig: cfg, Logger: log, Observability: obs, Catalog: fetcher}
	if d.predictor != nil {
		rbOpts.Predictor = d.predictor
	}
	if d.redis != nil {
		rbOpts.Cache = d.redis
	}
	recommend, err := rb.NewHandler(rbOpts)
	if err := add(rb.TaskType, recommend, err); err != nil {
		return nil, err
	}

	compat, err := cc.NewHandler(cc.HandlerOptions{AppConfig: cfg, Logger: log, Observability: obs, Catalog: fetcher})
	if err := add(cc.TaskType, compat, err); err != nil {
		return nil, err
	}

	similar, err := fsb.NewHandler(fsb.HandlerOptions{AppConfig: cfg, Logger: log, Observability: obs, Catalog: fetcher})
	if err := add(fsb.TaskType, similar, err); err != nil {
		return nil, err
	}

	if d.postgres != nil {
		store := catalog.NewPostgresStore(d.postgres.DB)
		query, err := qbc.NewHandler(qbc.HandlerOptions{AppConfig: cfg, Logger: log, Observability: obs, Store: store})
		if err := add(qbc.TaskType, query, err); err != nil {
			return nil, err
		}
	} else {
		skip(qbc.TaskType, "postgres")
	}

	if d.search != nil {
		search, err := sb.NewHandler(sb.HandlerOptions{AppConfig: cfg, Logger: log, Observability: obs, Searcher: d.searchIndex()})
		if err := add(sb.TaskType, search, err); err != nil {
			return nil, err
		}
	} else {
		skip(sb.TaskType, "elasticsearch")
	}

	if d.postgres != nil {
		srOpts := sr.HandlerOptions{
			AppConfig:     cfg,
			Logger:        log,
			Observability: obs,
			Recipients:    sr.NewPostgresRecipients(d.postgres.DB),
		}
		if d.notifier != nil {
			srOpts.Sender = d.notifier
		}
		send, err := sr.NewHandler(srOpts)
		if err := add(sr.TaskType, send, err); err != nil {
			return nil, err
		}
	} else {
		skip(sr.TaskType, "postgres")
	}

	return out, nil
}
