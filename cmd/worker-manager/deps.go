package main

import (
	"context"
	"fmt"
	"time"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/common/aws"
	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/database"
	"dogmatch-workers/internal/common/health"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/predictor"
)

const retryDelay = 2 * time.Second

// dependencies holds the backing services the workers share. Optional
// services are nil when not configured or unreachable.
type dependencies struct {
	postgres  *database.PostgresClient
	redis     *database.RedisClient
	search    *database.ElasticsearchClient
	predictor *predictor.Client
	notifier  *aws.Notifier

	breedIndex string
}

func retry(ctx context.Context, log logger.Logger, name string, attempts int, op func(context.Context) error) error {
	return database.RetryWithBackoff(ctx, op, attempts, retryDelay, log, name)
}

// connect opens every configured backing service. Postgres is required when
// it is the catalog source; everything else degrades to a warning.
func connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*dependencies, error) {
	d := &dependencies{breedIndex: cfg.Database.Elasticsearch.BreedIndex}
	requirePostgres := cfg.Recommendation.CatalogSource == config.CatalogSourcePostgres

	if cfg.Database.Postgres.Host != "" {
		err := retry(ctx, log, "PostgreSQL connection", 15, func(ctx context.Context) error {
			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := pg.Ping(ctx); err != nil {
				pg.Close()
				return err
			}
			d.postgres = pg
			return nil
		})
		if err == nil {
			err = d.postgres.Migrate(ctx)
		}
		if err != nil {
			if requirePostgres {
				d.Close()
				return nil, err
			}
			log.Warn("PostgreSQL unavailable", map[string]interface{}{"error": err.Error()})
			d.closePostgres()
		}
	} else if requirePostgres {
		return nil, fmt.Errorf("catalog source %q requires database.postgres.host", config.CatalogSourcePostgres)
	}

	if cfg.Database.Redis.Address != "" {
		err := retry(ctx, log, "Redis connection", 5, func(ctx context.Context) error {
			rc, err := database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			if err := rc.Ping(ctx); err != nil {
				rc.Close()
				return err
			}
			d.redis = rc
			return nil
		})
		if err != nil {
			log.Warn("Redis unavailable, caching disabled", map[string]interface{}{"error": err.Error()})
		}
	}

	if len(cfg.Database.Elasticsearch.Addresses) > 0 {
		err := retry(ctx, log, "Elasticsearch connection", 5, func(ctx context.Context) error {
			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := es.Ping(ctx); err != nil {
				return err
			}
			if err := es.EnsureIndex(ctx, cfg.Database.Elasticsearch.BreedIndex, database.BreedIndexMapping); err != nil {
				return err
			}
			d.search = es
			return nil
		})
		if err != nil {
			log.Warn("Elasticsearch unavailable, search-breeds disabled", map[string]interface{}{"error": err.Error()})
		}
	}

	if cfg.Predictor.Enabled {
		d.predictor = predictor.NewClient(cfg.Predictor, log)
		if err := d.predictor.Ping(ctx); err != nil {
			log.Warn("predictor not reachable at startup", map[string]interface{}{"error": err.Error()})
		}
	}

	n := cfg.Notifications
	if n.Email.Enabled || n.SMS.Enabled {
		notifier, err := aws.NewNotifier(ctx, n.AWS.Region, n.Email.FromEmail, n.SMS.SenderID)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.notifier = notifier
	}

	if err := d.seed(ctx, log); err != nil {
		log.Warn("catalog seeding failed", map[string]interface{}{"error": err.Error()})
	}
	return d, nil
}

// reportPredictor logs the remote model and warns about breeds it can
// predict that the catalog cannot resolve.
func (d *dependencies) reportPredictor(ctx context.Context, fetcher catalog.Fetcher, log logger.Logger) (*predictor.Coverage, error) {
	if d.predictor == nil {
		return nil, nil
	}
	breeds, err := fetcher.FetchBreeds(ctx)
	if err != nil {
		return nil, err
	}
	cov, err := d.predictor.Coverage(ctx, breeds)
	if err != nil {
		return nil, err
	}

	log.Info("predictor model", map[string]interface{}{
		"modelType":   cov.Model.ModelType,
		"hybrid":      cov.Model.HybridSystem,
		"features":    cov.Features,
		"modelBreeds": cov.ModelBreeds,
	})
	if len(cov.Unresolved) > 0 {
		log.Warn("predictor breeds missing from the catalog", map[string]interface{}{
			"count":  len(cov.Unresolved),
			"breeds": cov.Unresolved,
		})
	}
	return cov, nil
}

// seed fills an empty breed table with the built-in catalog and indexes
// the catalog for search.
func (d *dependencies) seed(ctx context.Context, log logger.Logger) error {
	breeds := catalog.FixtureBreeds()

	if d.postgres != nil {
		store := catalog.NewPostgresStore(d.postgres.DB)
		existing, err := store.AllBreeds(ctx)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			for _, b := range breeds {
				if err := store.UpsertBreed(ctx, b); err != nil {
					return err
				}
			}
			log.Info("breed catalog seeded", map[string]interface{}{"breeds": len(breeds)})
		} else {
			breeds = existing
		}
	}

	if d.search != nil {
		if err := d.searchIndex().IndexAll(ctx, breeds); err != nil {
			return err
		}
		log.Info("breed search index refreshed", map[string]interface{}{"breeds": len(breeds)})
	}
	return nil
}

func (d *dependencies) searchIndex() *catalog.SearchIndex {
	return catalog.NewSearchIndex(d.search.Client, d.breedIndex)
}

// AddChecks registers a readiness check per connected service.
func (d *dependencies) AddChecks(srv *health.Server) {
	if d.postgres != nil {
		srv.AddCheck("postgres", d.postgres.Ping)
	}
	if d.redis != nil {
		srv.AddCheck("redis", d.redis.Ping)
	}
	if d.search != nil {
		srv.AddCheck("elasticsearch", d.search.Ping)
	}
	if d.predictor != nil {
		srv.AddCheck("predictor", d.predictor.Ping)
	}
}

func (d *dependencies) closePostgres() {
	if d.postgres != nil {
		d.postgres.Close()
		d.postgres = nil
	}
}

func (d *dependencies) Close() {
	d.closePostgres()
	if d.redis != nil {
		d.redis.Close()
	}
}
