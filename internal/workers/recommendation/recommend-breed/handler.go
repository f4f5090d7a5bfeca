package recommendbreed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/common/camunda"
	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/database"
	"dogmatch-workers/internal/common/errors"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/metrics"
	"dogmatch-workers/internal/common/observability"
	"dogmatch-workers/internal/predictor"
	"dogmatch-workers/internal/scoring"
	"dogmatch-workers/internal/workers/recommendation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	TaskType       = "recommend-breed"
	resultCacheKey = "dogmatch:recommendation:"
)

// Fallback reasons.
const (
	fallbackUnavailable = "unavailable"
	fallbackUnresolved  = "unresolved"
)

type Handler struct {
	config    *Config
	logger    logger.Logger
	runner    *camunda.JobRunner
	catalog   catalog.Fetcher
	predictor Predictor
	cache     ResultCache
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Logger        logger.Logger
	Observability *observability.Observability
	Catalog       catalog.Fetcher
	// Predictor and Cache are optional.
	Predictor Predictor
	Cache     ResultCache
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("%s: catalog is required", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:    cfg,
		logger:    log,
		runner:    camunda.NewJobRunner(TaskType, cfg.Timeout, log, opts.Observability),
		catalog:   opts.Catalog,
		predictor: opts.Predictor,
		cache:     opts.Cache,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context) (interface{}, error) {
		var input Input
		if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
			return nil, err
		}
		return h.Execute(ctx, &input)
	})
}

// Execute produces a recommendation for input.Preferences. The catalog and
// the remote prediction are fetched concurrently; without a usable
// prediction the catalog is scored locally. A cached result is served only
// while the catalog it was computed from is unchanged.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	requestID := uuid.New().String()
	prefs := input.Preferences
	prefsErr := scoring.ValidatePreferences(prefs)

	key := cacheKey(prefs)
	var cached *cachedResult
	if prefsErr == nil && !input.SkipCache {
		cached = h.lookup(ctx, key)
	}

	var (
		breeds     []scoring.Breed
		prediction *predictor.RecommendResponse
		predictErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		breeds, err = h.catalog.FetchBreeds(gctx)
		return err
	})
	if prefsErr == nil && cached == nil && h.predictor != nil {
		g.Go(func() error {
			// Prediction failures never fail the group; they select the fallback.
			prediction, predictErr = h.predictor.Recommend(gctx, prefs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if prefsErr != nil {
			return nil, errors.FromScoringError(prefsErr)
		}
		return nil, recommendation.CatalogError(err)
	}

	if len(breeds) == 0 {
		return nil, errors.FromScoringError(scoring.ErrEmptyCatalog)
	}
	if prefsErr != nil {
		return nil, errors.FromScoringError(prefsErr)
	}

	version := catalogVersion(breeds)
	if cached != nil {
		if cached.CatalogVersion == version {
			h.logger.Info("Recommendation served from cache", map[string]interface{}{
				"requestId": requestID,
				"breed":     cached.Recommendation.BestMatch.Name,
			})
			return &Output{
				RequestID:      requestID,
				Recommendation: cached.Recommendation,
				Source:         cached.Source,
				CacheHit:       true,
				GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
			}, nil
		}
		h.logger.Debug("Cached recommendation predates the catalog", map[string]interface{}{"requestId": requestID})
		if h.predictor != nil {
			prediction, predictErr = h.predictor.Recommend(ctx, prefs)
		}
	}

	result, source, err := h.resolve(ctx, prefs, breeds, prediction, predictErr)
	if err != nil {
		return nil, err
	}

	metrics.RecommendationsTotal.WithLabelValues(source).Inc()
	metrics.CompatibilityScore.Observe(float64(result.CompatibilityScore))

	if h.cache != nil && h.config.ResultCacheTTL > 0 {
		entry := cachedResult{Recommendation: result, Source: source, CatalogVersion: version}
		if err := h.cache.SetJSON(ctx, key, entry, h.config.ResultCacheTTL); err != nil {
			h.logger.Warn("Failed to cache recommendation", map[string]interface{}{"error": err.Error()})
		}
	}

	h.logger.Info("Recommendation produced", map[string]interface{}{
		"requestId":          requestID,
		"userId":             input.UserID,
		"breed":              result.BestMatch.Name,
		"compatibilityScore": result.CompatibilityScore,
		"source":             source,
		"catalogSize":        len(breeds),
	})

	return &Output{
		RequestID:      requestID,
		Recommendation: result,
		Source:         source,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// resolve prefers the remote prediction and falls back to local scoring
// when it is missing, failed or names a breed the catalog lacks.
func (h *Handler) resolve(ctx context.Context, prefs scoring.UserPreferences, breeds []scoring.Breed,
	prediction *predictor.RecommendResponse, predictErr error) (*scoring.RecommendationResult, string, error) {

	if h.predictor != nil {
		reason := fallbackUnavailable
		if predictErr == nil {
			result, err := predictor.Resolve(prediction, prefs, breeds)
			if err == nil {
				return result, metrics.SourceRemote, nil
			}
			predictErr, reason = err, fallbackUnresolved
		}

		h.logger.Warn("Remote prediction not usable", map[string]interface{}{
			"reason": reason,
			"error":  predictErr.Error(),
		})
		if !h.config.FallbackToLocal {
			return nil, "", predictorError(ctx, predictErr)
		}
		metrics.PredictorFallbacks.WithLabelValues(reason).Inc()
	}

	result, err := scoring.Recommend(prefs, breeds)
	if err != nil {
		return nil, "", errors.FromScoringError(err)
	}
	return result, metrics.SourceLocal, nil
}

func (h *Handler) lookup(ctx context.Context, key string) *cachedResult {
	if h.cache == nil {
		return nil
	}
	var cached cachedResult
	err := h.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		if !stderrors.Is(err, database.ErrCacheMiss) {
			h.logger.Warn("Result cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}
	if cached.Recommendation == nil || cached.CatalogVersion == "" {
		return nil
	}
	return &cached
}

func predictorError(ctx context.Context, err error) error {
	switch {
	case stderrors.Is(err, predictor.ErrBreedNotResolved):
		return errors.NewBreedNotFoundError(err.Error())
	case stderrors.Is(err, context.DeadlineExceeded), ctx.Err() != nil:
		return errors.NewPredictorTimeoutError()
	default:
		return errors.NewPredictorUnavailableError(err)
	}
}

// cacheKey is stable for equal preferences since struct fields marshal in
// declaration order.
func cacheKey(p scoring.UserPreferences) string {
	raw, _ := json.Marshal(p)
	sum := sha256.Sum256(raw)
	return resultCacheKey + hex.EncodeToString(sum[:])
}

// catalogVersion fingerprints the breeds a result was computed from.
func catalogVersion(breeds []scoring.Breed) string {
	raw, _ := json.Marshal(breeds)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}
