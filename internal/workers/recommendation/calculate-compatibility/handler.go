package calculatecompatibility

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/common/camunda"
	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/errors"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/metrics"
	"dogmatch-workers/internal/common/observability"
	"dogmatch-workers/internal/scoring"
	"dogmatch-workers/internal/workers/recommendation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "calculate-compatibility"

type Handler struct {
	config  *Config
	logger  logger.Logger
	runner  *camunda.JobRunner
	catalog catalog.Fetcher
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Logger        logger.Logger
	Observability *observability.Observability
	// Catalog is only consulted for breedName lookups.
	Catalog catalog.Fetcher
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
		config:  cfg,
		logger:  log,
		runner:  camunda.NewJobRunner(TaskType, cfg.Timeout, log, opts.Observability),
		catalog: opts.Catalog,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := scoring.ValidatePreferences(input.Preferences); err != nil {
		return nil, errors.FromScoringError(err)
	}
	breed, err := h.resolveBreed(ctx, input)
	if err != nil {
		return nil, err
	}

	score := scoring.ComputeCompatibility(input.Preferences, breed)
	metrics.CompatibilityScore.Observe(float64(score))

	h.logger.Info("Compatibility calculated", map[string]interface{}{
		"breed":              breed.Name,
		"compatibilityScore": score,
	})

	return &Output{
		Breed:              breed,
		CompatibilityScore: score,
		MatchReasons:       scoring.GenerateMatchReasons(input.Preferences, breed),
		ScoredAt:           time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) resolveBreed(ctx context.Context, input *Input) (scoring.Breed, error) {
	if input.Breed != nil {
		if err := scoring.ValidateBreed(*input.Breed); err != nil {
			return scoring.Breed{}, errors.FromScoringError(err)
		}
		return *input.Breed, nil
	}

	name := strings.TrimSpace(input.BreedName)
	if name == "" {
		return scoring.Breed{}, errors.NewInputValidationFailedError("one of breed or breedName is required")
	}

	breeds, err := recommendation.LoadCatalog(ctx, h.catalog)
	if err != nil {
		return scoring.Breed{}, err
	}
	idx, err := catalog.FindByName(breeds, name)
	if err != nil {
		return scoring.Breed{}, errors.NewBreedNotFoundError(name)
	}
	return breeds[idx], nil
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
