package findsimilarbreeds

import (
	"context"
	"fmt"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/common/camunda"
	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/errors"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/observability"
	"dogmatch-workers/internal/scoring"
	"dogmatch-workers/internal/workers/recommendation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "find-similar-breeds"

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
	Catalog       catalog.Fetcher
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

// Execute ranks the rest of the catalog by similarity to input.BreedName.
// Limits above the configured maximum are clamped.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	breeds, err := recommendation.LoadCatalog(ctx, h.catalog)
	if err != nil {
		return nil, err
	}
	idx, err := catalog.FindByName(breeds, input.BreedName)
	if err != nil {
		return nil, errors.NewBreedNotFoundError(input.BreedName)
	}

	similar := scoring.SimilarTo(breeds, idx, h.limit(input.Limit))

	h.logger.Info("Similar breeds ranked", map[string]interface{}{
		"breed":       breeds[idx].Name,
		"count":       len(similar),
		"catalogSize": len(breeds),
	})

	return &Output{
		Breed:         breeds[idx],
		SimilarBreeds: similar,
		Count:         len(similar),
	}, nil
}

func (h *Handler) limit(requested int) int {
	switch {
	case requested <= 0:
		return h.config.DefaultLimit
	case requested > h.config.MaxLimit:
		return h.config.MaxLimit
	default:
		return requested
	}
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
