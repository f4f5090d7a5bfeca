package searchbreeds

import (
	"context"
	stderrors "errors"
	"fmt"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/common/camunda"
	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/errors"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/observability"
	"dogmatch-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType  = "search-breeds"
	queryType = "breed_search"
)

type Handler struct {
	config   *Config
	searcher Searcher
	logger   logger.Logger
	runner   *camunda.JobRunner
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Logger        logger.Logger
	Observability *observability.Observability
	Searcher      Searcher
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Searcher == nil {
		return nil, fmt.Errorf("%s: searcher is required", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:   cfg,
		searcher: opts.Searcher,
		logger:   log,
		runner:   camunda.NewJobRunner(TaskType, cfg.Timeout, log, opts.Observability),
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
	if input == nil {
		return nil, errors.NewInputValidationFailedError("input cannot be nil")
	}

	filters, err := parseFilters(input.Filters)
	if err != nil {
		return nil, errors.NewInputValidationFailedError(err.Error())
	}

	size := input.Pagination.Size
	if size == 0 {
		size = h.config.DefaultPageSize
	}

	result, err := h.searcher.Search(ctx, input.Query, filters, input.Pagination.From, size)
	if err != nil {
		return nil, h.mapError(ctx, err)
	}

	h.logger.Info("Breed search executed", map[string]interface{}{
		"query":     input.Query,
		"totalHits": result.TotalHits,
		"returned":  len(result.Breeds),
		"tookMs":    result.Took,
	})

	return &Output{
		Breeds:    result.Breeds,
		TotalHits: result.TotalHits,
		MaxScore:  result.MaxScore,
		Took:      result.Took,
	}, nil
}

func (h *Handler) mapError(ctx context.Context, err error) error {
	switch {
	case stderrors.Is(err, catalog.ErrIndexNotFound), stderrors.Is(err, catalog.ErrMissingIndex):
		return errors.NewIndexNotFoundError(h.searcher.Index())
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.NewSearchTimeoutError(queryType)
	default:
		return errors.NewSearchQueryFailedError(queryType, err)
	}
}

func parseFilters(in Filters) (catalog.SearchFilters, error) {
	out := catalog.SearchFilters{
		GoodWithChildren: in.GoodWithChildren,
		MaxExerciseHours: in.MaxExerciseHours,
		MinIntelligence:  in.MinIntelligence,
		SortBy:           in.SortBy,
	}

	var err error
	if in.Size != "" {
		if out.Size, err = scoring.ParseSize(in.Size); err != nil {
			return out, err
		}
	}
	if in.BreedGroup != "" {
		if out.BreedGroup, err = scoring.ParseBreedGroup(in.BreedGroup); err != nil {
			return out, err
		}
	}
	if in.Shedding != "" {
		if out.Shedding, err = scoring.ParseShedding(in.Shedding); err != nil {
			return out, err
		}
	}
	if in.HealthRisk != "" {
		if out.HealthRisk, err = scoring.ParseHealthRisk(in.HealthRisk); err != nil {
			return out, err
		}
	}
	return out, nil
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
