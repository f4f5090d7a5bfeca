package querybreedcatalog

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
	"dogmatch-workers/internal/workers/catalog/query-breed-catalog/queries"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "query-breed-catalog"

type Handler struct {
	config *Config
	store  queries.Store
	logger logger.Logger
	runner *camunda.JobRunner
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Logger        logger.Logger
	Observability *observability.Observability
	Store         queries.Store
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("%s: store is required", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config: cfg,
		store:  opts.Store,
		logger: log,
		runner: camunda.NewJobRunner(TaskType, cfg.Timeout, log, opts.Observability),
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

	queryType := QueryType(input.QueryType)
	if _, exists := queries.Registry[queryType]; !exists {
		return nil, errors.NewInvalidQueryTypeError(input.QueryType)
	}

	params := make(map[string]interface{})
	if input.BreedName != "" {
		params["breedName"] = input.BreedName
	}
	if input.BreedGroup != "" {
		params["breedGroup"] = input.BreedGroup
	}
	if input.Size != "" {
		params["size"] = input.Size
	}

	data, rowCount, execTime, err := queries.Execute(ctx, h.store, queryType, params)
	if err != nil {
		return nil, h.mapError(ctx, queryType, input, err)
	}

	h.logger.Info("Catalog query executed", map[string]interface{}{
		"queryType":       queryType,
		"rowCount":        rowCount,
		"executionTimeMs": execTime,
	})

	return &Output{
		Data:               data,
		RowCount:           rowCount,
		QueryExecutionTime: execTime,
	}, nil
}

func (h *Handler) mapError(ctx context.Context, queryType QueryType, input *Input, err error) error {
	switch {
	case stderrors.Is(err, queries.ErrMissingParam), stderrors.Is(err, queries.ErrInvalidParam):
		return errors.NewInputValidationFailedError(err.Error())
	case stderrors.Is(err, catalog.ErrBreedNotFound):
		return errors.NewBreedNotFoundError(input.BreedName)
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.NewQueryTimeoutError(string(queryType))
	default:
		return errors.NewQueryExecutionFailedError(string(queryType), err)
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
