package main

const configTemplate = `package {{ .PackageName }}

import (
	"fmt"
	"time"

	"dogmatch-workers/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 10,
		Timeout:       {{ timeoutExpr .Timeout }},
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}
	if workerCfg, exists := appConfig.Workers[TaskType]; exists {
		cfg.Enabled = workerCfg.Enabled
		if workerCfg.MaxJobsActive > 0 {
			cfg.MaxJobsActive = workerCfg.MaxJobsActive
		}
		if workerCfg.Timeout > 0 {
			cfg.Timeout = config.GetDuration(workerCfg.Timeout)
		}
	}
	return cfg
}
`

const modelsTemplate = `package {{ .PackageName }}

type Input struct {
{{- range .Inputs }}
	{{- if .Description }}
	// {{ .Description }}
	{{- end }}
	{{ .Name }} {{ .GoType }} ` + "`json:\"{{ .JSONName }},omitempty\"`" + `
{{- end }}
}

type Output struct {
{{- range .Outputs }}
	{{ .Name }} {{ .GoType }} ` + "`json:\"{{ .JSONName }}\"`" + `
{{- end }}
}
`

const validationTemplate = `package {{ .PackageName }}

import "dogmatch-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		{{- if .Required }}
		Required: []string{ {{ quoteAll .Required }} },
		{{- end }}
		Properties: map[string]validation.Property{
		{{- range .Inputs }}
			{{ quote .JSONName }}: {
				Type: {{ quote .SchemaType }},
				{{- if .Description }}
				Description: {{ quote .Description }},
				{{- end }}
				{{- if .Enum }}
				Enum: []string{ {{ quoteAll .Enum }} },
				{{- end }}
			},
		{{- end }}
		},
	}
}
`

const handlerTemplate = `package {{ .PackageName }}

import (
	"context"
	"fmt"

	"dogmatch-workers/internal/common/camunda"
	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = {{ quote .TaskType }}

// Handler runs {{ .Name }} jobs.{{ if .Description }} {{ .Description }}.{{ end }}
{{- if .ErrorCodes }}
//
// Error codes: {{ range $i, $c := .ErrorCodes }}{{ if $i }}, {{ end }}{{ $c }}{{ end }}.
{{- end }}
type Handler struct {
	config *Config
	logger logger.Logger
	runner *camunda.JobRunner
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Logger        logger.Logger
	Observability *observability.Observability
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config: cfg,
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
	// TODO: implement {{ .TaskType }}
	return &Output{}, nil
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
`

const testTemplate = `package {{ .PackageName }}

import (
	"testing"
	"time"

	"dogmatch-workers/internal/common/camunda/camundatest"
	"dogmatch-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Config Tests
// ==========================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "default", config: DefaultConfig()},
		{name: "zero timeout", config: &Config{Enabled: true, MaxJobsActive: 1}, wantErr: true},
		{name: "zero jobs", config: &Config{Enabled: true, Timeout: time.Second}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// ==========================
// Handler Tests
// ==========================

func TestHandle_EmptyVariables(t *testing.T) {
	h, err := NewHandler(HandlerOptions{Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	assert.Equal(t, TaskType, h.GetTaskType())

	client := camundatest.NewJobClient()
	h.Handle(client, camundatest.NewJob(1, TaskType, 3, map[string]interface{}{}))
{{ if .Required }}
	require.Len(t, client.Thrown(), 1)
	assert.Equal(t, "INPUT_VALIDATION_FAILED", client.Thrown()[0].ErrorCode)
{{- else }}
	require.Len(t, client.Completed(), 1)
{{- end }}
}
`
