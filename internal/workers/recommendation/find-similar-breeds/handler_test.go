package findsimilarbreeds

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/common/camunda"
	"dogmatch-workers/internal/common/camunda/camundatest"
	"dogmatch-workers/internal/common/errors"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFetcher struct{ err error }

func (f failingFetcher) FetchBreeds(context.Context) ([]scoring.Breed, error) { return nil, f.err }

func createValidConfig() *Config {
	return &Config{Enabled: true, MaxJobsActive: 10, Timeout: 5 * time.Second, DefaultLimit: 5, MaxLimit: 8}
}

func newHandler(t *testing.T, fetcher catalog.Fetcher) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(),
		Logger:       logger.NewTestLogger(t),
		Catalog:      fetcher,
	})
	require.NoError(t, err)
	return h
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	se, ok := errors.AsStandardError(err)
	require.True(t, ok, "expected StandardError, got %T", err)
	assert.Equal(t, code, se.Code)
}

// ==========================
// Config Tests
// ==========================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: "timeout"},
		{name: "default above max", mutate: func(c *Config) { c.DefaultLimit = 60 }, wantErr: "default_limit"},
		{name: "zero default", mutate: func(c *Config) { c.DefaultLimit = 0 }, wantErr: "default_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_RanksCatalog(t *testing.T) {
	breeds := catalog.FixtureBreeds()
	h := newHandler(t, catalog.NewStaticFetcher(breeds))

	out, err := h.Execute(context.Background(), &Input{BreedName: "border collie"})
	require.NoError(t, err)

	assert.Equal(t, "Border Collie", out.Breed.Name)
	assert.Equal(t, scoring.SimilarTo(breeds, 2, 5), out.SimilarBreeds)
	assert.Equal(t, 5, out.Count)
	for _, s := range out.SimilarBreeds {
		assert.NotEqual(t, "Border Collie", s.Breed.Name)
	}
}

func TestExecute_Limit(t *testing.T) {
	h := newHandler(t, catalog.NewStaticFetcher(catalog.FixtureBreeds()))

	tests := []struct {
		requested int
		want      int
	}{
		{requested: 0, want: 5},
		{requested: 2, want: 2},
		{requested: 100, want: 8},
	}
	for _, tt := range tests {
		out, err := h.Execute(context.Background(), &Input{BreedName: "Beagle", Limit: tt.requested})
		require.NoError(t, err)
		assert.Len(t, out.SimilarBreeds, tt.want, "limit %d", tt.requested)
	}
}

func TestExecute_SingleBreedCatalog(t *testing.T) {
	h := newHandler(t, catalog.NewStaticFetcher(catalog.FixtureBreeds()[:1]))

	out, err := h.Execute(context.Background(), &Input{BreedName: "Golden Retriever"})
	require.NoError(t, err)
	assert.Empty(t, out.SimilarBreeds)
	assert.Equal(t, 0, out.Count)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fetcher catalog.Fetcher
		breed   string
		code    errors.ErrorCode
	}{
		{name: "unknown breed", fetcher: catalog.NewStaticFetcher(catalog.FixtureBreeds()), breed: "Dingo", code: errors.ErrCodeBreedNotFound},
		{name: "empty catalog", fetcher: catalog.NewStaticFetcher(nil), breed: "Beagle", code: errors.ErrCodeEmptyCatalog},
		{name: "catalog down", fetcher: failingFetcher{err: stderrors.New("refused")}, breed: "Beagle", code: errors.ErrCodeCatalogUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, tt.fetcher)
			_, err := h.Execute(context.Background(), &Input{BreedName: tt.breed})
			requireCode(t, err, tt.code)
		})
	}
}

// ==========================
// Job Lifecycle Tests
// ==========================

func TestDecodeInput_RejectsBadLimit(t *testing.T) {
	var input Input
	err := camunda.DecodeVariables(camundatest.NewJob(1, TaskType, 3, map[string]interface{}{
		"breedName": "Beagle",
		"limit":     0,
	}), GetInputSchema(), &input)
	requireCode(t, err, errors.ErrCodeInputValidationFailed)
}

func TestHandle_Completes(t *testing.T) {
	client := camundatest.NewJobClient()
	h := newHandler(t, catalog.NewStaticFetcher(catalog.FixtureBreeds()))

	h.Handle(client, camundatest.NewJob(3, TaskType, 3, map[string]interface{}{"breedName": "Poodle", "limit": 3}))

	require.Len(t, client.Completed(), 1)
	vars, err := client.CompletedVariables(0)
	require.NoError(t, err)
	assert.Equal(t, float64(3), vars["count"])
}
