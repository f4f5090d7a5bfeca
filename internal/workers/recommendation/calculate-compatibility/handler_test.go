package calculatecompatibility

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/common/camunda/camundatest"
	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/errors"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mocks
// ==========================

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchBreeds(ctx context.Context) ([]scoring.Breed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scoring.Breed), args.Error(1)
}

// ==========================
// Test Helpers
// ==========================

func validPrefs() scoring.UserPreferences {
	return scoring.UserPreferences{
		Size:               scoring.SizeSmall,
		ExerciseHours:      1,
		GoodWithChildren:   true,
		Intelligence:       6,
		TrainingDifficulty: 5,
		Shedding:           scoring.SheddingModerate,
		HealthRisk:         scoring.HealthRiskLow,
		BreedGroup:         scoring.GroupHound,
		Friendliness:       9,
	}
}

func createValidConfig() *Config {
	return &Config{Enabled: true, MaxJobsActive: 10, Timeout: 5 * time.Second}
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
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr string
	}{
		{
			name: "defaults",
			opts: HandlerOptions{Catalog: catalog.NewStaticFetcher(catalog.FixtureBreeds())},
		},
		{
			name:    "missing catalog",
			opts:    HandlerOptions{CustomConfig: createValidConfig()},
			wantErr: "catalog is required",
		},
		{
			name: "invalid timeout",
			opts: HandlerOptions{
				CustomConfig: &Config{Enabled: true, MaxJobsActive: 1},
				Catalog:      catalog.NewStaticFetcher(nil),
			},
			wantErr: "timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandler(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TaskType, h.GetTaskType())
			assert.True(t, h.IsEnabled())
		})
	}
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	app := &config.Config{Workers: map[string]config.WorkerConfig{
		TaskType: {Enabled: false, MaxJobsActive: 3, Timeout: 2000},
	}}
	cfg := createConfigFromAppConfig(app, nil)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.MaxJobsActive)
	assert.Equal(t, 2*time.Second, cfg.Timeout)

	assert.Equal(t, DefaultConfig(), createConfigFromAppConfig(nil, nil))
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_ByName(t *testing.T) {
	breeds := catalog.FixtureBreeds()
	h := newHandler(t, catalog.NewStaticFetcher(breeds))

	out, err := h.Execute(context.Background(), &Input{Preferences: validPrefs(), BreedName: "  beagle "})
	require.NoError(t, err)

	assert.Equal(t, "Beagle", out.Breed.Name)
	assert.Equal(t, scoring.ComputeCompatibility(validPrefs(), breeds[5]), out.CompatibilityScore)
	assert.Equal(t, scoring.GenerateMatchReasons(validPrefs(), breeds[5]), out.MatchReasons)
	assert.NotEmpty(t, out.ScoredAt)
}

func TestExecute_InlineBreedSkipsCatalog(t *testing.T) {
	fetcher := new(MockFetcher)
	h := newHandler(t, fetcher)

	breed := catalog.FixtureBreeds()[5]
	breed.Name = "Custom Hound"
	out, err := h.Execute(context.Background(), &Input{Preferences: validPrefs(), Breed: &breed, BreedName: "Poodle"})
	require.NoError(t, err)

	assert.Equal(t, "Custom Hound", out.Breed.Name)
	fetcher.AssertNotCalled(t, "FetchBreeds", mock.Anything)
}

func TestExecute_Errors(t *testing.T) {
	badPrefs := validPrefs()
	badPrefs.Intelligence = 11
	badBreed := catalog.FixtureBreeds()[0]
	badBreed.Friendliness = 0

	tests := []struct {
		name    string
		input   *Input
		breeds  []scoring.Breed
		fetchEr error
		code    errors.ErrorCode
	}{
		{name: "no breed given", input: &Input{Preferences: validPrefs()}, code: errors.ErrCodeInputValidationFailed},
		{name: "invalid inline breed", input: &Input{Preferences: validPrefs(), Breed: &badBreed}, code: errors.ErrCodeInputValidationFailed},
		{name: "unknown breed", input: &Input{Preferences: validPrefs(), BreedName: "Dingo"}, breeds: catalog.FixtureBreeds(), code: errors.ErrCodeBreedNotFound},
		{name: "empty catalog", input: &Input{Preferences: validPrefs(), BreedName: "Beagle"}, breeds: []scoring.Breed{}, code: errors.ErrCodeEmptyCatalog},
		{name: "catalog down", input: &Input{Preferences: validPrefs(), BreedName: "Beagle"}, fetchEr: stderrors.New("connection refused"), code: errors.ErrCodeCatalogUnavailable},
		{name: "catalog timeout", input: &Input{Preferences: validPrefs(), BreedName: "Beagle"}, fetchEr: context.DeadlineExceeded, code: errors.ErrCodeQueryTimeout},
		{name: "invalid preferences", input: &Input{Preferences: badPrefs, BreedName: "Beagle"}, breeds: catalog.FixtureBreeds(), code: errors.ErrCodeInvalidPreferences},
		{name: "invalid preferences while catalog down", input: &Input{Preferences: badPrefs, BreedName: "Beagle"}, fetchEr: stderrors.New("connection refused"), code: errors.ErrCodeInvalidPreferences},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(MockFetcher)
			if tt.fetchEr != nil {
				fetcher.On("FetchBreeds", mock.Anything).Return(nil, tt.fetchEr)
			} else {
				fetcher.On("FetchBreeds", mock.Anything).Return(tt.breeds, nil)
			}
			h := newHandler(t, fetcher)

			_, err := h.Execute(context.Background(), tt.input)
			requireCode(t, err, tt.code)
		})
	}
}

func TestExecute_InvalidPreferencesSkipsCatalog(t *testing.T) {
	bad := validPrefs()
	bad.Intelligence = 11
	fetcher := new(MockFetcher)
	h := newHandler(t, fetcher)

	_, err := h.Execute(context.Background(), &Input{Preferences: bad, BreedName: "Beagle"})
	requireCode(t, err, errors.ErrCodeInvalidPreferences)
	se, _ := errors.AsStandardError(err)
	assert.False(t, se.Retryable)
	fetcher.AssertNotCalled(t, "FetchBreeds", mock.Anything)
}

// ==========================
// Job Lifecycle Tests
// ==========================

func TestHandle(t *testing.T) {
	h := newHandler(t, catalog.NewStaticFetcher(catalog.FixtureBreeds()))

	t.Run("completes", func(t *testing.T) {
		client := camundatest.NewJobClient()
		h.Handle(client, camundatest.NewJob(1, TaskType, 3, map[string]interface{}{
			"preferences": validPrefs(),
			"breedName":   "Beagle",
		}))

		require.Len(t, client.Completed(), 1)
		vars, err := client.CompletedVariables(0)
		require.NoError(t, err)
		assert.Contains(t, vars, "compatibilityScore")
		assert.Contains(t, vars, "matchReasons")
	})

	t.Run("throws for unknown breed", func(t *testing.T) {
		client := camundatest.NewJobClient()
		h.Handle(client, camundatest.NewJob(2, TaskType, 3, map[string]interface{}{
			"preferences": validPrefs(),
			"breedName":   "Dingo",
		}))

		require.Len(t, client.Thrown(), 1)
		assert.Equal(t, "BREED_NOT_FOUND", client.Thrown()[0].ErrorCode)
	})
}
