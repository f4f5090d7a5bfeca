package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
`

// ==========================
// Loading Tests
// ==========================

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "dogmatch-workers", cfg.App.Name)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "dog_breeds", cfg.Database.Elasticsearch.BreedIndex)
	assert.Equal(t, CatalogSourceFixture, cfg.Recommendation.CatalogSource)
	assert.Equal(t, uint32(5), cfg.Predictor.Breaker.FailureThreshold)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoadFromFile_WorkerDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
workers:
  recommend-breed:
    enabled: true
    max_jobs_active: 12
  find-similar-breeds:
    enabled: false
`))
	require.NoError(t, err)

	rec := GetWorkerConfig(cfg, "recommend-breed")
	assert.Equal(t, 12, rec.MaxJobsActive)
	assert.Equal(t, 30000, rec.Timeout)
	assert.Equal(t, 3, rec.MaxRetries)

	assert.False(t, IsWorkerEnabled(cfg, "find-similar-breeds"))
	assert.True(t, IsWorkerEnabled(cfg, "not-listed"))
}

func TestLoadFromFile_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_PREDICTOR_URL", "http://predictor:5000")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
predictor:
  enabled: true
  base_url: ${TEST_PREDICTOR_URL}
`))
	require.NoError(t, err)
	assert.Equal(t, "http://predictor:5000", cfg.Predictor.BaseURL)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// ==========================
// Validation Tests
// ==========================

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "database:\n  redis:\n    address: localhost:6379\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "missing redis",
			body:    "camunda:\n  broker_address: localhost:26500\n",
			wantErr: "database.redis.address",
		},
		{
			name:    "postgres catalog without host",
			body:    minimalConfig + "recommendation:\n  catalog_source: postgres\n",
			wantErr: "database.postgres.host",
		},
		{
			name:    "unknown catalog source",
			body:    minimalConfig + "recommendation:\n  catalog_source: csv\n",
			wantErr: "catalog_source",
		},
		{
			name:    "search worker without elasticsearch",
			body:    minimalConfig + "workers:\n  search-breeds:\n    enabled: true\n",
			wantErr: "elasticsearch.addresses",
		},
		{
			name:    "predictor without url",
			body:    minimalConfig + "predictor:\n  enabled: true\n",
			wantErr: "predictor.base_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DOGMATCH_API_URL", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	dsn := PostgresConfig{Host: "db", Port: 5432, User: "dog", Password: "pw", Database: "dogmatch", SSLMode: "disable"}.GetDSN()
	assert.Equal(t, "host=db port=5432 user=dog password=pw dbname=dogmatch sslmode=disable", dsn)
}
