package recommendbreed

import (
	"fmt"
	"time"

	"dogmatch-workers/internal/common/config"
)

type Config struct {
	Enabled         bool
	MaxJobsActive   int
	Timeout         time.Duration
	FallbackToLocal bool
	ResultCacheTTL  time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		MaxJobsActive:   5,
		Timeout:         30 * time.Second,
		FallbackToLocal: true,
		ResultCacheTTL:  time.Hour,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.ResultCacheTTL < 0 {
		return fmt.Errorf("result_cache_ttl must not be negative")
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
	cfg.FallbackToLocal = appConfig.Recommendation.FallbackToLocal
	if appConfig.Recommendation.ResultCacheTTL > 0 {
		cfg.ResultCacheTTL = config.GetDuration(appConfig.Recommendation.ResultCacheTTL)
	}
	return cfg
}
