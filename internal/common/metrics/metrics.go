// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// source is "local" or "remote".
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dogmatch_recommendations_total",
			Help: "Total number of breed recommendations produced",
		},
		[]string{"source"},
	)

	CompatibilityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dogmatch_compatibility_score",
			Help:    "Distribution of best-match compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	PredictorFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dogmatch_predictor_fallbacks_total",
			Help: "Times the remote predictor was skipped in favour of local scoring",
		},
		[]string{"reason"},
	)

	// result is "hit", "miss" or "error".
	CatalogCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dogmatch_catalog_cache_total",
			Help: "Breed catalog cache lookups by result",
		},
		[]string{"result"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dogmatch_notifications_total",
			Help: "Recommendation notifications by channel and outcome",
		},
		[]string{"channel", "status"},
	)
)

// Recommendation sources.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)
