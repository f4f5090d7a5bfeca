package camunda

import (
	"context"
	"time"

	"dogmatch-workers/internal/common/errors"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/metrics"
	"dogmatch-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const reportTimeout = 10 * time.Second

// JobRunner carries a job through the lifecycle every worker shares: span,
// timeout, execution, then completion or the error handler, then metrics.
type JobRunner struct {
	TaskType      string
	Timeout       time.Duration
	Logger        logger.Logger
	Observability *observability.Observability
	ErrorHandler  *errors.ErrorHandler
}

func NewJobRunner(taskType string, timeout time.Duration, log logger.Logger, obs *observability.Observability) *JobRunner {
	return &JobRunner{
		TaskType:      taskType,
		Timeout:       timeout,
		Logger:        log,
		Observability: obs,
		ErrorHandler:  errors.NewErrorHandler(log),
	}
}

// Run calls exec under a fresh timeout context. A nil error completes the job
// with the returned value as variables.
func (r *JobRunner) Run(client worker.JobClient, job entities.Job, exec func(ctx context.Context) (interface{}, error)) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	ctx, span := r.Observability.StartSpan(ctx, r.TaskType,
		attribute.Int64("job.key", job.GetKey()),
		attribute.Int64("process.instance.key", job.GetProcessInstanceKey()),
		attribute.Int("job.retries", int(job.GetRetries())),
	)

	r.Logger.Info("Processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
		"retries":            job.GetRetries(),
	})

	output, err := exec(ctx)

	// Reporting must still reach the broker when exec ran out of time.
	reportCtx, cancelReport := context.WithTimeout(context.Background(), reportTimeout)
	defer cancelReport()

	status := "completed"
	if err != nil {
		status = "failed"
		stdErr := errors.Normalize(err)
		metrics.WorkerJobsFailed.WithLabelValues(r.TaskType, string(stdErr.Code)).Inc()
		r.ErrorHandler.HandleJobError(reportCtx, client, job, stdErr)
	} else if cerr := CompleteJob(reportCtx, client, job, output); cerr != nil {
		status = "failed"
		err = cerr
		r.Logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  cerr.Error(),
		})
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(r.TaskType).Inc()
		r.Logger.Info("Job completed", map[string]interface{}{
			"jobKey":     job.GetKey(),
			"durationMs": time.Since(start).Milliseconds(),
		})
	}

	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(r.TaskType).Observe(elapsed.Seconds())
	r.Observability.RecordJobProcessed(ctx, r.TaskType, status)
	r.Observability.RecordJobDuration(ctx, r.TaskType, elapsed, status)
	observability.EndSpan(span, err)
}
