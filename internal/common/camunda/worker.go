// internal/common/camunda/worker.go
package camunda

import (
	"fmt"
	"time"

	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// JobHandler is implemented by every worker package's Handler. Handlers
// complete, fail or throw the job themselves.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// JobWorkerSource is the part of zbc.Client the pool needs.
type JobWorkerSource interface {
	NewJobWorker() worker.JobWorkerBuilderStep1
}

// Registration binds a task type to its handler and settings.
type Registration struct {
	TaskType string
	Handler  JobHandler
	Config   config.WorkerConfig
}

// WorkerPool opens one job worker per registration and closes them together.
type WorkerPool struct {
	source  JobWorkerSource
	workers map[string]worker.JobWorker
	log     logger.Logger
}

func NewWorkerPool(source JobWorkerSource, log logger.Logger) *WorkerPool {
	return &WorkerPool{
		source:  source,
		workers: make(map[string]worker.JobWorker),
		log:     log,
	}
}

// Start opens a worker for reg. Disabled registrations are skipped and
// report false.
func (p *WorkerPool) Start(reg Registration) (bool, error) {
	if !reg.Config.Enabled {
		p.log.Info("worker disabled", map[string]interface{}{"taskType": reg.TaskType})
		return false, nil
	}
	if _, exists := p.workers[reg.TaskType]; exists {
		return false, fmt.Errorf("worker for %s already started", reg.TaskType)
	}

	jw := p.source.NewJobWorker().
		JobType(reg.TaskType).
		Handler(wrapHandler(reg.TaskType, reg.Handler, p.log)).
		MaxJobsActive(reg.Config.MaxJobsActive).
		Timeout(config.GetDuration(reg.Config.Timeout)).
		Name(reg.TaskType).
		Open()

	p.workers[reg.TaskType] = jw
	p.log.Info("worker started", map[string]interface{}{
		"taskType":      reg.TaskType,
		"maxJobsActive": reg.Config.MaxJobsActive,
		"timeout_ms":    reg.Config.Timeout,
	})
	return true, nil
}

// TaskTypes lists the running workers.
func (p *WorkerPool) TaskTypes() []string {
	out := make([]string, 0, len(p.workers))
	for tt := range p.workers {
		out = append(out, tt)
	}
	return out
}

// Stop closes all workers and waits for in-flight jobs to return.
func (p *WorkerPool) Stop() {
	for tt, jw := range p.workers {
		p.log.Info("stopping worker", map[string]interface{}{"taskType": tt})
		jw.Close()
		jw.AwaitClose()
	}
	p.workers = make(map[string]worker.JobWorker)
}

// wrapHandler tracks active jobs and keeps a panicking handler from taking
// the poller down. A panicked job is left to time out and be redelivered.
func wrapHandler(taskType string, h JobHandler, log logger.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		start := time.Now()
		defer func() {
			active.Dec()
			if r := recover(); r != nil {
				metrics.WorkerJobsFailed.WithLabelValues(taskType, "PANIC").Inc()
				log.Error("handler panicked", map[string]interface{}{
					"taskType": taskType,
					"jobKey":   job.Key,
					"panic":    fmt.Sprint(r),
					"elapsed":  time.Since(start).String(),
				})
			}
		}()
		h.Handle(client, job)
	}
}
