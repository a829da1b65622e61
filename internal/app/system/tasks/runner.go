// Package tasks runs the site's background work: periodic jobs on a ticker
// and long-lived workers such as the cache file watcher.
package tasks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Job is a scheduled background task. A job with a non-positive Interval
// runs once at start.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Worker is a long-lived task that runs until its context is cancelled.
type Worker struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner manages background job and worker execution.
type Runner struct {
	logger  *zap.Logger
	jobs    []Job
	workers []Worker
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	running atomic.Int32
	active  sync.Map // name -> struct{}
}

// New creates a new task runner.
func New(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// Register adds a job to the runner.
func (r *Runner) Register(job Job) {
	r.jobs = append(r.jobs, job)
}

// Spawn adds a worker to the runner.
func (r *Runner) Spawn(w Worker) {
	r.workers = append(r.workers, w)
}

// Start begins executing all registered jobs and workers.
func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for _, job := range r.jobs {
		r.wg.Add(1)
		go r.runJob(ctx, job)
	}
	for _, w := range r.workers {
		r.wg.Add(1)
		go r.runWorker(ctx, w)
	}

	r.logger.Info("background task runner started",
		zap.Int("job_count", len(r.jobs)),
		zap.Int("worker_count", len(r.workers)))
}

// Stop cancels all jobs and workers and waits for them within ctx's deadline.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("background task runner stopped gracefully")
		return nil
	case <-ctx.Done():
		var still []string
		r.active.Range(func(key, _ any) bool {
			still = append(still, key.(string))
			return true
		})
		r.logger.Warn("background task runner shutdown timed out",
			zap.Strings("still_running", still),
			zap.Int32("running_count", r.running.Load()))
		return ctx.Err()
	}
}

func (r *Runner) runJob(ctx context.Context, job Job) {
	defer r.wg.Done()

	r.execute(ctx, job.Name, job.Run)
	if job.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("job stopped", zap.String("job", job.Name))
			return
		case <-ticker.C:
			r.execute(ctx, job.Name, job.Run)
		}
	}
}

func (r *Runner) runWorker(ctx context.Context, w Worker) {
	defer r.wg.Done()
	r.execute(ctx, w.Name, w.Run)
}

// execute runs fn under name and logs the result.
func (r *Runner) execute(ctx context.Context, name string, fn func(context.Context) error) {
	r.running.Add(1)
	r.active.Store(name, struct{}{})
	defer func() {
		r.running.Add(-1)
		r.active.Delete(name)
	}()

	start := time.Now()
	r.logger.Debug("task starting", zap.String("task", name))

	if err := fn(ctx); err != nil {
		if ctx.Err() != nil {
			r.logger.Debug("task cancelled during shutdown",
				zap.String("task", name),
				zap.Duration("duration", time.Since(start)))
			return
		}
		r.logger.Error("task failed",
			zap.String("task", name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}

	r.logger.Debug("task completed",
		zap.String("task", name),
		zap.Duration("duration", time.Since(start)))
}

// RunOnce executes the named job immediately.
func (r *Runner) RunOnce(ctx context.Context, name string) error {
	for _, job := range r.jobs {
		if job.Name == name {
			return job.Run(ctx)
		}
	}
	return nil
}
