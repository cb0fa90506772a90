package execution

import (
	"context"
	"sync"
	"time"

	"ptc/internal/config"
	"ptc/internal/domain"
	"ptc/internal/ui"
)

// WorkerPool manages a pool of workers for parallel test execution.
// Entries are pulled from a shared queue so fast tests do not leave
// workers idle.
type WorkerPool struct {
	config   *config.Config
	runner   *Runner
	progress *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute executes plan entries in parallel (no fail-fast).
func (wp *WorkerPool) Execute(entries []domain.PlanEntry) ([]domain.RunResult, time.Duration, error) {
	return wp.ExecuteWithOptions(entries, false)
}

// ExecuteWithOptions executes entries with optional fail-fast (stop on
// first failure).
func (wp *WorkerPool) ExecuteWithOptions(entries []domain.PlanEntry, failFast bool) ([]domain.RunResult, time.Duration, error) {
	if len(entries) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(entries)
	}
	return wp.executeFailFast(entries)
}

func (wp *WorkerPool) workerCount() int {
	if wp.config.Processors <= 0 {
		return 1
	}
	return wp.config.Processors
}

func (wp *WorkerPool) executeAll(entries []domain.PlanEntry) ([]domain.RunResult, time.Duration, error) {
	queue := make(chan domain.PlanEntry, len(entries))
	results := make(chan domain.RunResult, len(entries))
	for _, entry := range entries {
		queue <- entry
	}
	close(queue)

	var mu sync.Mutex
	var completed, passed, failed int
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= wp.workerCount(); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for entry := range queue {
				result := wp.runner.Run(entry, workerID)
				results <- result
				mu.Lock()
				completed++
				if result.Success {
					passed++
				} else {
					failed++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, passed, failed)
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.RunResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

func (wp *WorkerPool) executeFailFast(entries []domain.PlanEntry) ([]domain.RunResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := make(chan domain.PlanEntry, 1)
	results := make(chan domain.RunResult, len(entries))

	go func() {
		defer close(queue)
		for _, entry := range entries {
			select {
			case <-ctx.Done():
				return
			case queue <- entry:
			}
		}
	}()

	var mu sync.Mutex
	var completed, passed, failed int
	var seenFailure bool
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= wp.workerCount(); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for entry := range queue {
				result := wp.runner.Run(entry, workerID)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					continue
				}
				results <- result
				mu.Lock()
				completed++
				if result.Success {
					passed++
				} else {
					failed++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, passed, failed)
				}
				if !result.Success {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.RunResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}
