// Package worker runs texture recipes in parallel.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/MeKo-Tech/pbrtex/internal/material"
)

// Generator is the interface for texture generation.
// This matches the signature of pipeline.Generator.Generate.
type Generator interface {
	Generate(ctx context.Context, r material.Recipe) (outputs []string, err error)
}

// Task represents a single recipe to generate.
type Task struct {
	Recipe material.Recipe
}

// Name returns the recipe name of the task.
func (t Task) Name() string {
	if t.Recipe == nil {
		return ""
	}
	return t.Recipe.RecipeName()
}

// Result represents the outcome of a generation task.
type Result struct {
	Task    Task
	Outputs []string
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called with each finished result and the number of tasks
// finished so far out of total. Calls are serialized.
type ProgressFunc func(r Result, completed, total int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Generator  Generator
	OnProgress ProgressFunc
}

// Pool manages parallel texture generation.
type Pool struct {
	workers    int
	generator  Generator
	onProgress ProgressFunc
}

type indexedTask struct {
	task  Task
	index int
}

type indexedResult struct {
	result Result
	index  int
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		generator:  cfg.Generator,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns one result per task, in task order.
// Recipes are independent, so they may be processed concurrently by the
// configured number of workers. Tasks not started before ctx is cancelled
// report ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan indexedTask, len(tasks))
	resultCh := make(chan indexedResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	// The channel is buffered for every task, so feeding never blocks.
	for i, task := range tasks {
		taskCh <- indexedTask{task: task, index: i}
	}
	close(taskCh)

	results := make([]Result, len(tasks))
	done := make(chan struct{})

	go func() {
		completed := 0
		for r := range resultCh {
			results[r.index] = r.result
			completed++

			if p.onProgress != nil {
				p.onProgress(r.result, completed, len(tasks))
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)

	<-done

	return results
}

// worker processes tasks from the task channel and sends results to the result channel.
func (p *Pool) worker(ctx context.Context, tasks <-chan indexedTask, results chan<- indexedResult) {
	for it := range tasks {
		if err := ctx.Err(); err != nil {
			results <- indexedResult{index: it.index, result: Result{Task: it.task, Err: err}}
			continue
		}

		start := time.Now()
		outputs, err := p.generator.Generate(ctx, it.task.Recipe)

		results <- indexedResult{
			index: it.index,
			result: Result{
				Task:    it.task,
				Outputs: outputs,
				Err:     err,
				Elapsed: time.Since(start),
			},
		}
	}
}
