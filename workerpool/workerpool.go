// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs the concurrent workers of a configuration point
// and joins them.
//
// Two Executors are provided. Pool keeps its goroutines alive between
// calls, so a sweep pays the spawn cost once:
//
//	pool := workerpool.New(maxWorkers)
//	defer pool.Close()
//
//	for _, point := range points {
//	    samples, err := workerpool.Collect(ctx, pool, point.Workers, runTrial)
//	    ...
//	}
//
// Spawn starts fresh goroutines on every call through errgroup.
//
// Both run every unit of work on its own goroutine, block until all of them
// return, and only then hand results back, so callers may read anything the
// units wrote without further synchronization.
package workerpool

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-sortbench/errs"
)

// Executor runs fn(ctx, 0) ... fn(ctx, n-1) concurrently and waits for all
// of them to return.
type Executor interface {
	Execute(ctx context.Context, n int, fn func(ctx context.Context, worker int) error) error
}

// Pool is a persistent worker pool that can be reused across many
// configuration points. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents one worker's unit of work.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	// Spawn persistent workers
	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Execute runs fn on n distinct workers and blocks until all complete.
// n must be in [1, NumWorkers()]. The errors of all failed workers are
// combined; a panic in fn is reported as errs.EWorker.
//
// Units only run in parallel if no other Execute call is in flight on the
// same pool. On a closed pool the units run sequentially on the caller's
// goroutine.
func (p *Pool) Execute(ctx context.Context, n int, fn func(ctx context.Context, worker int) error) error {
	if n <= 0 {
		return errs.Invalid("workerpool.Execute", "worker count must be positive, got %d", n)
	}
	if n > p.numWorkers {
		return errs.Invalid("workerpool.Execute", "%d workers requested from a pool of %d", n, p.numWorkers)
	}

	results := make([]error, n)

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		for i := range n {
			results[i] = call(ctx, i, fn)
		}
		return multierr.Combine(results...)
	}

	var wg sync.WaitGroup
	wg.Add(n)

	for i := range n {
		p.workC <- workItem{
			fn: func() {
				results[i] = call(ctx, i, fn)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
	return multierr.Combine(results...)
}

// Spawn is an Executor that starts n new goroutines per call. The first
// failure cancels the context passed to the remaining workers; Execute
// still waits for every worker and returns that first error.
type Spawn struct{}

// Execute implements Executor.
func (Spawn) Execute(ctx context.Context, n int, fn func(ctx context.Context, worker int) error) error {
	if n <= 0 {
		return errs.Invalid("workerpool.Spawn", "worker count must be positive, got %d", n)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			return call(ctx, i, fn)
		})
	}
	return g.Wait()
}

// call runs fn for one worker, converting a panic into an error.
func call(ctx context.Context, worker int, fn func(ctx context.Context, worker int) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Worker("workerpool", fmt.Errorf("panic: %v", r), "worker %d", worker)
		}
	}()
	return fn(ctx, worker)
}

// Collect runs fn on n workers of ex and concatenates their results in
// worker order. On any failure no partial results are returned.
func Collect[T any](ctx context.Context, ex Executor, n int, fn func(ctx context.Context, worker int) ([]T, error)) ([]T, error) {
	if n <= 0 {
		return nil, errs.Invalid("workerpool.Collect", "worker count must be positive, got %d", n)
	}

	// Each worker writes only its own slot; the join inside Execute orders
	// those writes before the concatenation below.
	parts := make([][]T, n)
	err := ex.Execute(ctx, n, func(ctx context.Context, worker int) error {
		out, err := fn(ctx, worker)
		if err != nil {
			return err
		}
		parts[worker] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Concat(parts...), nil
}
