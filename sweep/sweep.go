// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sweep drives a benchmark across every combination of dataset
// size, worker count and algorithm.
//
// For each point the Controller runs the workers, waits for all of them,
// reduces the pooled samples to a median and hands one Result to each Sink.
// Points run strictly one after another so that measurements never compete
// for CPU.
package sweep

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ajroetker/go-sortbench/errs"
	"github.com/ajroetker/go-sortbench/stats"
	"github.com/ajroetker/go-sortbench/trial"
	"github.com/ajroetker/go-sortbench/workerpool"
)

// Result is the aggregated measurement of one point.
type Result struct {
	Point

	// Measurements is the number of repetitions per worker.
	Measurements int

	// Median is the median sort time in microseconds across all workers'
	// samples.
	Median float64

	Summary stats.Summary
}

// Sink receives results as they are produced.
type Sink interface {
	Write(Result) error
	Close() error
}

// Controller runs a sweep.
type Controller struct {
	config Config
	sinks  []Sink
	runner *trial.Runner
	logger *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithSinks adds sinks that receive every Result.
func WithSinks(sinks ...Sink) Option {
	return func(c *Controller) {
		c.sinks = append(c.sinks, sinks...)
	}
}

// WithLogger sets the logger for the controller and its trial runner.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = log
	}
}

// WithRunner replaces the trial runner. The runner's Verify setting is
// overridden by Config.Verify.
func WithRunner(r *trial.Runner) Option {
	return func(c *Controller) {
		c.runner = r
	}
}

// NewController returns a Controller for config.
func NewController(config Config, opts ...Option) *Controller {
	c := &Controller{
		config: config.clone(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	runner := trial.Runner{}
	if c.runner != nil {
		runner = *c.runner
	}
	if runner.Logger == nil {
		runner.Logger = c.logger
	}
	runner.Verify = c.config.Verify
	c.runner = &runner
	return c
}

// Config returns a copy of the controller's configuration.
func (c *Controller) Config() Config {
	return c.config.clone()
}

// Run measures every point and returns the results in emission order.
//
// The configuration is validated before any measurement. A failing point
// aborts the sweep unless Config.ContinueOnError is set; the results emitted
// so far are returned alongside the error. Cancellation of ctx always aborts.
func (c *Controller) Run(ctx context.Context) ([]Result, error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	var ex workerpool.Executor = workerpool.Spawn{}
	if !c.config.SpawnPerPoint {
		pool := workerpool.New(c.config.MaxWorkers())
		defer pool.Close()
		ex = pool
	}

	points := c.config.Points()
	c.logger.Info("Starting sweep",
		zap.Int("points", len(points)),
		zap.Ints("sizes", c.config.Sizes),
		zap.Ints("workers", c.config.WorkerCounts),
		zap.Int("repetitions", c.config.Repetitions),
		zap.Stringer("policy", c.config.Policy),
	)

	var results []Result
	for _, p := range points {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := c.runPoint(ctx, ex, p)
		if err != nil {
			err = &errs.Error{Op: "sweep.Run", Msg: p.String(), Err: err}
			if c.config.ContinueOnError && !isContextErr(err) {
				c.logger.Error("Skipping failed point", zap.Stringer("point", p), zap.Error(err))
				continue
			}
			return results, err
		}

		for _, s := range c.sinks {
			if err := s.Write(res); err != nil {
				return results, &errs.Error{Op: "sweep.Run", Msg: "writing result for " + p.String(), Err: err}
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// Measure runs one point and returns the pooled samples of all its workers.
func (c *Controller) Measure(ctx context.Context, ex workerpool.Executor, p Point) ([]stats.Sample, error) {
	return workerpool.Collect(ctx, ex, p.Workers, func(ctx context.Context, worker int) ([]stats.Sample, error) {
		return c.runner.Run(ctx, trial.Params{
			Size:        p.Size,
			Algorithm:   p.Algorithm,
			Repetitions: c.config.Repetitions,
			Worker:      worker,
			Policy:      c.config.Policy,
		})
	})
}

func (c *Controller) runPoint(ctx context.Context, ex workerpool.Executor, p Point) (Result, error) {
	start := time.Now()

	pool, err := c.Measure(ctx, ex, p)
	if err != nil {
		return Result{}, err
	}
	summary, err := stats.Summarize(pool, c.config.confidence())
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Point:        p,
		Measurements: c.config.Repetitions,
		Median:       summary.Median,
		Summary:      summary,
	}
	c.logger.Info("Point finished",
		zap.Int("size", p.Size),
		zap.Int("workers", p.Workers),
		zap.Stringer("impl", p.Algorithm),
		zap.Int("samples", summary.N),
		zap.Float64("median_us", summary.Median),
		zap.Float64("lo_us", summary.Lo),
		zap.Float64("hi_us", summary.Hi),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
