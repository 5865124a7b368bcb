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

// Package trial runs the per-worker measurement loop: reshuffle the worker's
// private dataset, time one sort, repeat.
package trial

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/ajroetker/go-sortbench/algorithm"
	"github.com/ajroetker/go-sortbench/dataset"
	"github.com/ajroetker/go-sortbench/errs"
	"github.com/ajroetker/go-sortbench/pdqsort"
	"github.com/ajroetker/go-sortbench/stats"
)

// DefaultRepetitions is the number of timed sorts per worker.
const DefaultRepetitions = 23

// Params describes one worker's share of a configuration point.
type Params struct {
	Size        int
	Algorithm   algorithm.Algorithm
	Repetitions int

	// Worker is the worker's index, used only in logs and errors.
	Worker int

	// Policy seeds the worker's initial dataset. Reshuffles between
	// repetitions always use a fresh, non-deterministic generator.
	Policy dataset.Policy
}

// Runner executes trials. The zero value is ready to use and times with the
// system's monotonic clock.
type Runner struct {
	// Clock is read immediately before and after each sort.
	Clock clock.Clock

	Logger *zap.Logger

	// Verify checks that each sort left the dataset ascending and fails the
	// trial with errs.EWorker otherwise. Verification runs outside the timed
	// region.
	Verify bool

	// NewSorter resolves the algorithm; defaults to algorithm.New.
	NewSorter func(algorithm.Algorithm) (algorithm.Sorter, error)
}

// Run performs p.Repetitions measurements on a private dataset of p.Size
// elements and returns the per-repetition samples in order.
//
// ctx is checked between repetitions only; a sort in progress is never
// interrupted.
func (r *Runner) Run(ctx context.Context, p Params) ([]stats.Sample, error) {
	const op = "trial.Run"

	if p.Size <= 0 {
		return nil, errs.Invalid(op, "dataset size must be positive, got %d", p.Size)
	}
	if p.Repetitions <= 0 {
		return nil, errs.Invalid(op, "repetitions must be positive, got %d", p.Repetitions)
	}

	newSorter := r.NewSorter
	if newSorter == nil {
		newSorter = algorithm.New
	}
	sorter, err := newSorter(p.Algorithm)
	if err != nil {
		return nil, err
	}

	data, err := dataset.TryNew(p.Size, p.Policy)
	if err != nil {
		return nil, err
	}
	shuffler := dataset.NewShuffler(dataset.Default)
	clk := r.clock()
	log := r.logger().With(
		zap.Int("worker", p.Worker),
		zap.Int("size", p.Size),
		zap.Stringer("impl", p.Algorithm),
	)

	samples := make([]stats.Sample, 0, p.Repetitions)
	for rep := range p.Repetitions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		shuffler.Shuffle(data)

		elapsed, err := measure(clk, sorter, data)
		if err != nil {
			return nil, errs.Worker(op, err, "worker %d repetition %d", p.Worker, rep)
		}
		if r.Verify && !pdqsort.IsSorted(data) {
			return nil, errs.Worker(op, nil, "worker %d repetition %d: %v left dataset unsorted", p.Worker, rep, p.Algorithm)
		}

		sample := stats.FromDuration(elapsed)
		samples = append(samples, sample)
		log.Debug("Repetition finished", zap.Int("repetition", rep), zap.Duration("elapsed", elapsed))
	}
	return samples, nil
}

// measure times a single sort, turning a panic inside the sort into an error.
func measure(clk clock.Clock, sorter algorithm.Sorter, data []int) (elapsed time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sort panicked: %v", r)
		}
	}()

	begin := clk.Now()
	sorter.Sort(data)
	return clk.Since(begin), nil
}

func (r *Runner) clock() clock.Clock {
	if r.Clock == nil {
		return clock.New()
	}
	return r.Clock
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
