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

package sweep

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/ajroetker/go-sortbench/algorithm"
	"github.com/ajroetker/go-sortbench/dataset"
	"github.com/ajroetker/go-sortbench/errs"
	"github.com/ajroetker/go-sortbench/stats"
	"github.com/ajroetker/go-sortbench/trial"
)

// Point identifies one sweep cell.
type Point struct {
	Size      int
	Workers   int
	Algorithm algorithm.Algorithm
}

// String formats p for logs and errors, e.g. "size=2000 workers=2 impl=std".
func (p Point) String() string {
	return fmt.Sprintf("size=%d workers=%d impl=%v", p.Size, p.Workers, p.Algorithm)
}

// Config is the full description of a sweep. A Controller copies it at
// construction; later changes to the caller's slices have no effect.
type Config struct {
	Sizes        []int
	WorkerCounts []int
	Algorithms   []algorithm.Algorithm
	Repetitions  int

	// Policy seeds each worker's initial dataset.
	Policy dataset.Policy

	// Verify checks every sort's output.
	Verify bool

	// ContinueOnError logs a failing point and moves on instead of aborting
	// the sweep.
	ContinueOnError bool

	// SpawnPerPoint starts fresh goroutines for every point instead of
	// reusing a pool sized for the largest worker count.
	SpawnPerPoint bool

	// Confidence is the level of the median's confidence interval.
	// Zero means stats.DefaultConfidence.
	Confidence float64
}

// Default returns the sweep the harness runs when nothing is configured:
// sizes around a 32k L1 cache plus sizes past typical L2 capacity, 1 to 32
// workers, both algorithms, 23 repetitions per worker.
func Default() Config {
	return Config{
		Sizes: []int{
			2_000, 4_000, 6_000, 8_000, 10_000, 12_000,
			16_000, 32_000, 64_000, 128_000, 256_000, 512_000, 1_000_000,
		},
		WorkerCounts: []int{1, 2, 4, 8, 16, 32},
		Algorithms:   slices.Clone(algorithm.All),
		Repetitions:  trial.DefaultRepetitions,
		Policy:       dataset.Default,
		Confidence:   stats.DefaultConfidence,
	}
}

// Validate reports the first problem with c as an errs.EInvalid error.
func (c Config) Validate() error {
	const op = "sweep.Config"

	if len(c.Sizes) == 0 {
		return errs.Invalid(op, "no dataset sizes configured")
	}
	for _, s := range c.Sizes {
		if s <= 0 {
			return errs.Invalid(op, "dataset size must be positive, got %d", s)
		}
	}
	if dups := lo.FindDuplicates(c.Sizes); len(dups) > 0 {
		return errs.Invalid(op, "duplicate dataset sizes %v", dups)
	}

	if len(c.WorkerCounts) == 0 {
		return errs.Invalid(op, "no worker counts configured")
	}
	for _, w := range c.WorkerCounts {
		if w <= 0 {
			return errs.Invalid(op, "worker count must be positive, got %d", w)
		}
	}
	if dups := lo.FindDuplicates(c.WorkerCounts); len(dups) > 0 {
		return errs.Invalid(op, "duplicate worker counts %v", dups)
	}

	if len(c.Algorithms) == 0 {
		return errs.Invalid(op, "no algorithms configured")
	}
	for _, a := range c.Algorithms {
		if !a.Valid() {
			return errs.Invalid(op, "unknown algorithm %v", a)
		}
	}
	if dups := lo.FindDuplicates(c.Algorithms); len(dups) > 0 {
		return errs.Invalid(op, "duplicate algorithms %v", dups)
	}

	if c.Repetitions <= 0 {
		return errs.Invalid(op, "repetitions must be positive, got %d", c.Repetitions)
	}
	if c.Confidence != 0 && !(c.Confidence > 0 && c.Confidence < 1) {
		return errs.Invalid(op, "confidence %v not in (0, 1)", c.Confidence)
	}
	return nil
}

// Points returns every configuration point: worker counts outermost, then
// sizes, algorithms innermost.
func (c Config) Points() []Point {
	points := make([]Point, 0, len(c.WorkerCounts)*len(c.Sizes)*len(c.Algorithms))
	for _, w := range c.WorkerCounts {
		for _, s := range c.Sizes {
			for _, a := range c.Algorithms {
				points = append(points, Point{Size: s, Workers: w, Algorithm: a})
			}
		}
	}
	return points
}

// MaxWorkers returns the largest configured worker count.
func (c Config) MaxWorkers() int {
	return lo.Max(c.WorkerCounts)
}

func (c Config) confidence() float64 {
	if c.Confidence == 0 {
		return stats.DefaultConfidence
	}
	return c.Confidence
}

func (c Config) clone() Config {
	c.Sizes = slices.Clone(c.Sizes)
	c.WorkerCounts = slices.Clone(c.WorkerCounts)
	c.Algorithms = slices.Clone(c.Algorithms)
	return c
}
