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

// Package stats reduces pools of timing samples to summary statistics.
//
// The headline statistic is the median: it resists the tail-latency
// outliers that scheduling jitter, cache effects and OS noise add to
// individual sort timings. For even-sized pools the median is the mean of
// the two middle order statistics.
package stats

import (
	"math"
	"slices"
	"time"

	"golang.org/x/perf/benchmath"

	"github.com/ajroetker/go-sortbench/errs"
)

// Sample is one sort timing in whole microseconds.
type Sample int64

// FromDuration converts d to a Sample, truncating to whole microseconds.
// Negative durations clamp to zero.
func FromDuration(d time.Duration) Sample {
	if d < 0 {
		return 0
	}
	return Sample(d / time.Microsecond)
}

// Duration returns s as a time.Duration.
func (s Sample) Duration() time.Duration {
	return time.Duration(s) * time.Microsecond
}

// DefaultConfidence is the confidence level used for Summary intervals.
const DefaultConfidence = 0.95

// Median returns the median of pool. pool is not modified.
// An empty pool fails with errs.EInvalid.
func Median(pool []Sample) (float64, error) {
	if len(pool) == 0 {
		return 0, errs.Invalid("stats.Median", "empty sample pool")
	}
	sorted := slices.Clone(pool)
	slices.Sort(sorted)
	return medianSorted(sorted), nil
}

func medianSorted(sorted []Sample) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return float64(sorted[mid])
	}
	return (float64(sorted[mid-1]) + float64(sorted[mid])) / 2
}

// Summary describes a sample pool.
type Summary struct {
	N      int
	Median float64
	Min    Sample
	Max    Sample

	// Lo and Hi bound the median at the given Confidence level, computed
	// without distributional assumptions.
	Lo, Hi     float64
	Confidence float64
}

// Summarize computes the Summary of pool. confidence must be in (0, 1).
func Summarize(pool []Sample, confidence float64) (Summary, error) {
	if len(pool) == 0 {
		return Summary{}, errs.Invalid("stats.Summarize", "empty sample pool")
	}
	if !(confidence > 0 && confidence < 1) {
		return Summary{}, errs.Invalid("stats.Summarize", "confidence %v not in (0, 1)", confidence)
	}

	sorted := slices.Clone(pool)
	slices.Sort(sorted)
	median := medianSorted(sorted)

	bs := benchmath.AssumeNothing.Summary(newSample(sorted), confidence)
	lo, hi := bs.Lo, bs.Hi
	// Pools too small for an interval at this level report the extremes.
	if math.IsNaN(lo) || math.IsInf(lo, 0) {
		lo = float64(sorted[0])
	}
	if math.IsNaN(hi) || math.IsInf(hi, 0) {
		hi = float64(sorted[len(sorted)-1])
	}

	return Summary{
		N:          len(sorted),
		Median:     median,
		Min:        sorted[0],
		Max:        sorted[len(sorted)-1],
		Lo:         lo,
		Hi:         hi,
		Confidence: confidence,
	}, nil
}

// Comparison is the result of a Mann-Whitney U test between two pools.
type Comparison struct {
	// P is the probability of observing a difference at least this large
	// if both pools came from the same distribution.
	P     float64
	Alpha float64
	// Delta is the relative change in median from a to b, e.g. -0.25 means
	// b's median is 25% lower.
	Delta float64
}

// Significant reports whether P is below Alpha.
func (c Comparison) Significant() bool {
	return c.P < c.Alpha
}

// Compare tests whether pools a and b differ.
func Compare(a, b []Sample) (Comparison, error) {
	if len(a) == 0 || len(b) == 0 {
		return Comparison{}, errs.Invalid("stats.Compare", "empty sample pool")
	}
	ma, _ := Median(a)
	mb, _ := Median(b)

	bc := benchmath.AssumeNothing.Compare(newSample(a), newSample(b))
	c := Comparison{P: bc.P, Alpha: bc.Alpha}
	if ma != 0 {
		c.Delta = (mb - ma) / ma
	}
	return c, nil
}

func newSample(pool []Sample) *benchmath.Sample {
	values := make([]float64, len(pool))
	for i, s := range pool {
		values[i] = float64(s)
	}
	return benchmath.NewSample(values, &benchmath.DefaultThresholds)
}
