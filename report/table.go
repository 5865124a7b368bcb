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

// Package report renders sweep results: a console table and the file
// sinks (CSV, Go benchmark format, Prometheus textfile).
package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/ajroetker/go-sortbench/algorithm"
	"github.com/ajroetker/go-sortbench/sweep"
)

// columnWidth is the width of every table column, in runes.
const columnWidth = 22

// FormatTable writes one table per algorithm. Rows are dataset sizes,
// columns are worker counts, cells are median sort times. Algorithms, sizes
// and worker counts appear in the order they first occur in results; points
// missing from results print as "-".
func FormatTable(w io.Writer, results []sweep.Result) error {
	var (
		algorithms []algorithm.Algorithm
		sizes      []int
		workers    []int
	)
	cells := make(map[sweep.Point]float64, len(results))
	for _, r := range results {
		if !slices.Contains(algorithms, r.Algorithm) {
			algorithms = append(algorithms, r.Algorithm)
		}
		if !slices.Contains(sizes, r.Size) {
			sizes = append(sizes, r.Size)
		}
		if !slices.Contains(workers, r.Workers) {
			workers = append(workers, r.Workers)
		}
		cells[r.Point] = r.Median
	}

	for i, a := range algorithms {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%v: %s\n", a, a.Description()); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%-*s", columnWidth, "Size"); err != nil {
			return err
		}
		for _, n := range workers {
			if _, err := fmt.Fprintf(w, "%*s", columnWidth, "Worker "+strconv.Itoa(n)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}

		for _, size := range sizes {
			if _, err := fmt.Fprintf(w, "%-*s", columnWidth, humanize.Comma(int64(size))); err != nil {
				return err
			}
			for _, n := range workers {
				cell := "-"
				if median, ok := cells[sweep.Point{Size: size, Workers: n, Algorithm: a}]; ok {
					cell = FormatMicros(median)
				}
				if _, err := fmt.Fprintf(w, "%*s", columnWidth, cell); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatMicros formats a microsecond value with thousands separators and a
// unit suffix, e.g. "1,234.5µs".
func FormatMicros(us float64) string {
	return humanize.Commaf(us) + "µs"
}
