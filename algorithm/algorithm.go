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

// Package algorithm names the sort implementations under measurement and
// dispatches to them through the Sorter interface.
package algorithm

import (
	"fmt"
	"sort"

	"github.com/ajroetker/go-sortbench/errs"
	"github.com/ajroetker/go-sortbench/pdqsort"
)

// Algorithm identifies a sort implementation.
type Algorithm int

const (
	// ComparisonSort is the standard library's interface-based sort.Sort.
	ComparisonSort Algorithm = iota

	// PDQSort is the pattern-defeating quicksort in package pdqsort.
	PDQSort
)

// All lists every algorithm in report order.
var All = []Algorithm{ComparisonSort, PDQSort}

// String returns the short name used in CSV and benchmark output.
func (a Algorithm) String() string {
	switch a {
	case ComparisonSort:
		return "std"
	case PDQSort:
		return "pdq"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Description returns a human-readable name for table headers.
func (a Algorithm) Description() string {
	switch a {
	case ComparisonSort:
		return "standard library comparison sort"
	case PDQSort:
		return "pattern-defeating quicksort"
	default:
		return a.String()
	}
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	switch a {
	case ComparisonSort, PDQSort:
		return true
	default:
		return false
	}
}

// Parse returns the algorithm with the given name. Both the short names and
// the configuration names are accepted, as is "boost", the label older
// results.csv files use for the pattern-defeating sort.
func Parse(name string) (Algorithm, error) {
	switch name {
	case "std", "comparisonSort", "comparison":
		return ComparisonSort, nil
	case "pdq", "pdqSort", "patternDefeatingQuicksort", "boost":
		return PDQSort, nil
	default:
		return 0, errs.Invalid("algorithm.Parse", "unknown algorithm %q; supported algorithms are std, pdq", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, errs.Invalid("algorithm.MarshalText", "unknown algorithm %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Sorter sorts a dataset in place, ascending.
type Sorter interface {
	Sort(data []int)
}

// SorterFunc adapts a function to the Sorter interface.
type SorterFunc func(data []int)

// Sort calls f(data).
func (f SorterFunc) Sort(data []int) { f(data) }

var sorters = map[Algorithm]Sorter{
	ComparisonSort: SorterFunc(func(data []int) { sort.Sort(sort.IntSlice(data)) }),
	PDQSort:        SorterFunc(pdqsort.Sort[int]),
}

// New returns the Sorter for a.
func New(a Algorithm) (Sorter, error) {
	s, ok := sorters[a]
	if !ok {
		return nil, errs.Invalid("algorithm.New", "unknown algorithm %d", int(a))
	}
	return s, nil
}
