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

// Package dataset generates the integer permutations that the benchmark sorts.
//
// A dataset of size N holds every integer in [0, N) exactly once, in a
// pseudo-random order. Two seeding policies are supported: FixedSeed gives
// the same permutation on every call, Default gives a fresh one.
package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/ajroetker/go-sortbench/errs"
)

// Seed is the fixed seed used by the FixedSeed policy.
const Seed uint64 = 121216

// Policy selects how the generator is seeded.
type Policy int

const (
	// Default seeds each generator from the runtime's random source.
	Default Policy = iota

	// FixedSeed seeds each generator with Seed, so permutations of the same
	// size are identical across calls and runs.
	FixedSeed
)

// String returns the policy name used in configuration files.
func (p Policy) String() string {
	switch p {
	case Default:
		return "default"
	case FixedSeed:
		return "fixed"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "default", "":
		*p = Default
	case "fixed":
		*p = FixedSeed
	default:
		return errs.Invalid("dataset.Policy", "unknown seeding policy %q; supported policies are default, fixed", text)
	}
	return nil
}

// NewRand returns a generator seeded according to policy.
func NewRand(policy Policy) *rand.Rand {
	if policy == FixedSeed {
		return rand.New(rand.NewPCG(Seed, Seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// New returns a permutation of [0, size). A size <= 0 yields an empty slice.
// Like make, it panics if the slice cannot be allocated; use TryNew to get
// an error instead.
func New(size int, policy Policy) []int {
	if size <= 0 {
		return []int{}
	}
	data := make([]int, size)
	for i := range data {
		data[i] = i
	}
	NewShuffler(policy).Shuffle(data)
	return data
}

// TryNew is New with allocation failures reported as errs.EAllocation.
func TryNew(size int, policy Policy) (data []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = errs.Allocation("dataset.New", fmt.Errorf("%v", r), "cannot allocate %d ints", size)
		}
	}()
	return New(size, policy), nil
}

// Shuffler reorders datasets in place. It owns its generator and must not be
// shared between goroutines.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler returns a Shuffler seeded according to policy.
func NewShuffler(policy Policy) *Shuffler {
	return &Shuffler{rng: NewRand(policy)}
}

// Shuffle permutes data in place (Fisher-Yates).
func (s *Shuffler) Shuffle(data []int) {
	s.rng.Shuffle(len(data), func(i, j int) {
		data[i], data[j] = data[j], data[i]
	})
}

// IsPermutation reports whether data holds every integer in [0, len(data))
// exactly once.
func IsPermutation(data []int) bool {
	seen := make([]bool, len(data))
	for _, v := range data {
		if v < 0 || v >= len(data) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
