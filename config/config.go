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

// Package config loads sortbench settings from a TOML file.
//
// Every key is optional; missing keys keep the compiled-in defaults, which
// reproduce the full sweep:
//
//	repetitions = 23
//	sizes = [2000, 4000, 6000, 8000, 10000, 12000, 16000, 32000, 64000, 128000, 256000, 512000, 1000000]
//	workers = [1, 2, 4, 8, 16, 32]
//	algorithms = ["std", "pdq"]
//	policy = "default"
//
//	[logging]
//	format = "auto"
//	level = "info"
//
//	[output]
//	table = true
//	csv = "results.csv"
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ajroetker/go-sortbench/algorithm"
	"github.com/ajroetker/go-sortbench/dataset"
	"github.com/ajroetker/go-sortbench/errs"
	"github.com/ajroetker/go-sortbench/logger"
	"github.com/ajroetker/go-sortbench/sweep"
)

// File is the on-disk configuration.
type File struct {
	Repetitions     int                   `toml:"repetitions"`
	Sizes           []int                 `toml:"sizes"`
	Workers         []int                 `toml:"workers"`
	Algorithms      []algorithm.Algorithm `toml:"algorithms"`
	// Policy seeds only each worker's initial dataset. Repetitions reshuffle
	// with a random generator, so it does not change measured timings.
	Policy          dataset.Policy        `toml:"policy"`
	Verify          bool                  `toml:"verify"`
	ContinueOnError bool                  `toml:"continue-on-error"`
	SpawnPerPoint   bool                  `toml:"spawn-per-point"`
	Confidence      float64               `toml:"confidence"`

	Logging logger.Config `toml:"logging"`
	Output  Output        `toml:"output"`
}

// Output selects the result sinks. Empty paths disable a sink.
type Output struct {
	// Table prints one summary table per algorithm when the sweep ends.
	Table bool `toml:"table"`

	// CSV is written with one row per point as results arrive.
	CSV string `toml:"csv"`

	// Benchfmt is written in Go benchmark format for benchstat.
	Benchfmt string `toml:"benchfmt"`

	// Prometheus is a node_exporter textfile written when the sweep ends.
	Prometheus string `toml:"prometheus"`
}

// Default returns the compiled-in configuration.
func Default() File {
	s := sweep.Default()
	return File{
		Repetitions: s.Repetitions,
		Sizes:       s.Sizes,
		Workers:     s.WorkerCounts,
		Algorithms:  s.Algorithms,
		Policy:      s.Policy,
		Confidence:  s.Confidence,
		Logging:     logger.NewConfig(),
		Output:      Output{Table: true},
	}
}

// Load reads path over the defaults. Unknown keys are rejected so that
// typos do not silently fall back to defaults.
func Load(path string) (File, error) {
	f := Default()
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, &errs.Error{Code: errs.EInvalid, Op: "config.Load", Msg: path, Err: err}
	}
	if err := checkUndecoded(path, md); err != nil {
		return File{}, err
	}
	return f, nil
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (File, error) {
	f := Default()
	md, err := toml.Decode(text, &f)
	if err != nil {
		return File{}, &errs.Error{Code: errs.EInvalid, Op: "config.Parse", Err: err}
	}
	if err := checkUndecoded("<input>", md); err != nil {
		return File{}, err
	}
	return f, nil
}

func checkUndecoded(source string, md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return errs.Invalid("config.Load", "%s: unknown keys %s", source, strings.Join(keys, ", "))
}

// Sweep returns the sweep configuration described by f.
func (f File) Sweep() sweep.Config {
	return sweep.Config{
		Sizes:           f.Sizes,
		WorkerCounts:    f.Workers,
		Algorithms:      f.Algorithms,
		Repetitions:     f.Repetitions,
		Policy:          f.Policy,
		Verify:          f.Verify,
		ContinueOnError: f.ContinueOnError,
		SpawnPerPoint:   f.SpawnPerPoint,
		Confidence:      f.Confidence,
	}
}

// Validate checks the sweep and logging settings.
func (f File) Validate() error {
	if err := f.Sweep().Validate(); err != nil {
		return err
	}
	switch f.Logging.Format {
	case logger.FormatAuto, logger.FormatConsole, logger.FormatLogfmt, logger.FormatJSON, "":
	default:
		return errs.Invalid("config.Validate", "unknown log format %q", f.Logging.Format)
	}
	return nil
}

// Encode writes f as TOML.
func (f File) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}
