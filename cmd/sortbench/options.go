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

package main

import (
	"bytes"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajroetker/go-sortbench/algorithm"
	"github.com/ajroetker/go-sortbench/cli"
	"github.com/ajroetker/go-sortbench/config"
	"github.com/ajroetker/go-sortbench/errs"
	"github.com/ajroetker/go-sortbench/logger"
)

// options resolves the effective configuration. The decoded --config file
// (or the defaults) is viper's configuration layer; flags set on the
// command line override it key by key.
type options struct {
	v *viper.Viper
}

func (o *options) bind(cmd *cobra.Command) {
	d := config.Default()
	algos := make([]string, len(d.Algorithms))
	for i, a := range d.Algorithms {
		algos[i] = a.String()
	}

	o.v = viper.New()
	cli.BindOptions(o.v, cmd, []cli.Opt{
		cli.NewOpt("", "config", "", "TOML configuration file"),
		cli.NewOpt("", "sizes", d.Sizes, "dataset sizes in elements"),
		cli.NewOpt("", "workers", d.Workers, "worker counts"),
		cli.NewOpt("", "algorithms", algos, "algorithms to measure (std, pdq)"),
		cli.NewOpt("", "repetitions", d.Repetitions, "sorts per worker per point"),
		cli.NewOpt("", "policy", d.Policy.String(),
			"seed of each worker's initial dataset: default or fixed; timings are unaffected, every repetition reshuffles randomly"),
		cli.NewOpt("", "verify", d.Verify, "check every sort result"),
		cli.NewOpt("", "continue-on-error", d.ContinueOnError, "skip failing points instead of aborting"),
		cli.NewOpt("", "spawn-per-point", d.SpawnPerPoint, "start fresh goroutines for every point"),
		cli.NewOpt("", "confidence", d.Confidence, "confidence level of the median interval"),
		cli.NewOpt("output.table", "table", d.Output.Table, "print result tables to stdout"),
		cli.NewOpt("output.csv", "csv", d.Output.CSV, "write CSV results to this file"),
		cli.NewOpt("output.benchfmt", "benchfmt", d.Output.Benchfmt, "write Go benchmark format results to this file"),
		cli.NewOpt("output.prometheus", "prometheus", d.Output.Prometheus, "write a Prometheus textfile to this path"),
		cli.NewOpt("logging.format", "log-format", d.Logging.Format, "log format: auto, console, logfmt, json"),
		cli.NewOpt("logging.level", "log-level", d.Logging.Level.String(), "log level: debug, info, warn, error"),
	})
}

// load returns the validated configuration after flag parsing.
func (o *options) load() (config.File, error) {
	v := o.v

	base := config.Default()
	if path := v.GetString("config"); path != "" {
		var err error
		if base, err = config.Load(path); err != nil {
			return config.File{}, err
		}
	}
	var doc bytes.Buffer
	if err := base.Encode(&doc); err != nil {
		return config.File{}, err
	}
	if err := cli.ReadConfig(v, doc.Bytes()); err != nil {
		return config.File{}, err
	}

	f := config.File{
		Repetitions:     v.GetInt("repetitions"),
		Sizes:           v.GetIntSlice("sizes"),
		Workers:         v.GetIntSlice("workers"),
		Verify:          v.GetBool("verify"),
		ContinueOnError: v.GetBool("continue-on-error"),
		SpawnPerPoint:   v.GetBool("spawn-per-point"),
		Confidence:      v.GetFloat64("confidence"),
		Logging: logger.Config{
			Format: v.GetString("logging.format"),
		},
		Output: config.Output{
			Table:      v.GetBool("output.table"),
			CSV:        v.GetString("output.csv"),
			Benchfmt:   v.GetString("output.benchfmt"),
			Prometheus: v.GetString("output.prometheus"),
		},
	}

	for _, name := range v.GetStringSlice("algorithms") {
		a, err := algorithm.Parse(name)
		if err != nil {
			return config.File{}, err
		}
		f.Algorithms = append(f.Algorithms, a)
	}
	if err := f.Policy.UnmarshalText([]byte(v.GetString("policy"))); err != nil {
		return config.File{}, err
	}
	if err := f.Logging.Level.UnmarshalText([]byte(v.GetString("logging.level"))); err != nil {
		return config.File{}, &errs.Error{Code: errs.EInvalid, Op: "sortbench", Msg: "--log-level", Err: err}
	}

	if err := f.Validate(); err != nil {
		return config.File{}, err
	}
	return f, nil
}
