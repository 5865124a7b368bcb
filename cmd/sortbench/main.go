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

// Command sortbench measures how sort throughput scales with concurrency.
//
// For every combination of worker count, dataset size and algorithm it
// starts one goroutine per worker, has each worker sort its own shuffled
// dataset a fixed number of times, and reports the median time across all
// workers' samples.
//
// Usage:
//
//	sortbench                                  # full sweep, table on stdout
//	sortbench --sizes 2000,16000 --workers 1,4 --csv results.csv
//	sortbench --config sweep.toml --benchfmt new.txt   # then: benchstat old.txt new.txt
//	sortbench print-config --workers 1,2       # effective configuration as TOML
//
// Flags override the values loaded from --config, which override the
// compiled-in defaults. SIGINT and SIGTERM stop the sweep between
// repetitions; completed points are still reported.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ajroetker/go-sortbench/config"
	"github.com/ajroetker/go-sortbench/host"
	"github.com/ajroetker/go-sortbench/logger"
	"github.com/ajroetker/go-sortbench/report"
	"github.com/ajroetker/go-sortbench/sweep"
	"github.com/ajroetker/go-sortbench/trial"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "sortbench",
		Short:         "Benchmark sort scalability across worker counts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := opts.load()
			if err != nil {
				return err
			}
			return run(cmd.Context(), f, stdout, stderr)
		},
	}
	opts.bind(cmd)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.AddCommand(newPrintConfigCommand(stdout))
	return cmd
}

func newPrintConfigCommand(stdout io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "print-config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := opts.load()
			if err != nil {
				return err
			}
			return f.Encode(stdout)
		},
	}
	opts.bind(cmd)
	return cmd
}

// run executes the sweep described by f. Results already written to the
// file sinks are kept when the sweep fails part way.
func run(ctx context.Context, f config.File, stdout, stderr io.Writer) (err error) {
	log, err := logger.New(stderr, f.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	info := host.Detect()
	log.Info("Detected host", zap.Stringer("host", info))

	sc := f.Sweep()
	if m := sc.MaxWorkers(); m > info.GOMAXPROCS {
		log.Warn("Worker count exceeds GOMAXPROCS; workers will share CPUs",
			zap.Int("max_workers", m),
			zap.Int("gomaxprocs", info.GOMAXPROCS),
		)
	}

	sinks, err := openSinks(f.Output, info)
	if err != nil {
		return err
	}
	defer func() {
		for _, s := range sinks {
			err = multierr.Append(err, s.Close())
		}
	}()

	ctrl := sweep.NewController(sc,
		sweep.WithLogger(log),
		sweep.WithSinks(sinks...),
		sweep.WithRunner(&trial.Runner{Clock: clock.New()}),
	)
	results, err := ctrl.Run(ctx)
	if err != nil {
		log.Error("Sweep stopped", zap.Int("completed_points", len(results)), zap.Error(err))
	}

	if f.Output.Table && len(results) > 0 {
		err = multierr.Append(err, report.FormatTable(stdout, results))
	}
	return err
}

// openSinks creates the file sinks selected by out. On error, sinks opened
// so far are closed.
func openSinks(out config.Output, info host.Info) (sinks []sweep.Sink, err error) {
	defer func() {
		if err != nil {
			for _, s := range sinks {
				_ = s.Close()
			}
			sinks = nil
		}
	}()

	if out.CSV != "" {
		s, err := report.CreateCSV(out.CSV)
		if err != nil {
			return sinks, fmt.Errorf("opening CSV output: %w", err)
		}
		sinks = append(sinks, s)
	}
	if out.Benchfmt != "" {
		s, err := report.CreateBenchfmt(out.Benchfmt, info)
		if err != nil {
			return sinks, fmt.Errorf("opening benchfmt output: %w", err)
		}
		sinks = append(sinks, s)
	}
	if out.Prometheus != "" {
		sinks = append(sinks, report.NewPromSink(out.Prometheus))
	}
	return sinks, nil
}
