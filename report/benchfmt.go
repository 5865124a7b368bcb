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

package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/perf/benchfmt"

	"github.com/ajroetker/go-sortbench/host"
	"github.com/ajroetker/go-sortbench/sweep"
)

// BenchfmtSink writes results in the Go benchmark format so that sweeps can
// be compared with benchstat:
//
//	goos: linux
//	goarch: amd64
//	simd: avx2
//	cpus: 16
//	BenchmarkSort/impl=pdq/workers=4/size=16000 92 1001000 ns/op
//
// Iterations is the pooled sample count and ns/op is the median.
type BenchfmtSink struct {
	bw     *bufio.Writer
	w      *benchfmt.Writer
	config []benchfmt.Config
	closer io.Closer
}

// NewBenchfmtSink returns a sink writing to w. The file configuration is
// taken from info. Close does not close w.
func NewBenchfmtSink(w io.Writer, info host.Info) *BenchfmtSink {
	bw := bufio.NewWriter(w)
	return &BenchfmtSink{
		bw: bw,
		w:  benchfmt.NewWriter(bw),
		config: []benchfmt.Config{
			fileConfig("goos", info.OS),
			fileConfig("goarch", info.Arch),
			fileConfig("simd", info.Level.String()),
			fileConfig("cpus", strconv.Itoa(info.NumCPU)),
			fileConfig("gomaxprocs", strconv.Itoa(info.GOMAXPROCS)),
		},
	}
}

// CreateBenchfmt creates (or truncates) path and returns a sink that closes
// the file on Close.
func CreateBenchfmt(path string, info host.Info) (*BenchfmtSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := NewBenchfmtSink(f, info)
	s.closer = f
	return s, nil
}

func fileConfig(key, value string) benchfmt.Config {
	return benchfmt.Config{Key: key, Value: []byte(value), File: true}
}

// Write implements sweep.Sink.
func (s *BenchfmtSink) Write(r sweep.Result) error {
	res := &benchfmt.Result{
		Config: s.config,
		Name:   benchfmt.Name(BenchmarkName(r)),
		Iters:  r.Summary.N,
		Values: []benchfmt.Value{
			{Value: r.Median * 1e3, Unit: "ns/op"},
		},
	}
	if err := s.w.Write(res); err != nil {
		return err
	}
	return s.bw.Flush()
}

// Close implements sweep.Sink.
func (s *BenchfmtSink) Close() error {
	err := s.bw.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// BenchmarkName returns the benchmark name of r without the "Benchmark"
// prefix, e.g. "Sort/impl=std/workers=2/size=2000".
func BenchmarkName(r sweep.Result) string {
	return fmt.Sprintf("Sort/impl=%v/workers=%d/size=%d", r.Algorithm, r.Workers, r.Size)
}
