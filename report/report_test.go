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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/tools/txtar"

	"github.com/ajroetker/go-sortbench/algorithm"
	"github.com/ajroetker/go-sortbench/host"
	"github.com/ajroetker/go-sortbench/stats"
	"github.com/ajroetker/go-sortbench/sweep"
)

func result(a algorithm.Algorithm, workers, size int, median float64) sweep.Result {
	return sweep.Result{
		Point:        sweep.Point{Size: size, Workers: workers, Algorithm: a},
		Measurements: 23,
		Median:       median,
		Summary: stats.Summary{
			N:          23 * workers,
			Median:     median,
			Lo:         median - 1,
			Hi:         median + 2,
			Confidence: stats.DefaultConfidence,
		},
	}
}

// testResults returns an eight-point sweep in emission order.
func testResults() []sweep.Result {
	std, pdq := algorithm.ComparisonSort, algorithm.PDQSort
	return []sweep.Result{
		result(std, 1, 2000, 71),
		result(pdq, 1, 2000, 65),
		result(std, 1, 16000, 1045),
		result(pdq, 1, 16000, 902.5),
		result(std, 4, 2000, 73.5),
		result(pdq, 4, 2000, 66),
		result(std, 4, 16000, 1210),
		result(pdq, 4, 16000, 1001),
	}
}

func golden(t *testing.T, name string) string {
	t.Helper()
	ar, err := txtar.ParseFile(filepath.Join("testdata", "report.txtar"))
	require.NoError(t, err)
	for _, f := range ar.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("no %q section in testdata/report.txtar", name)
	return ""
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatTable(&buf, testResults()))
	if diff := cmp.Diff(golden(t, "table"), buf.String()); diff != "" {
		t.Errorf("FormatTable mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTableMissingCell(t *testing.T) {
	results := testResults()[:3]
	var buf bytes.Buffer
	require.NoError(t, FormatTable(&buf, results))

	lines := strings.Split(buf.String(), "\n")
	// pdq never ran at size 16,000.
	assert.Equal(t, "16,000", strings.TrimSpace(lines[len(lines)-2][:columnWidth]))
	assert.True(t, strings.HasSuffix(lines[len(lines)-2], " -"))
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatTable(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestFormatMicros(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0µs"},
		{71, "71µs"},
		{73.5, "73.5µs"},
		{1234567.25, "1,234,567.25µs"},
	}
	for _, tt := range tests {
		if got := FormatMicros(tt.in); got != tt.want {
			t.Errorf("FormatMicros(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCSVSink(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewCSVSink(&buf)
	require.NoError(t, err)
	for _, r := range testResults() {
		require.NoError(t, s.Write(r))
	}
	require.NoError(t, s.Close())

	if diff := cmp.Diff(golden(t, "csv"), buf.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVSinkHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewCSVSink(&buf)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Equal(t, CSVHeader+"\n", buf.String())
}

func TestCreateCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := CreateCSV(path)
	require.NoError(t, err)
	require.NoError(t, s.Write(result(algorithm.PDQSort, 2, 2000, 65)))

	// Rows are flushed before Close.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, CSVHeader+"\n\"pdq\",2,23,2000,65\n", string(data))
	require.NoError(t, s.Close())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCSVSinkWriteError(t *testing.T) {
	_, err := NewCSVSink(failingWriter{})
	assert.EqualError(t, err, "disk full")
}

func TestBenchfmtSink(t *testing.T) {
	info := host.Info{OS: "linux", Arch: "amd64", NumCPU: 8, GOMAXPROCS: 8, Level: host.LevelAVX2}

	var buf bytes.Buffer
	s := NewBenchfmtSink(&buf, info)
	for _, r := range testResults() {
		require.NoError(t, s.Write(r))
	}
	require.NoError(t, s.Close())

	type row struct {
		Name  string
		Iters int
		Secs  float64
		GOOS  string
		SIMD  string
	}
	var got []row
	rd := benchfmt.NewReader(&buf, "sweep.txt")
	for rd.Scan() {
		res, ok := rd.Result().(*benchfmt.Result)
		require.True(t, ok, "unexpected record %#v", rd.Result())
		secs, ok := res.Value("sec/op")
		require.True(t, ok)
		got = append(got, row{
			Name:  string(res.Name),
			Iters: res.Iters,
			Secs:  secs,
			GOOS:  res.GetConfig("goos"),
			SIMD:  res.GetConfig("simd"),
		})
	}
	require.NoError(t, rd.Err())
	require.Len(t, got, 8)

	want := testResults()
	for i, r := range got {
		assert.Equal(t, BenchmarkName(want[i]), r.Name)
		assert.Equal(t, want[i].Summary.N, r.Iters)
		assert.InDelta(t, want[i].Median*1e-6, r.Secs, 1e-12)
		assert.Equal(t, "linux", r.GOOS)
		assert.Equal(t, "avx2", r.SIMD)
	}
	assert.Equal(t, "Sort/impl=std/workers=1/size=2000", got[0].Name)
}

func TestPromSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortbench.prom")
	s := NewPromSink(path)
	for _, r := range testResults() {
		require.NoError(t, s.Write(r))
	}

	assert.Equal(t, 902.5, testutil.ToFloat64(s.median.WithLabelValues("pdq", "1", "16000")))
	assert.Equal(t, 1209.0, testutil.ToFloat64(s.lo.WithLabelValues("std", "4", "16000")))
	assert.Equal(t, 92.0, testutil.ToFloat64(s.repetitions.WithLabelValues("std", "4", "2000")))
	assert.Equal(t, 8, testutil.CollectAndCount(s.median))

	require.NoError(t, s.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data),
		`sortbench_median_runtime_microseconds{implementation="std",size="2000",workers="1"} 71`)
	assert.Contains(t, string(data), "# TYPE sortbench_median_runtime_upper_microseconds gauge")
}

func TestPromSinkNoPath(t *testing.T) {
	s := NewPromSink("")
	require.NoError(t, s.Write(result(algorithm.ComparisonSort, 1, 2000, 71)))
	require.NoError(t, s.Close())

	n, err := testutil.GatherAndCount(s.Registry(), "sortbench_median_runtime_microseconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
