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
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-sortbench/errs"
	"github.com/ajroetker/go-sortbench/report"
)

func execute(t *testing.T, ctx context.Context, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, log bytes.Buffer
	cmd := newRootCommand(&out, &log)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(ctx)
	return out.String(), log.String(), err
}

func TestRunSmallSweep(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "results.csv")
	benchPath := filepath.Join(dir, "results.txt")
	promPath := filepath.Join(dir, "sortbench.prom")

	stdout, stderr, err := execute(t, context.Background(),
		"--sizes", "200,400",
		"--workers", "1,2",
		"--repetitions", "3",
		"--verify",
		"--csv", csvPath,
		"--benchfmt", benchPath,
		"--prometheus", promPath,
		"--log-format", "json",
	)
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "std: standard library comparison sort")
	assert.Contains(t, stdout, "pdq: pattern-defeating quicksort")
	assert.Contains(t, stdout, "Worker 2")
	assert.Contains(t, stderr, `"msg":"Detected host"`)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 1+2*2*2)
	assert.Equal(t, report.CSVHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `"std",1,3,200,`), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], `"pdq",1,3,200,`), lines[2])
	assert.True(t, strings.HasPrefix(lines[8], `"pdq",2,3,400,`), lines[8])

	data, err = os.ReadFile(benchPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BenchmarkSort/impl=pdq/workers=2/size=400")

	data, err = os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sortbench_median_runtime_microseconds")
}

func TestRunNoTable(t *testing.T) {
	stdout, _, err := execute(t, context.Background(),
		"--sizes", "100", "--workers", "1", "--algorithms", "pdq",
		"--repetitions", "1", "--table=false", "--log-level", "error",
	)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRunInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero workers", []string{"--workers", "0"}},
		{"duplicate sizes", []string{"--sizes", "100,100"}},
		{"unknown algorithm", []string{"--algorithms", "bogo"}},
		{"unknown policy", []string{"--policy", "random"}},
		{"zero repetitions", []string{"--repetitions", "0"}},
		{"bad log format", []string{"--log-format", "xml"}},
		{"bad log level", []string{"--log-level", "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, context.Background(), tt.args...)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.EInvalid), "got %v", err)
			assert.Empty(t, stdout)
		})
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := execute(t, ctx, "--sizes", "100", "--workers", "1", "--repetitions", "1", "--log-level", "error")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrintConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
repetitions = 5
sizes = [1000, 2000]
algorithms = ["pdq"]

[output]
csv = "from-file.csv"
`), 0o644))

	stdout, _, err := execute(t, context.Background(), "print-config", "--config", path, "--repetitions", "7")
	require.NoError(t, err)
	assert.Contains(t, stdout, "repetitions = 7")
	assert.Contains(t, stdout, "sizes = [1000, 2000]")
	assert.Contains(t, stdout, `algorithms = ["pdq"]`)
	assert.Contains(t, stdout, `csv = "from-file.csv"`)
}

func TestPrintConfigMissingFile(t *testing.T) {
	_, _, err := execute(t, context.Background(), "print-config", "--config", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.EInvalid))
}

func TestFlagDefaultsDoNotMaskConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
verify = true
workers = [3]
policy = "fixed"

[logging]
level = "warn"

[output]
table = false
`), 0o644))

	stdout, _, err := execute(t, context.Background(), "print-config", "--config", path, "--sizes", "500")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sizes = [500]")
	assert.Contains(t, stdout, "workers = [3]")
	assert.Contains(t, stdout, "verify = true")
	assert.Contains(t, stdout, `policy = "fixed"`)
	assert.Contains(t, stdout, `level = "warn"`)
	assert.Contains(t, stdout, "table = false")
}

func TestPolicyUsageNotesTimingsUnaffected(t *testing.T) {
	f := newRootCommand(&bytes.Buffer{}, &bytes.Buffer{}).Flags().Lookup("policy")
	require.NotNil(t, f)
	assert.Contains(t, f.Usage, "timings are unaffected")
}
