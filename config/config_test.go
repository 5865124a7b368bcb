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

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/go-sortbench/algorithm"
	"github.com/ajroetker/go-sortbench/dataset"
	"github.com/ajroetker/go-sortbench/errs"
	"github.com/ajroetker/go-sortbench/sweep"
)

func TestDefaultMatchesSweepDefault(t *testing.T) {
	f := Default()
	require.NoError(t, f.Validate())

	want := sweep.Default()
	assert.Equal(t, want, f.Sweep())
	assert.True(t, f.Output.Table)
	assert.Equal(t, "auto", f.Logging.Format)
}

func TestParseOverridesDefaults(t *testing.T) {
	f, err := Parse(`
repetitions = 5
sizes = [2000, 4000]
workers = [2, 4]
algorithms = ["pdq"]
policy = "fixed"
verify = true

[logging]
format = "json"
level = "debug"

[output]
table = false
csv = "out.csv"
`)
	require.NoError(t, err)

	assert.Equal(t, 5, f.Repetitions)
	assert.Equal(t, []int{2000, 4000}, f.Sizes)
	assert.Equal(t, []int{2, 4}, f.Workers)
	assert.Equal(t, []algorithm.Algorithm{algorithm.PDQSort}, f.Algorithms)
	assert.Equal(t, dataset.FixedSeed, f.Policy)
	assert.True(t, f.Verify)
	assert.Equal(t, "json", f.Logging.Format)
	assert.Equal(t, zapcore.DebugLevel, f.Logging.Level)
	assert.False(t, f.Output.Table)
	assert.Equal(t, "out.csv", f.Output.CSV)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.95, f.Confidence)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(`repetitons = 5`)
	require.Error(t, err)
	assert.Equal(t, errs.EInvalid, errs.ErrorCode(err))
	assert.Contains(t, err.Error(), "repetitons")
}

func TestParseRejectsUnknownAlgorithm(t *testing.T) {
	_, err := Parse(`algorithms = ["boost"]`)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	f, err := Parse(`workers = [0]`)
	require.NoError(t, err)
	assert.Equal(t, errs.EInvalid, errs.ErrorCode(f.Validate()))

	f, err = Parse("[logging]\nformat = \"xml\"")
	require.NoError(t, err)
	assert.Equal(t, errs.EInvalid, errs.ErrorCode(f.Validate()))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortbench.toml")
	require.NoError(t, os.WriteFile(path, []byte("sizes = [100]\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{100}, f.Sizes)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, errs.EInvalid, errs.ErrorCode(err))
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf))

	f, err := Parse(buf.String())
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}
