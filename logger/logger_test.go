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

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogfmt(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Config{Format: FormatLogfmt, Level: zapcore.InfoLevel})
	require.NoError(t, err)

	log.Info("point done", zap.Int("size", 2000))
	assert.Contains(t, buf.String(), `msg="point done"`)
	assert.Contains(t, buf.String(), "size=2000")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Config{Format: FormatJSON, Level: zapcore.InfoLevel})
	require.NoError(t, err)

	log.Info("hello", zap.String("impl", "pdq"))
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "hello", m["msg"])
	assert.Equal(t, "pdq", m["impl"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Config{Format: FormatLogfmt, Level: zapcore.WarnLevel})
	require.NoError(t, err)

	log.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestAutoNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, NewConfig())
	require.NoError(t, err)

	log.Info("auto")
	// A bytes.Buffer is never a terminal, so auto picks logfmt.
	assert.Contains(t, buf.String(), "msg=auto")
}

func TestUnknownFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Config{Format: "xml"})
	assert.Error(t, err)
}
