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

// Package logger builds the zap loggers used by the sortbench command.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	zaplogfmt "github.com/jsternberg/zap-logfmt"
	isatty "github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatLogfmt  = "logfmt"
	FormatJSON    = "json"
)

// Config controls the log format and level.
type Config struct {
	Format string        `toml:"format"`
	Level  zapcore.Level `toml:"level"`
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Format: FormatAuto,
		Level:  zapcore.InfoLevel,
	}
}

// New creates a logger writing to w.
func New(w io.Writer, c Config) (*zap.Logger, error) {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format(time.RFC3339))
	}
	config.EncodeDuration = func(d time.Duration, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(d.String())
	}

	encoder, err := newEncoder(w, c.Format, config)
	if err != nil {
		return nil, err
	}
	return zap.New(zapcore.NewCore(
		encoder,
		zapcore.Lock(zapcore.AddSync(w)),
		c.Level,
	)), nil
}

func newEncoder(w io.Writer, format string, config zapcore.EncoderConfig) (zapcore.Encoder, error) {
	switch format {
	case FormatJSON:
		return zapcore.NewJSONEncoder(config), nil
	case FormatConsole:
		return zapcore.NewConsoleEncoder(config), nil
	case FormatLogfmt:
		return zaplogfmt.NewEncoder(config), nil
	case FormatAuto, "":
		if isTerminal(w) {
			return zapcore.NewConsoleEncoder(config), nil
		}
		return zaplogfmt.NewEncoder(config), nil
	default:
		return nil, fmt.Errorf("unknown log format %q; supported formats are auto, console, logfmt, json", format)
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}
