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

	"github.com/ajroetker/go-sortbench/sweep"
)

// CSVHeader is the first line of every CSV file.
const CSVHeader = "IMPLEMENTATION,THREAD_COUNT,MEASUREMENTS,SIZE,MEDIAN_RUNTIME_MUS"

// CSVSink writes one row per result:
//
//	IMPLEMENTATION,THREAD_COUNT,MEASUREMENTS,SIZE,MEDIAN_RUNTIME_MUS
//	"std",2,23,2000,71.5
//
// The implementation is always quoted. Rows are flushed as they arrive so
// an aborted sweep keeps the points it finished.
type CSVSink struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewCSVSink writes the header to w and returns the sink. Close does not
// close w.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	s := &CSVSink{w: bufio.NewWriter(w)}
	if _, err := s.w.WriteString(CSVHeader + "\n"); err != nil {
		return nil, err
	}
	return s, s.w.Flush()
}

// CreateCSV creates (or truncates) path and returns a sink that closes the
// file on Close.
func CreateCSV(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s, err := NewCSVSink(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// Write implements sweep.Sink.
func (s *CSVSink) Write(r sweep.Result) error {
	if _, err := fmt.Fprintf(s.w, "%q,%d,%d,%d,%s\n",
		r.Algorithm.String(), r.Workers, r.Measurements, r.Size,
		strconv.FormatFloat(r.Median, 'f', -1, 64),
	); err != nil {
		return err
	}
	return s.w.Flush()
}

// Close implements sweep.Sink.
func (s *CSVSink) Close() error {
	err := s.w.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
