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
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ajroetker/go-sortbench/sweep"
)

const namespace = "sortbench"

var labels = []string{"implementation", "workers", "size"}

// PromSink collects results as Prometheus gauges and writes them to a
// node_exporter textfile on Close.
type PromSink struct {
	path     string
	registry *prometheus.Registry

	median      *prometheus.GaugeVec
	lo          *prometheus.GaugeVec
	hi          *prometheus.GaugeVec
	repetitions *prometheus.GaugeVec
}

// NewPromSink returns a sink that writes the textfile at path. An empty
// path collects without writing, which is useful with Registry.
func NewPromSink(path string) *PromSink {
	s := &PromSink{
		path:     path,
		registry: prometheus.NewRegistry(),
		median: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "median_runtime_microseconds",
			Help:      "Median time to sort one dataset.",
		}, labels),
		lo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "median_runtime_lower_microseconds",
			Help:      "Lower confidence bound of the median sort time.",
		}, labels),
		hi: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "median_runtime_upper_microseconds",
			Help:      "Upper confidence bound of the median sort time.",
		}, labels),
		repetitions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "samples",
			Help:      "Number of samples pooled into the median.",
		}, labels),
	}
	s.registry.MustRegister(s.median, s.lo, s.hi, s.repetitions)
	return s
}

// Registry returns the registry holding the sink's gauges.
func (s *PromSink) Registry() *prometheus.Registry {
	return s.registry
}

// Write implements sweep.Sink.
func (s *PromSink) Write(r sweep.Result) error {
	lv := []string{r.Algorithm.String(), strconv.Itoa(r.Workers), strconv.Itoa(r.Size)}
	s.median.WithLabelValues(lv...).Set(r.Median)
	s.lo.WithLabelValues(lv...).Set(r.Summary.Lo)
	s.hi.WithLabelValues(lv...).Set(r.Summary.Hi)
	s.repetitions.WithLabelValues(lv...).Set(float64(r.Summary.N))
	return nil
}

// Close writes the textfile atomically.
func (s *PromSink) Close() error {
	if s.path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(s.path, s.registry)
}
