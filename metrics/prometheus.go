// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

type protocolMetrics struct {
	Registrations *prometheus.CounterVec
	Packets       *prometheus.CounterVec
	Wait          prometheus.Histogram
}

// Metrics 见 Collector
func (m *protocolMetrics) Metrics() []prometheus.Collector {
	return PrometheusCollectorsFromFields(m)
}

var collectors = newProtocolMetrics()

var registry = newMetricsRegistry(collectors)

func newProtocolMetrics() *protocolMetrics {
	return &protocolMetrics{
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "registration",
			Name:      "events_total",
			Help:      "registration protocol events by kind.",
		}, []string{"event"}),
		Packets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "relay",
			Name:      "packets_total",
			Help:      "terminal packet outcomes by kind.",
		}, []string{"kind"}),
		Wait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "relay",
			Name:      "wait_seconds",
			Help:      "time spent waiting for packets of one transaction.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

func newMetricsRegistry(c Collector) (r *prometheus.Registry) {
	r = prometheus.NewRegistry()
	r.MustRegister(c.Metrics()...)
	return r
}

// WritePrometheus 以 prometheus 文本格式输出
func WritePrometheus(w io.Writer) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
