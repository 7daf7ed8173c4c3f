// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds every sort-benchmark collector and is served on /metrics.
var Registry = prometheus.NewRegistry()

var (
	trialDurationHistogramVec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sort_benchmark",
		Name:      "trial_duration_seconds",
		Help:      "Histogram of single sort invocation durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(1e-7, 2, 20),
	}, []string{"series"})

	averageDurationGaugeVec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "sort_benchmark",
		Name:      "average_duration_nanoseconds",
		Help:      "Average duration of the last completed size per series",
	}, []string{"series"})

	currentSizeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sort_benchmark",
		Name:      "last_completed_size",
		Help:      "Input size of the last completed row",
	})

	runsCounterVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sort_benchmark",
		Name:      "runs_total",
		Help:      "Benchmark runs by final state",
	}, []string{"state"})

	activeRunsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sort_benchmark",
		Name:      "active_runs",
		Help:      "Benchmark runs currently executing",
	})
)

func init() {
	Registry.MustRegister(
		trialDurationHistogramVec,
		averageDurationGaugeVec,
		currentSizeGauge,
		runsCounterVec,
		activeRunsGauge,
		collectors.NewGoCollector(),
	)
}
